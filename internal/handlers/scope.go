package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/waterworks/records/internal/middleware"
	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/utils"
)

func session(r *http.Request) (models.Session, error) {
	s, ok := middleware.SessionFrom(r.Context())
	if !ok {
		return models.Session{}, unauthorized("not authorized")
	}
	return s, nil
}

// listOwner resolves the ?userId= filter. Admins may filter by anyone or see
// every row; other callers are always scoped to themselves.
func listOwner(r *http.Request) (int64, error) {
	s, err := session(r)
	if err != nil {
		return 0, err
	}

	var requested int64
	if raw := r.URL.Query().Get("userId"); raw != "" {
		requested, err = utils.ParseID(raw)
		if err != nil {
			return 0, badRequest("invalid userId: must be a number")
		}
	}

	if s.IsAdmin() {
		return requested, nil
	}
	if requested != 0 && requested != s.UserID {
		return 0, forbidden("cannot list records of another user")
	}
	return s.UserID, nil
}

// createOwner resolves the userId field of a create body. Non-admins may
// omit it or name themselves; admins must name the owner.
func createOwner(r *http.Request, raw json.Number) (int64, error) {
	s, err := session(r)
	if err != nil {
		return 0, err
	}

	requested, err := utils.OptionalID(raw, "userId")
	if err != nil {
		return 0, badRequest(err.Error())
	}

	if s.IsAdmin() {
		if requested == 0 {
			return 0, badRequest("userId is required")
		}
		return requested, nil
	}
	if requested != 0 && requested != s.UserID {
		return 0, forbidden("cannot create records for another user")
	}
	return s.UserID, nil
}
