package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

type ImplementationHandler struct {
	*base
}

type createImplementationReq struct {
	UserID          json.Number `json:"userId"`
	MethodID        json.Number `json:"methodId"`
	DateImplemented string      `json:"dateImplemented"`
	Status          string      `json:"status"`
	SavingsAchieved json.Number `json:"savingsAchieved"`
}

func (h *ImplementationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := listOwner(r)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch implementation records")
		return
	}

	records, err := h.store.ListImplementations(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch implementation records")
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

// Get returns one record. Non-admins only see their own; another user's
// record is reported as missing.
func (h *ImplementationHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := session(r)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch implementation record")
		return
	}
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.store.GetImplementation(r.Context(), id)
	if err == nil && !s.IsAdmin() && rec.UserID != s.UserID {
		err = &store.NotFoundError{Resource: "implementation record"}
	}
	if err != nil {
		h.fail(w, r, err, "Failed to fetch implementation record")
		return
	}
	utils.JSON(w, http.StatusOK, rec)
}

func (h *ImplementationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createImplementationReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	userID, err := createOwner(r, req.UserID)
	if err != nil {
		h.fail(w, r, err, "Failed to create implementation record")
		return
	}
	if req.MethodID == "" || req.DateImplemented == "" || req.Status == "" || req.SavingsAchieved == "" {
		utils.JSONError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	methodID, err := utils.OptionalID(req.MethodID, "methodId")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	implemented, err := models.ParseDate(req.DateImplemented)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "dateImplemented: "+err.Error())
		return
	}
	saved, err := utils.Decimal(req.SavingsAchieved, "savingsAchieved")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Savings achieved must be a valid positive number")
		return
	}

	rec, err := h.store.CreateImplementation(r.Context(), store.NewImplementation{
		UserID:          userID,
		MethodID:        methodID,
		DateImplemented: implemented,
		Status:          models.ImplementationStatus(req.Status),
		SavingsAchieved: saved,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to create implementation record")
		return
	}

	h.created(w, "implementation_record", "Implementation record created successfully", rec)
}
