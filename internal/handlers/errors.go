package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/waterworks/records/internal/metrics"
	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

// requestError carries a status decided in the handler layer: bad input that
// never reached the store, or a failed authorization check.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &requestError{status: http.StatusBadRequest, msg: msg}
}

func forbidden(msg string) error {
	return &requestError{status: http.StatusForbidden, msg: msg}
}

func unauthorized(msg string) error {
	return &requestError{status: http.StatusUnauthorized, msg: msg}
}

type base struct {
	store        *store.Store
	metrics      *metrics.Metrics
	exposeDetail bool
}

// fail maps err onto a status and an {error, detail?} body. Unexpected errors
// become 500 with generic as the message; the cause is only echoed back when
// detail exposure is enabled.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error, generic string) {
	log := zerolog.Ctx(r.Context())

	var (
		reqErr *requestError
		valErr *store.ValidationError
		nfErr  *store.NotFoundError
		dupErr *store.DuplicateError
	)
	switch {
	case errors.As(err, &reqErr):
		log.Debug().Err(err).Int("status", reqErr.status).Msg("request rejected")
		utils.JSONError(w, reqErr.status, reqErr.msg)
	case errors.As(err, &valErr):
		log.Debug().Err(err).Str("field", valErr.Field).Msg("validation failed")
		utils.JSONError(w, http.StatusBadRequest, valErr.Message)
	case errors.As(err, &nfErr):
		log.Debug().Err(err).Msg("not found")
		utils.JSONError(w, http.StatusNotFound, nfErr.Error())
	case errors.As(err, &dupErr):
		log.Debug().Err(err).Msg("duplicate")
		utils.JSONError(w, http.StatusBadRequest, dupErr.Message)
	default:
		log.Error().Err(err).Msg(generic)
		if b.exposeDetail {
			utils.JSONErrorDetail(w, http.StatusInternalServerError, generic, err.Error())
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, generic)
	}
}

func (b *base) created(w http.ResponseWriter, entity, msg string, data any) {
	b.metrics.Created(entity)
	utils.JSON(w, http.StatusCreated, utils.Created{Message: msg, Data: data})
}
