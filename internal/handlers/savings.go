package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

type SavingsHandler struct {
	*base
}

type createSavingReq struct {
	UserID           json.Number `json:"userId"`
	WaterMeterNumber string      `json:"waterMeterNumber"`
	ImplementationID json.Number `json:"implementationId"`
	EndDate          string      `json:"endDate"`
}

func (h *SavingsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := listOwner(r)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch water savings")
		return
	}

	rows, err := h.store.ListSavings(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch water savings")
		return
	}
	utils.JSON(w, http.StatusOK, rows)
}

// Create stores a savings measurement computed from the referenced
// implementation record's date and the submitted end date.
func (h *SavingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSavingReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	userID, err := createOwner(r, req.UserID)
	if err != nil {
		h.fail(w, r, err, "Failed to add water savings record")
		return
	}
	if req.WaterMeterNumber == "" || req.ImplementationID == "" || req.EndDate == "" {
		utils.JSONError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	implID, err := utils.OptionalID(req.ImplementationID, "implementationId")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := models.ParseDate(req.EndDate)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "endDate: "+err.Error())
		return
	}

	saving, err := h.store.CreateSaving(r.Context(), store.NewSaving{
		UserID:           userID,
		WaterMeterNumber: req.WaterMeterNumber,
		ImplementationID: implID,
		EndDate:          end,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to add water savings record")
		return
	}

	h.created(w, "water_saving", "Water savings record added successfully", saving)
}
