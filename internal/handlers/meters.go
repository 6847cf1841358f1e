package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

type MeterHandler struct {
	*base
}

type createMeterReq struct {
	UserID           json.Number `json:"userId"`
	Location         string      `json:"location"`
	InstallationDate string      `json:"installationDate"`
	Status           string      `json:"status"`
}

func (h *MeterHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := listOwner(r)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch water meters")
		return
	}

	meters, err := h.store.ListMeters(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch water meters")
		return
	}
	utils.JSON(w, http.StatusOK, meters)
}

// Create registers a meter; the meter number is generated server-side.
func (h *MeterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMeterReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	userID, err := createOwner(r, req.UserID)
	if err != nil {
		h.fail(w, r, err, "Failed to add water meter")
		return
	}
	installed, err := models.ParseDate(req.InstallationDate)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "installationDate: "+err.Error())
		return
	}

	m, err := h.store.CreateMeter(r.Context(), store.NewMeter{
		UserID:           userID,
		Location:         req.Location,
		InstallationDate: installed,
		Status:           models.MeterStatus(req.Status),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to add water meter")
		return
	}

	h.created(w, "water_meter", "Water meter added successfully", m)
}
