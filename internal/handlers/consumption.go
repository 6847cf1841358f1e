package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

type ConsumptionHandler struct {
	*base
}

type createConsumptionReq struct {
	UserID     json.Number `json:"userId"`
	MeterID    string      `json:"meterId"`
	Timestamp  string      `json:"timestamp"`
	VolumeUsed json.Number `json:"volumeUsed"`
}

func (h *ConsumptionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := listOwner(r)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch consumption records")
		return
	}

	records, err := h.store.ListConsumption(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch consumption records")
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

// Create records usage against a meter; the owning user is resolved from the
// meter, never taken from the body.
func (h *ConsumptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createConsumptionReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	s, err := session(r)
	if err != nil {
		h.fail(w, r, err, "Failed to add consumption record")
		return
	}
	volume, err := utils.Float(req.VolumeUsed, "volumeUsed")
	if req.MeterID == "" || err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input: meterId must be a string and volumeUsed must be a number")
		return
	}
	at, err := utils.ParseTimestamp(req.Timestamp)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A userId in the body only narrows the meter lookup.
	owner, err := utils.OptionalID(req.UserID, "userId")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.IsAdmin() {
		if owner != 0 && owner != s.UserID {
			h.fail(w, r, forbidden("cannot create records for another user"), "")
			return
		}
		owner = s.UserID
	}

	rec, err := h.store.CreateConsumption(r.Context(), store.NewConsumption{
		MeterNumber: req.MeterID,
		VolumeUsed:  volume,
		At:          at,
		OwnerID:     owner,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to add consumption record")
		return
	}

	h.created(w, "consumption_record", "Consumption record added successfully", rec)
}
