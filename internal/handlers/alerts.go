package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

type AlertHandler struct {
	*base
}

type createAlertReq struct {
	UserID  json.Number `json:"userId"`
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
}

func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := listOwner(r)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch alerts")
		return
	}

	alerts, err := h.store.ListAlerts(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch alerts")
		return
	}
	utils.JSON(w, http.StatusOK, alerts)
}

// Create raises an alert for a user. Admin only.
func (h *AlertHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAlertReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	userID, err := createOwner(r, req.UserID)
	if err != nil {
		h.fail(w, r, err, "Failed to add alert")
		return
	}

	a, err := h.store.CreateAlert(r.Context(), store.NewAlert{
		UserID:  userID,
		Type:    req.Type,
		Message: req.Message,
		Status:  models.AlertStatus(req.Status),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to add alert")
		return
	}

	h.created(w, "alert", "Alert added successfully", a)
}
