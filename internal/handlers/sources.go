package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

type SourceHandler struct {
	*base
}

type createSourceReq struct {
	UserID   json.Number `json:"userId"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Capacity json.Number `json:"capacity"`
	Location string      `json:"location"`
}

func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := listOwner(r)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch water sources")
		return
	}

	sources, err := h.store.ListSources(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch water sources")
		return
	}
	utils.JSON(w, http.StatusOK, sources)
}

func (h *SourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSourceReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	userID, err := createOwner(r, req.UserID)
	if err != nil {
		h.fail(w, r, err, "Failed to add water source")
		return
	}
	if req.Type == "" || req.Capacity == "" || req.Location == "" {
		utils.JSONError(w, http.StatusBadRequest, "Missing required fields: userId, type, capacity, location")
		return
	}
	capacity, err := utils.Float(req.Capacity, "capacity")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	src, err := h.store.CreateSource(r.Context(), store.NewSource{
		UserID:   userID,
		Name:     req.Name,
		Type:     models.SourceType(req.Type),
		Capacity: capacity,
		Location: req.Location,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to add water source")
		return
	}

	h.created(w, "water_source", "Water source added successfully", src)
}
