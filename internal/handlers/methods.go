package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

type MethodHandler struct {
	*base
}

type createMethodReq struct {
	MethodName       string      `json:"methodName"`
	Description      string      `json:"description"`
	Cost             json.Number `json:"cost"`
	EfficiencyRating json.Number `json:"efficiencyRating"`
}

func (h *MethodHandler) List(w http.ResponseWriter, r *http.Request) {
	methods, err := h.store.ListMethods(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to fetch conservation methods")
		return
	}
	utils.JSON(w, http.StatusOK, methods)
}

func (h *MethodHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.store.GetMethod(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch conservation method")
		return
	}
	utils.JSON(w, http.StatusOK, m)
}

// Create adds a method to the catalog. Admin only.
func (h *MethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMethodReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.MethodName == "" || req.Description == "" || req.Cost == "" || req.EfficiencyRating == "" {
		utils.JSONError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	rating, err := utils.Int(req.EfficiencyRating, "efficiencyRating")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Efficiency rating must be between 1 and 5")
		return
	}
	cost, err := utils.Decimal(req.Cost, "cost")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Cost must be a valid number")
		return
	}

	m, err := h.store.CreateMethod(r.Context(), store.NewMethod{
		MethodName:       req.MethodName,
		Description:      req.Description,
		Cost:             cost,
		EfficiencyRating: rating,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to create conservation method")
		return
	}

	h.created(w, "conservation_method", "Conservation method created successfully", m)
}
