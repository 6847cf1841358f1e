package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

type BillingHandler struct {
	*base
}

type createBillReq struct {
	UserID        json.Number `json:"userId"`
	PeriodStart   string      `json:"periodStart"`
	PeriodEnd     string      `json:"periodEnd"`
	TotalUsage    json.Number `json:"totalUsage"`
	AmountDue     json.Number `json:"amountDue"`
	PaymentStatus string      `json:"paymentStatus"`
}

const billInputError = "Invalid input: userId (number), periodStart, periodEnd, totalUsage (number) and amountDue (number) are required"

func (h *BillingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := listOwner(r)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch billing records")
		return
	}

	bills, err := h.store.ListBills(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch billing records")
		return
	}
	utils.JSON(w, http.StatusOK, bills)
}

func (h *BillingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBillReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	userID, err := createOwner(r, req.UserID)
	if err != nil {
		h.fail(w, r, err, "Failed to add billing record")
		return
	}

	start, errStart := models.ParseDate(req.PeriodStart)
	end, errEnd := models.ParseDate(req.PeriodEnd)
	usage, errUsage := utils.Float(req.TotalUsage, "totalUsage")
	amount, errAmount := utils.Decimal(req.AmountDue, "amountDue")
	if errStart != nil || errEnd != nil || errUsage != nil || errAmount != nil {
		utils.JSONError(w, http.StatusBadRequest, billInputError)
		return
	}

	bill, err := h.store.CreateBill(r.Context(), store.NewBill{
		UserID:        userID,
		PeriodStart:   start,
		PeriodEnd:     end,
		TotalUsage:    usage,
		AmountDue:     amount,
		PaymentStatus: models.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to add billing record")
		return
	}

	h.created(w, "bill", "Billing record added successfully", bill)
}
