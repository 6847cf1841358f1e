package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentOverdue PaymentStatus = "Overdue"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

type Bill struct {
	ID            int64           `db:"bill_id" json:"bill_id"`
	UserID        int64           `db:"user_id" json:"user_id"`
	PeriodStart   Date            `db:"period_start" json:"period_start"`
	PeriodEnd     Date            `db:"period_end" json:"period_end"`
	TotalUsage    float64         `db:"total_usage" json:"total_usage"`
	AmountDue     decimal.Decimal `db:"amount_due" json:"amount_due"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
