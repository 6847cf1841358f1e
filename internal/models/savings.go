package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WaterSaving is a stored savings measurement joined with its user,
// implementation record and conservation method.
type WaterSaving struct {
	ID               int64           `db:"savings_id" json:"savings_id"`
	UserID           int64           `db:"user_id" json:"user_id"`
	UserName         string          `db:"user_name" json:"user_name"`
	WaterMeterNumber string          `db:"water_meter_number" json:"water_meter_number"`
	ImplementationID int64           `db:"implementation_id" json:"implementation_id"`
	MethodID         int64           `db:"method_id" json:"method_id"`
	MethodName       string          `db:"method_name" json:"method_name"`
	DateImplemented  Date            `db:"date_implemented" json:"date_implemented"`
	EndDate          Date            `db:"end_date" json:"end_date"`
	WaterSaved       decimal.Decimal `db:"water_saved" json:"savings"`
	DateCreated      time.Time       `db:"date_created" json:"date_created"`
}
