package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ImplementationStatus string

const (
	ImplementationActive   ImplementationStatus = "active"
	ImplementationInactive ImplementationStatus = "inactive"
)

func (s ImplementationStatus) Valid() bool {
	return s == ImplementationActive || s == ImplementationInactive
}

// ImplementationRecord is a user's adoption of a conservation method,
// joined with the user and method names for display.
type ImplementationRecord struct {
	ID              int64                `db:"record_id" json:"record_id"`
	UserID          int64                `db:"user_id" json:"user_id"`
	UserName        string               `db:"user_name" json:"user_name"`
	MethodID        int64                `db:"method_id" json:"method_id"`
	MethodName      string               `db:"method_name" json:"method_name"`
	DateImplemented Date                 `db:"date_implemented" json:"date_implemented"`
	Status          ImplementationStatus `db:"status" json:"status"`
	SavingsAchieved decimal.Decimal      `db:"savings_achieved" json:"savings_achieved"`
	DateCreated     time.Time            `db:"date_created" json:"date_created"`
}
