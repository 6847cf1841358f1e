package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinEfficiencyRating = 1
	MaxEfficiencyRating = 5
)

type ConservationMethod struct {
	ID               int64           `db:"method_id" json:"method_id"`
	MethodName       string          `db:"method_name" json:"method_name"`
	Description      string          `db:"description" json:"description"`
	Cost             decimal.Decimal `db:"cost" json:"cost"`
	EfficiencyRating int             `db:"efficiency_rating" json:"efficiency_rating"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}
