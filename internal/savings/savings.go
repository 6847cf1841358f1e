// Package savings derives the liters saved by a conservation method between
// the day it was implemented and a measurement end date.
package savings

import (
	"github.com/shopspring/decimal"

	"github.com/waterworks/records/internal/models"
)

var (
	// HoursPerDay converts elapsed days into hours of operation.
	HoursPerDay = decimal.NewFromInt(24)
	// LitersPerHour is the fixed saving rate credited for every hour elapsed.
	LitersPerHour = decimal.RequireFromString("0.03")
)

// Compute returns round(days * 24 * 0.03, 2) where days is the number of whole
// days from implemented to end. The result is negative when end precedes
// implemented; callers reject that.
func Compute(implemented, end models.Date) decimal.Decimal {
	days := decimal.NewFromInt(int64(implemented.DaysUntil(end)))
	return days.Mul(HoursPerDay).Mul(LitersPerHour).Round(2)
}
