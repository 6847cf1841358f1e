// Package models holds the row and response types shared by the store and
// the HTTP handlers.
package models

import "github.com/shopspring/decimal"

// MaxAmount is the largest money or savings value a NUMERIC(12, 2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

func init() {
	// Amounts and savings are rendered as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}
