package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/waterworks/records/internal/models"
)

// Request bodies accept numeric fields either as JSON numbers or as numeric
// strings, the way HTML forms submit them, so they are decoded as json.Number.

// ParseID parses a positive row identifier.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

// OptionalID parses n as an id, returning 0 when it is absent.
func OptionalID(n json.Number, field string) (int64, error) {
	if n == "" {
		return 0, nil
	}
	id, err := ParseID(n.String())
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be a number", field)
	}
	return id, nil
}

// Float parses a required finite number.
func Float(n json.Number, field string) (float64, error) {
	if n == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be a valid number", field)
	}
	return f, nil
}

// maxDecimalExponent bounds the exponent NewFromString accepts. Rounding a
// value rescales its coefficient by 10^exponent.
const maxDecimalExponent = 20

// Decimal parses a required exact number no larger than models.MaxAmount.
func Decimal(n json.Number, field string) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, fmt.Errorf("%s is required", field)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a valid number", field)
	}
	if exp := d.Exponent(); exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return decimal.Zero, fmt.Errorf("%s is out of range", field)
	}
	if d.Abs().GreaterThan(models.MaxAmount) {
		return decimal.Zero, fmt.Errorf("%s is out of range", field)
	}
	return d, nil
}

// Int parses a required integer.
func Int(n json.Number, field string) (int, error) {
	if n == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	i, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", field)
	}
	return i, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339, HTML datetime-local values and plain dates.
// Values without a zone are taken as UTC. Empty input yields the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
