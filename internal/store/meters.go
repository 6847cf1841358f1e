package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/waterworks/records/internal/models"
)

const meterColumns = `meter_id, user_id, meter_number, location, installation_date, status, created_at`

// meterNumberAttempts bounds the retries when two meters are created in the
// same millisecond.
const meterNumberAttempts = 5

type NewMeter struct {
	UserID           int64
	Location         string
	InstallationDate models.Date
	Status           models.MeterStatus
}

func (n *NewMeter) validate() error {
	n.Location = strings.TrimSpace(n.Location)
	if n.UserID == 0 {
		return invalid("userId", "invalid userId: must be a number")
	}
	if n.InstallationDate.IsZero() {
		return invalid("installationDate", "installationDate is required")
	}
	if n.Status == "" {
		n.Status = models.MeterActive
	}
	if !n.Status.Valid() {
		return invalid("status", "status must be one of active, inactive, maintenance")
	}
	return nil
}

// MeterNumber renders the generated identifier for a meter created at t.
func MeterNumber(t time.Time) string {
	return models.MeterNumberPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// CreateMeter synthesizes the meter number from the current time. A collision
// on the unique meter_number index is retried with the next millisecond.
func (s *Store) CreateMeter(ctx context.Context, in NewMeter) (*models.WaterMeter, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	base := s.now()
	for attempt := 0; attempt < meterNumberAttempts; attempt++ {
		number := MeterNumber(base.Add(time.Duration(attempt) * time.Millisecond))
		m, err := s.insertMeter(ctx, in, number)
		if errors.Is(err, ErrDuplicate) {
			continue
		}
		return m, err
	}
	return nil, &DuplicateError{Message: "could not allocate a unique meter number, retry later"}
}

func (s *Store) insertMeter(ctx context.Context, in NewMeter, number string) (*models.WaterMeter, error) {
	var m models.WaterMeter
	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		if err := requireUser(ctx, tx, in.UserID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO water_meters (user_id, meter_number, location, installation_date, status)
			VALUES ($1, $2, $3, $4, $5)
		`, in.UserID, number, in.Location, in.InstallationDate, in.Status)
		if isUniqueViolation(err) {
			return &DuplicateError{Message: "meter number already exists"}
		}
		if err != nil {
			return fmt.Errorf("insert water meter: %w", err)
		}
		return getOne(ctx, tx, &m, "water meter", `SELECT `+meterColumns+` FROM water_meters WHERE meter_number = $1`, number)
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListMeters(ctx context.Context, userID int64) ([]models.WaterMeter, error) {
	query, args := ownerFilter(`SELECT `+meterColumns+` FROM water_meters`,
		"user_id", userID, "meter_number")

	meters := []models.WaterMeter{}
	if err := s.db.SelectContext(ctx, &meters, query, args...); err != nil {
		return nil, fmt.Errorf("list water meters: %w", err)
	}
	return meters, nil
}

func (s *Store) GetMeter(ctx context.Context, number string) (*models.WaterMeter, error) {
	var m models.WaterMeter
	if err := getOne(ctx, s.db, &m, "water meter", `SELECT `+meterColumns+` FROM water_meters WHERE meter_number = $1`, number); err != nil {
		return nil, err
	}
	return &m, nil
}
