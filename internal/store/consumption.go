package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/waterworks/records/internal/models"
)

const consumptionColumns = `record_id, user_id, water_meter_number, consumption_date, consumption`

type NewConsumption struct {
	MeterNumber string
	VolumeUsed  float64
	// At defaults to the store clock when zero.
	At time.Time
	// OwnerID, when non-zero, restricts the meter to one owned by that user.
	OwnerID int64
}

func (s *Store) CreateConsumption(ctx context.Context, in NewConsumption) (*models.ConsumptionRecord, error) {
	in.MeterNumber = strings.TrimSpace(in.MeterNumber)
	if in.MeterNumber == "" {
		return nil, invalid("meterId", "invalid input: meterId must be a string and volumeUsed must be a number")
	}
	if in.VolumeUsed < 0 {
		return nil, invalid("volumeUsed", "volumeUsed must not be negative")
	}
	if in.At.IsZero() {
		in.At = s.now()
	}

	var rec models.ConsumptionRecord
	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		var owner int64
		err := getOne(ctx, tx, &owner, "meter", `SELECT user_id FROM water_meters WHERE meter_number = $1`, in.MeterNumber)
		if errors.Is(err, ErrNotFound) || (err == nil && in.OwnerID != 0 && owner != in.OwnerID) {
			return &NotFoundError{Resource: "meter", Message: "invalid meter"}
		}
		if err != nil {
			return err
		}

		var id int64
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO consumption_records (user_id, water_meter_number, consumption, consumption_date)
			VALUES ($1, $2, $3, $4)
			RETURNING record_id
		`, owner, in.MeterNumber, in.VolumeUsed, in.At.UTC()).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert consumption record: %w", err)
		}
		return getOne(ctx, tx, &rec, "consumption record", `SELECT `+consumptionColumns+` FROM consumption_records WHERE record_id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) ListConsumption(ctx context.Context, userID int64) ([]models.ConsumptionRecord, error) {
	query, args := ownerFilter(`SELECT `+consumptionColumns+` FROM consumption_records`,
		"user_id", userID, "consumption_date DESC, record_id DESC")

	records := []models.ConsumptionRecord{}
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list consumption records: %w", err)
	}
	return records, nil
}
