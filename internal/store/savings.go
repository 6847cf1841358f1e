package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/savings"
)

const savingSelect = `
	SELECT
		ws.savings_id,
		ws.user_id,
		u.name AS user_name,
		ws.water_meter_number,
		ws.implementation_id,
		cm.method_id,
		cm.method_name,
		ir.date_implemented,
		ws.end_date,
		ws.water_saved,
		ws.date_created
	FROM water_savings ws
	JOIN users u ON ws.user_id = u.user_id
	JOIN implementation_records ir ON ws.implementation_id = ir.record_id
	JOIN conservation_methods cm ON ir.method_id = cm.method_id`

type NewSaving struct {
	UserID           int64
	WaterMeterNumber string
	ImplementationID int64
	EndDate          models.Date
}

// CreateSaving stores the savings derived as of creation time; reads return
// the stored value instead of recomputing it.
func (s *Store) CreateSaving(ctx context.Context, in NewSaving) (*models.WaterSaving, error) {
	in.WaterMeterNumber = strings.TrimSpace(in.WaterMeterNumber)
	if in.UserID == 0 || in.WaterMeterNumber == "" || in.ImplementationID == 0 || in.EndDate.IsZero() {
		return nil, invalid("", "missing required fields")
	}

	var saving models.WaterSaving
	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		if err := requireUser(ctx, tx, in.UserID); err != nil {
			return err
		}

		var meterOwner int64
		err := getOne(ctx, tx, &meterOwner, "water meter",
			`SELECT user_id FROM water_meters WHERE meter_number = $1`, in.WaterMeterNumber)
		if err != nil {
			return err
		}
		if meterOwner != in.UserID {
			return invalid("waterMeterNumber", "water meter does not belong to this user")
		}

		var impl struct {
			UserID          int64       `db:"user_id"`
			DateImplemented models.Date `db:"date_implemented"`
		}
		err = getOne(ctx, tx, &impl, "implementation record",
			`SELECT user_id, date_implemented FROM implementation_records WHERE record_id = $1`, in.ImplementationID)
		if err != nil {
			return err
		}
		if impl.UserID != in.UserID {
			return invalid("implementationId", "implementation record does not belong to this user")
		}

		saved := savings.Compute(impl.DateImplemented, in.EndDate)
		if saved.IsNegative() {
			return invalid("endDate", "endDate must not be before the implementation date %s", impl.DateImplemented)
		}

		var id int64
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO water_savings (user_id, water_meter_number, implementation_id, end_date, water_saved)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING savings_id
		`, in.UserID, in.WaterMeterNumber, in.ImplementationID, in.EndDate, saved).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert water savings: %w", err)
		}
		return getOne(ctx, tx, &saving, "water savings record", savingSelect+` WHERE ws.savings_id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &saving, nil
}

func (s *Store) ListSavings(ctx context.Context, userID int64) ([]models.WaterSaving, error) {
	query, args := ownerFilter(savingSelect, "ws.user_id", userID,
		"ws.date_created DESC, ws.savings_id DESC")

	rows := []models.WaterSaving{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list water savings: %w", err)
	}
	return rows, nil
}
