package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/waterworks/records/internal/models"
)

const implementationSelect = `
	SELECT
		ir.record_id,
		ir.user_id,
		u.name AS user_name,
		cm.method_id,
		cm.method_name,
		ir.date_implemented,
		ir.status,
		ir.savings_achieved,
		ir.date_created
	FROM implementation_records ir
	JOIN users u ON ir.user_id = u.user_id
	JOIN conservation_methods cm ON ir.method_id = cm.method_id`

type NewImplementation struct {
	UserID          int64
	MethodID        int64
	DateImplemented models.Date
	Status          models.ImplementationStatus
	SavingsAchieved decimal.Decimal
}

func (n *NewImplementation) validate() error {
	if n.UserID == 0 || n.MethodID == 0 || n.DateImplemented.IsZero() || n.Status == "" {
		return invalid("", "missing required fields")
	}
	if !n.Status.Valid() {
		return invalid("status", "status must be either \"active\" or \"inactive\"")
	}
	if n.SavingsAchieved.IsNegative() {
		return invalid("savingsAchieved", "savings achieved must be a valid positive number")
	}
	if n.SavingsAchieved.GreaterThan(models.MaxAmount) {
		return invalid("savingsAchieved", "savings achieved must not exceed %s", models.MaxAmount)
	}
	return nil
}

func (s *Store) CreateImplementation(ctx context.Context, in NewImplementation) (*models.ImplementationRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var rec models.ImplementationRecord
	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		if err := requireUser(ctx, tx, in.UserID); err != nil {
			return err
		}
		ok, err := exists(ctx, tx, `SELECT 1 FROM conservation_methods WHERE method_id = $1`, in.MethodID)
		if err != nil {
			return fmt.Errorf("check conservation method: %w", err)
		}
		if !ok {
			return notFound("conservation method")
		}

		var id int64
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO implementation_records (user_id, method_id, date_implemented, status, savings_achieved)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING record_id
		`, in.UserID, in.MethodID, in.DateImplemented, in.Status, in.SavingsAchieved.Round(2)).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert implementation record: %w", err)
		}
		return getOne(ctx, tx, &rec, "implementation record", implementationSelect+` WHERE ir.record_id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) ListImplementations(ctx context.Context, userID int64) ([]models.ImplementationRecord, error) {
	query, args := ownerFilter(implementationSelect, "ir.user_id", userID,
		"ir.date_implemented DESC, ir.record_id DESC")

	records := []models.ImplementationRecord{}
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list implementation records: %w", err)
	}
	return records, nil
}

func (s *Store) GetImplementation(ctx context.Context, id int64) (*models.ImplementationRecord, error) {
	var rec models.ImplementationRecord
	if err := getOne(ctx, s.db, &rec, "implementation record", implementationSelect+` WHERE ir.record_id = $1`, id); err != nil {
		return nil, err
	}
	return &rec, nil
}
