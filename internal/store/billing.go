package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/waterworks/records/internal/models"
)

const billColumns = `bill_id, user_id, period_start, period_end, total_usage, amount_due, payment_status, created_at`

type NewBill struct {
	UserID        int64
	PeriodStart   models.Date
	PeriodEnd     models.Date
	TotalUsage    float64
	AmountDue     decimal.Decimal
	PaymentStatus models.PaymentStatus
}

func (n *NewBill) validate() error {
	if n.UserID == 0 || n.PeriodStart.IsZero() || n.PeriodEnd.IsZero() {
		return invalid("", "invalid input: userId (number), periodStart, periodEnd, totalUsage (number) and amountDue (number) are required")
	}
	if n.PeriodEnd.Before(n.PeriodStart.Time) {
		return invalid("periodEnd", "periodEnd must not be before periodStart")
	}
	if n.TotalUsage < 0 {
		return invalid("totalUsage", "totalUsage must not be negative")
	}
	if n.AmountDue.IsNegative() {
		return invalid("amountDue", "amountDue must not be negative")
	}
	if n.AmountDue.GreaterThan(models.MaxAmount) {
		return invalid("amountDue", "amountDue must not exceed %s", models.MaxAmount)
	}
	if n.PaymentStatus == "" {
		n.PaymentStatus = models.PaymentPending
	}
	if !n.PaymentStatus.Valid() {
		return invalid("paymentStatus", "paymentStatus must be one of Pending, Paid, Overdue")
	}
	return nil
}

func (s *Store) CreateBill(ctx context.Context, in NewBill) (*models.Bill, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var b models.Bill
	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		if err := requireUser(ctx, tx, in.UserID); err != nil {
			return err
		}
		var id int64
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO billing (user_id, period_start, period_end, total_usage, amount_due, payment_status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING bill_id
		`, in.UserID, in.PeriodStart, in.PeriodEnd, in.TotalUsage, in.AmountDue.Round(2), in.PaymentStatus).Scan(&id)
		if isUniqueViolation(err) {
			return &DuplicateError{Message: "billing record already exists for this user and period"}
		}
		if err != nil {
			return fmt.Errorf("insert billing record: %w", err)
		}
		return getOne(ctx, tx, &b, "billing record", `SELECT `+billColumns+` FROM billing WHERE bill_id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) ListBills(ctx context.Context, userID int64) ([]models.Bill, error) {
	query, args := ownerFilter(`SELECT `+billColumns+` FROM billing`,
		"user_id", userID, "period_end DESC, bill_id DESC")

	bills := []models.Bill{}
	if err := s.db.SelectContext(ctx, &bills, query, args...); err != nil {
		return nil, fmt.Errorf("list billing records: %w", err)
	}
	return bills, nil
}

// MarkOverdue flips every Pending bill whose period ended before cutoff to
// Overdue and raises one billing alert per bill, all in one transaction.
func (s *Store) MarkOverdue(ctx context.Context, cutoff models.Date) ([]models.Bill, error) {
	marked := []models.Bill{}
	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		var due []models.Bill
		err := sqlx.SelectContext(ctx, tx, &due, `
			SELECT `+billColumns+`
			FROM billing
			WHERE payment_status = $1 AND period_end < $2
			ORDER BY bill_id
		`, models.PaymentPending, cutoff)
		if err != nil {
			return fmt.Errorf("select overdue bills: %w", err)
		}

		for _, b := range due {
			res, err := tx.ExecContext(ctx, `
				UPDATE billing SET payment_status = $1
				WHERE bill_id = $2 AND payment_status = $3
			`, models.PaymentOverdue, b.ID, models.PaymentPending)
			if err != nil {
				return fmt.Errorf("mark bill %d overdue: %w", b.ID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				continue
			}

			msg := fmt.Sprintf("Bill for %s to %s (amount due %s) is overdue",
				b.PeriodStart, b.PeriodEnd, b.AmountDue.StringFixed(2))
			_, err = tx.ExecContext(ctx, `
				INSERT INTO alerts (user_id, type, message, date_issued, status)
				VALUES ($1, $2, $3, $4, $5)
			`, b.UserID, models.AlertTypeBilling, msg, s.now(), models.AlertOpen)
			if err != nil {
				return fmt.Errorf("raise overdue alert: %w", err)
			}

			b.PaymentStatus = models.PaymentOverdue
			marked = append(marked, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return marked, nil
}
