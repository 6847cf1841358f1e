package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/waterworks/records/internal/models"
)

const alertColumns = `alert_id, user_id, type, message, date_issued, status`

type NewAlert struct {
	UserID  int64
	Type    string
	Message string
	Status  models.AlertStatus
}

func (s *Store) CreateAlert(ctx context.Context, in NewAlert) (*models.Alert, error) {
	in.Type = strings.TrimSpace(in.Type)
	in.Message = strings.TrimSpace(in.Message)
	if in.UserID == 0 || in.Type == "" || in.Message == "" {
		return nil, invalid("", "missing required fields: userId, type, message")
	}
	if in.Status == "" {
		in.Status = models.AlertOpen
	}
	if !in.Status.Valid() {
		return nil, invalid("status", "status must be either \"open\" or \"resolved\"")
	}

	var a models.Alert
	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		if err := requireUser(ctx, tx, in.UserID); err != nil {
			return err
		}
		var id int64
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO alerts (user_id, type, message, date_issued, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING alert_id
		`, in.UserID, in.Type, in.Message, s.now(), in.Status).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert alert: %w", err)
		}
		return getOne(ctx, tx, &a, "alert", `SELECT `+alertColumns+` FROM alerts WHERE alert_id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) ListAlerts(ctx context.Context, userID int64) ([]models.Alert, error) {
	query, args := ownerFilter(`SELECT `+alertColumns+` FROM alerts`,
		"user_id", userID, "date_issued DESC, alert_id DESC")

	alerts := []models.Alert{}
	if err := s.db.SelectContext(ctx, &alerts, query, args...); err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}
