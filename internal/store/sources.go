package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/waterworks/records/internal/models"
)

const sourceColumns = `source_id, user_id, name, type, capacity, location, created_at`

type NewSource struct {
	UserID   int64
	Name     string
	Type     models.SourceType
	Capacity float64
	Location string
}

func (n *NewSource) validate() error {
	n.Name = strings.TrimSpace(n.Name)
	n.Location = strings.TrimSpace(n.Location)
	if n.UserID == 0 || n.Type == "" || n.Location == "" {
		return invalid("", "missing required fields: userId, type, capacity, location")
	}
	if !n.Type.Valid() {
		return invalid("type", "type must be either \"Groundwater\" or \"Municipal\"")
	}
	if n.Capacity < 0 {
		return invalid("capacity", "capacity must not be negative")
	}
	return nil
}

func (s *Store) CreateSource(ctx context.Context, in NewSource) (*models.WaterSource, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var src models.WaterSource
	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		if err := requireUser(ctx, tx, in.UserID); err != nil {
			return err
		}
		var id int64
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO water_sources (user_id, name, type, capacity, location)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING source_id
		`, in.UserID, in.Name, in.Type, in.Capacity, in.Location).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert water source: %w", err)
		}
		return getOne(ctx, tx, &src, "water source", `SELECT `+sourceColumns+` FROM water_sources WHERE source_id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &src, nil
}

// ListSources returns every source, or only userID's when userID is non-zero.
func (s *Store) ListSources(ctx context.Context, userID int64) ([]models.WaterSource, error) {
	query, args := ownerFilter(`SELECT `+sourceColumns+` FROM water_sources`,
		"user_id", userID, "user_id, type, location, source_id")

	sources := []models.WaterSource{}
	if err := s.db.SelectContext(ctx, &sources, query, args...); err != nil {
		return nil, fmt.Errorf("list water sources: %w", err)
	}
	return sources, nil
}
