package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/waterworks/records/internal/models"
)

const methodColumns = `method_id, method_name, description, cost, efficiency_rating, created_at`

type NewMethod struct {
	MethodName       string
	Description      string
	Cost             decimal.Decimal
	EfficiencyRating int
}

func (n *NewMethod) validate() error {
	n.MethodName = strings.TrimSpace(n.MethodName)
	n.Description = strings.TrimSpace(n.Description)
	if n.MethodName == "" || n.Description == "" {
		return invalid("", "missing required fields")
	}
	if n.EfficiencyRating < models.MinEfficiencyRating || n.EfficiencyRating > models.MaxEfficiencyRating {
		return invalid("efficiencyRating", "efficiency rating must be between %d and %d",
			models.MinEfficiencyRating, models.MaxEfficiencyRating)
	}
	if n.Cost.IsNegative() {
		return invalid("cost", "cost must not be negative")
	}
	if n.Cost.GreaterThan(models.MaxAmount) {
		return invalid("cost", "cost must not exceed %s", models.MaxAmount)
	}
	return nil
}

// CreateMethod inserts and re-reads the method by its returned id in the same
// transaction, so concurrent creates never hand back each other's rows.
func (s *Store) CreateMethod(ctx context.Context, in NewMethod) (*models.ConservationMethod, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var m models.ConservationMethod
	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		var id int64
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO conservation_methods (method_name, description, cost, efficiency_rating)
			VALUES ($1, $2, $3, $4)
			RETURNING method_id
		`, in.MethodName, in.Description, in.Cost.Round(2), in.EfficiencyRating).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert conservation method: %w", err)
		}
		return getOne(ctx, tx, &m, "conservation method", `SELECT `+methodColumns+` FROM conservation_methods WHERE method_id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListMethods(ctx context.Context) ([]models.ConservationMethod, error) {
	methods := []models.ConservationMethod{}
	err := s.db.SelectContext(ctx, &methods, `SELECT `+methodColumns+` FROM conservation_methods ORDER BY method_id`)
	if err != nil {
		return nil, fmt.Errorf("list conservation methods: %w", err)
	}
	return methods, nil
}

func (s *Store) GetMethod(ctx context.Context, id int64) (*models.ConservationMethod, error) {
	var m models.ConservationMethod
	if err := getOne(ctx, s.db, &m, "conservation method", `SELECT `+methodColumns+` FROM conservation_methods WHERE method_id = $1`, id); err != nil {
		return nil, err
	}
	return &m, nil
}
