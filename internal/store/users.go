package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/waterworks/records/internal/db"
	"github.com/waterworks/records/internal/models"
)

const userColumns = `user_id, name, address, phone, email, password_hash, role, created_at`

type NewUser struct {
	Name         string
	Address      string
	Phone        string
	Email        string
	PasswordHash string
	Role         models.Role
	// FirstAdmin makes the insert fail with ErrAdminExists once any admin
	// account exists.
	FirstAdmin bool
}

func (n *NewUser) validate() error {
	n.Name = strings.TrimSpace(n.Name)
	n.Email = strings.ToLower(strings.TrimSpace(n.Email))
	if n.Name == "" || n.Email == "" {
		return invalid("name", "missing required fields: name and email")
	}
	if !strings.Contains(n.Email, "@") {
		return invalid("email", "invalid email address")
	}
	if n.Role == "" {
		n.Role = models.RoleUser
	}
	if !n.Role.Valid() {
		return invalid("role", "role must be either \"user\" or \"admin\"")
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var u models.User
	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		if in.FirstAdmin {
			if err := s.requireNoAdmin(ctx, tx); err != nil {
				return err
			}
		}

		var id int64
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO users (name, address, phone, email, password_hash, role)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING user_id
		`, in.Name, in.Address, in.Phone, in.Email, in.PasswordHash, in.Role).Scan(&id)
		if isUniqueViolation(err) {
			return &DuplicateError{Message: "email already registered"}
		}
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return getOne(ctx, tx, &u, "user", `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY name, user_id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := getOne(ctx, s.db, &u, "user", `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindLoginUser looks a user up by exact email and role.
func (s *Store) FindLoginUser(ctx context.Context, email string, role models.Role) (*models.User, error) {
	var u models.User
	err := getOne(ctx, s.db, &u, "user", `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1 AND role = $2
	`, strings.ToLower(strings.TrimSpace(email)), role)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// requireNoAdmin serializes bootstrap registrations. On Postgres the users
// table is locked in a mode that conflicts with itself until tx ends, so a
// second bootstrap waits and then sees the first admin. sqlite allows a
// single writer anyway.
func (s *Store) requireNoAdmin(ctx context.Context, tx *sqlx.Tx) error {
	if s.db.DriverName() == db.DriverPostgres {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock users: %w", err)
		}
	}
	ok, err := exists(ctx, tx, `SELECT 1 FROM users WHERE role = $1`, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if ok {
		return ErrAdminExists
	}
	return nil
}
