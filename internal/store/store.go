// Package store is the data-access layer: every exported method maps one
// operation onto parameterized SQL, and every create runs its reference checks
// and insert inside a single transaction.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/waterworks/records/internal/db"
)

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func New(conn *sqlx.DB) *Store {
	return &Store{
		db:  conn,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock returns a copy of the store that reads the current time from now.
func (s *Store) WithClock(now func() time.Time) *Store {
	cp := *s
	cp.now = now
	return &cp
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) tx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return db.WithTx(ctx, s.db, fn)
}

// exists runs SELECT EXISTS around query.
func exists(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (bool, error) {
	var ok bool
	if err := sqlx.GetContext(ctx, q, &ok, "SELECT EXISTS ("+query+")", args...); err != nil {
		return false, err
	}
	return ok, nil
}

func requireUser(ctx context.Context, q sqlx.QueryerContext, userID int64) error {
	ok, err := exists(ctx, q, `SELECT 1 FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return notFound("user")
	}
	return nil
}

// ownerFilter appends an optional user_id predicate and the ordering clause.
func ownerFilter(query, column string, userID int64, orderBy string) (string, []any) {
	var args []any
	if userID != 0 {
		query += " WHERE " + column + " = $1"
		args = append(args, userID)
	}
	return query + " ORDER BY " + orderBy, args
}

func getOne(ctx context.Context, q sqlx.QueryerContext, dest any, resource, query string, args ...any) error {
	err := sqlx.GetContext(ctx, q, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(resource)
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", resource, err)
	}
	return nil
}
