// Package testutil provides a migrated in-memory database for tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jmoiron/sqlx"

	"github.com/waterworks/records/internal/db"
)

var dbSeq atomic.Int64

// NewSQLite opens a fresh, fully migrated in-memory sqlite database. Each call
// gets its own database.
func NewSQLite(ctx context.Context) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:waterworks_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	conn, err := db.Connect(ctx, db.Options{Driver: db.DriverSQLite, DSN: dsn})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
