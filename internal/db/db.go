package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Options configures the connection pool. Zero values fall back to defaults.
type Options struct {
	Driver      string
	DSN         string
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

func (o Options) withDefaults() Options {
	if o.Driver == "" {
		o.Driver = DriverPostgres
	}
	if o.MaxOpen == 0 {
		o.MaxOpen = 25
	}
	if o.MaxIdle == 0 {
		o.MaxIdle = 25
	}
	if o.MaxLifetime == 0 {
		o.MaxLifetime = 5 * time.Minute
	}
	return o
}

func Connect(ctx context.Context, opts Options) (*sqlx.DB, error) {
	opts = opts.withDefaults()
	if opts.DSN == "" {
		return nil, fmt.Errorf("db: DSN is required")
	}

	var (
		db  *sqlx.DB
		err error
	)
	switch opts.Driver {
	case DriverPostgres:
		db, err = openPostgres(opts.DSN)
	case DriverSQLite:
		db, err = openSQLite(opts.DSN)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	if opts.Driver == DriverPostgres {
		db.SetMaxOpenConns(opts.MaxOpen)
		db.SetMaxIdleConns(opts.MaxIdle)
		db.SetConnMaxLifetime(opts.MaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db: failed to connect: %w", err)
	}

	var tmp int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&tmp); err != nil {
		db.Close()
		return nil, fmt.Errorf("db: health check failed: %w", err)
	}

	return db, nil
}

func openPostgres(dsn string) (*sqlx.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
	}

	// Fail fast on startup if PG is unreachable
	cfg.ConnectTimeout = 5 * time.Second

	return sqlx.NewDb(stdlib.OpenDB(*cfg), DriverPostgres), nil
}

// openSQLite pins the pool to a single connection: sqlite serializes writers
// anyway, and an in-memory database only lives as long as its connection.
func openSQLite(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("db: failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}
