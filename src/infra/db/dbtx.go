package db

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB used by repositories.
// sqlmock's *sql.DB satisfies it in tests.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PingContext(ctx context.Context) error
}
