package db

import (
	"context"
	"database/sql"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Schema interface {
	QueryRower
	Execer
}

// HasTable reports whether table exists in the current schema.
// Any query error reads as "missing".
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// EnsureTable runs ddl when table is missing.
func EnsureTable(ctx context.Context, s Schema, table, ddl string) error {
	if HasTable(ctx, s, table) {
		return nil
	}
	_, err := s.ExecContext(ctx, ddl)
	return err
}
