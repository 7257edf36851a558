// Package store opens the SQLite database and applies the embedded schema.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// pragmas are applied to every pooled connection through the DSN.
const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Open connects to the SQLite database at path and checks the connection.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite", path+sep+pragmas)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s: %w", path, err)
	}
	return db, nil
}

// Migrate executes the schema (idempotent) inside a single transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	slog.Info("Running migrations...")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration transaction: %w", err)
	}

	slog.Info("Migrations completed successfully.")
	return nil
}

// NotFound reports whether err means the row does not exist.
func NotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
