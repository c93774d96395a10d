// Package migrate applies the embedded SQL migrations that create the
// document store schema. Applied versions are tracked in a
// schema_migrations table, so running it on every startup is safe.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Run applies any embedded migration that has not been recorded yet, in
// lexical filename order.
func Run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	all, err := embeddedMigrations()
	if err != nil {
		return err
	}
	for _, m := range all {
		if err := apply(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}

// migration is one embedded .sql file; version is the filename without its
// extension and doubles as the ledger key.
type migration struct {
	version string
	file    string
}

func embeddedMigrations() ([]migration, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	out := make([]migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		out = append(out, migration{
			version: strings.TrimSuffix(e.Name(), ".sql"),
			file:    e.Name(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].file < out[j].file })
	return out, nil
}

func alreadyApplied(ctx context.Context, db *sql.DB, m migration) (bool, error) {
	var applied bool
	const query = `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`
	if err := db.QueryRowContext(ctx, query, m.version).Scan(&applied); err != nil {
		return false, fmt.Errorf("check migration %s: %w", m.file, err)
	}
	return applied, nil
}

// apply runs one migration and records its version inside the same
// transaction, so a failed migration leaves no ledger entry behind.
func apply(ctx context.Context, db *sql.DB, m migration) error {
	applied, err := alreadyApplied(ctx, db, m)
	if err != nil {
		return err
	}
	if applied {
		return nil
	}

	stmts, err := migrationsFS.ReadFile("migrations/" + m.file)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", m.file, err)
	}

	logger := slog.Default().With("component", "migrations")
	logger.InfoContext(ctx, "applying migration", "version", m.version)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
			logger.ErrorContext(ctx, "migration rollback failed",
				"error", rerr, "file", m.file)
		}
	}()

	if _, err := tx.ExecContext(ctx, string(stmts)); err != nil {
		return fmt.Errorf("exec migration %s: %w", m.file, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version) VALUES ($1)`, m.version); err != nil {
		return fmt.Errorf("record migration %s: %w", m.file, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", m.file, err)
	}
	return nil
}
