package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jmoiron/sqlx"
)

// Migrate applies every migrations/*.sql file from migrationFS that has not
// been applied yet, in file name order. Applied files are tracked in the
// schema_migrations table by name.
func Migrate(ctx context.Context, db *sqlx.DB, migrationFS fs.FS) error {
	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			name VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	entries, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("glob migration files: %w", err)
	}
	sort.Strings(entries)

	var applied []string
	if err := db.SelectContext(ctx, &applied,
		"SELECT name FROM schema_migrations"); err != nil {
		return fmt.Errorf("select applied migrations: %w", err)
	}
	appliedSet := make(map[string]struct{}, len(applied))
	for _, name := range applied {
		appliedSet[name] = struct{}{}
	}

	for _, entry := range entries {
		if _, ok := appliedSet[entry]; ok {
			continue
		}

		content, err := fs.ReadFile(migrationFS, entry)
		if err != nil {
			return fmt.Errorf("read migration file %s: %w", entry, err)
		}

		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry, err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO schema_migrations (name) VALUES (?)", entry); err != nil {
			return fmt.Errorf("record migration %s: %w", entry, err)
		}
	}

	return nil
}
