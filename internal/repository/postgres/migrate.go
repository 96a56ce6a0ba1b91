package postgres

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/adaudit/adaudit/migrations"
)

// Migrate applies the embedded schema migrations in lexical order.
// Applied versions are tracked in schema_migrations and skipped on
// later runs.
func Migrate(db *sql.DB, driver string) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		var count int
		query := rebind(driver, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`)
		if err := db.QueryRow(query, name).Scan(&count); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		content, err := migrations.FS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}

		query = rebind(driver, `INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`)
		if _, err := db.Exec(query, name, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}

	return nil
}
