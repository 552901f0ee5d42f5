package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the schema. Every statement is idempotent, so it is safe
// to run on each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Each collection (proposals, local services, chat history per mode) is one
// JSON document keyed by name. Writers replace the whole payload.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS collections (
		name       TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_collections_updated ON collections(updated_at)`,
}
