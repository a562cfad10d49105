package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the whole
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// One row per logical store. The store's schema version lives here so a
	// version bump can discard every reaction in one place.
	`CREATE TABLE IF NOT EXISTS preference_store (
		storage_key TEXT PRIMARY KEY,
		version     INTEGER NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS preference_reactions (
		storage_key TEXT NOT NULL REFERENCES preference_store(storage_key) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		title       TEXT NOT NULL,
		categories  TEXT NOT NULL DEFAULT '[]',
		reaction    INTEGER NOT NULL CHECK(reaction IN (-1, 1)),
		reacted_on  TEXT NOT NULL,
		PRIMARY KEY (storage_key, title)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_preference_reactions_position
		ON preference_reactions(storage_key, position)`,
}
