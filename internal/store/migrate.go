package store

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		comments    TEXT NOT NULL DEFAULT '',
		design_life REAL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS assemblies (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		category     TEXT NOT NULL DEFAULT '',
		comments     TEXT NOT NULL DEFAULT '',
		units        TEXT NOT NULL,
		quantities   TEXT NOT NULL,
		wastage      REAL,
		service_life REAL,
		materials    TEXT NOT NULL,
		position     INTEGER NOT NULL,
		UNIQUE (project_id, name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assemblies_project ON assemblies(project_id)`,
}

// migrate runs every schema statement, all are idempotent.
func migrate(db *sql.DB) error {
	for i, statement := range migrations {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
