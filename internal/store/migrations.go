package store

import (
	"fmt"

	"uvcat/internal/logging"
)

// migrations are applied in order; PRAGMA user_version tracks progress.
// Append only - never edit an applied migration.
var migrations = []string{
	// v1: initial schema
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		created_at  DATETIME NOT NULL,
		temperature REAL NOT NULL,
		min_nm      REAL NOT NULL,
		max_nm      REAL NOT NULL,
		samples     INTEGER NOT NULL,
		note        TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS run_series (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		law    TEXT NOT NULL,
		scale  REAL NOT NULL DEFAULT 1,
		PRIMARY KEY (run_id, law)
	);
	CREATE TABLE IF NOT EXISTS run_points (
		run_id        TEXT NOT NULL,
		law           TEXT NOT NULL,
		idx           INTEGER NOT NULL,
		wavelength_nm REAL NOT NULL,
		value         REAL NOT NULL,
		PRIMARY KEY (run_id, law, idx),
		FOREIGN KEY (run_id, law) REFERENCES run_series(run_id, law) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,

	// v2: fast lookup of points by run for export
	`CREATE INDEX IF NOT EXISTS idx_run_points_run ON run_points(run_id);`,
}

// migrate brings the schema up to the latest version.
func (s *RunStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this build supports (%d)", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		logging.Store("Applying schema migration v%d", i+1)
		if _, err := s.db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration v%d failed: %w", i+1, err)
		}
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", i+1, err)
		}
	}
	return nil
}
