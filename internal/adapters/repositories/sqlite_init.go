package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the database schema. The DDL is kept dialect-neutral so the
// same statements run against the local SQLite file and against Postgres
// from cmd/dbtool.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon REAL NOT NULL,
		lat REAL NOT NULL,
		display_name TEXT NOT NULL
	);
	`

	createCostCacheQuery := `
	CREATE TABLE IF NOT EXISTS cost_cache (
		pair_key TEXT PRIMARY KEY,
		duration_seconds REAL NOT NULL,
		distance_meters REAL NOT NULL
	);
	`

	createOptimizationsQuery := `
	CREATE TABLE IF NOT EXISTS optimizations (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		addresses TEXT NOT NULL,
		transport_mode TEXT NOT NULL,
		objective TEXT NOT NULL,
		route TEXT NOT NULL,
		total_duration_seconds REAL NOT NULL,
		total_distance_meters REAL NOT NULL,
		optimization_value REAL NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_optimizations_created_at
	ON optimizations(created_at);
	`

	statements := []string{
		createGeocodeCacheQuery,
		createCostCacheQuery,
		createOptimizationsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
