package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Initialize the Postgres schema for the state blob store and place catalog.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createBlobsQuery := `
	CREATE TABLE IF NOT EXISTS state_blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS places (
		name TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		category TEXT NOT NULL,
		max_density DOUBLE PRECISION,
		peak_hour INTEGER,
		visit_minutes INTEGER,
		signal_frequency DOUBLE PRECISION,
		signal_mode TEXT,
		signal_encryption INTEGER,
		signal_intel TEXT
	);
	`

	statements := []string{
		createBlobsQuery,
		createPlacesQuery,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the Postgres places table from the same JSON catalog the SQLite
// seeder uses.
func SeedPostgresFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed places: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO places (
		name, lat, lng, category,
		max_density, peak_hour, visit_minutes,
		signal_frequency, signal_mode, signal_encryption, signal_intel
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (name) DO UPDATE SET
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		category = EXCLUDED.category,
		max_density = EXCLUDED.max_density,
		peak_hour = EXCLUDED.peak_hour,
		visit_minutes = EXCLUDED.visit_minutes,
		signal_frequency = EXCLUDED.signal_frequency,
		signal_mode = EXCLUDED.signal_mode,
		signal_encryption = EXCLUDED.signal_encryption,
		signal_intel = EXCLUDED.signal_intel;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed places: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range data {
		args, err := seedArgs(p)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("seed places: insert %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}

	return nil
}
