package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Wire shape of one catalog entry in the seed file.
type PlaceSeed struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Category string  `json:"category"`
	Crowd    *struct {
		MaxDensity   float64 `json:"max_density"`
		PeakHour     int     `json:"peak_hour"`
		VisitMinutes int     `json:"visit_minutes"`
	} `json:"crowd"`
	Signal *struct {
		FrequencyMHz float64           `json:"frequency_mhz"`
		Mode         string            `json:"mode"`
		Encryption   int               `json:"encryption"`
		Intel        map[string]string `json:"intel"`
	} `json:"signal"`
}

var validCategories = map[string]struct{}{
	"city": {}, "beach": {}, "nature": {}, "history": {},
}

// Populate the places table from a JSON catalog file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed places: parse json: %w", err)
	}

	for i, item := range data {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("seed places: item at index %d: name cannot be empty", i+1)
		}
		if _, ok := validCategories[item.Category]; !ok {
			return fmt.Errorf("seed places: %q: invalid category %q", item.Name, item.Category)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO places (
		name,
		lat,
		lng,
		category,
		max_density,
		peak_hour,
		visit_minutes,
		signal_frequency,
		signal_mode,
		signal_encryption,
		signal_intel
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
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

// seedArgs flattens a PlaceSeed into insert parameters, with NULLs for the
// optional crowd and signal profiles.
func seedArgs(p PlaceSeed) ([]any, error) {
	var maxDensity, peakHour, visitMins any
	if p.Crowd != nil {
		maxDensity = p.Crowd.MaxDensity
		peakHour = p.Crowd.PeakHour
		visitMins = p.Crowd.VisitMinutes
	}

	var sigFreq, sigMode, sigEnc, sigIntel any
	if p.Signal != nil {
		intel, err := json.Marshal(p.Signal.Intel)
		if err != nil {
			return nil, fmt.Errorf("seed places: encode intel for %q: %w", p.Name, err)
		}
		sigFreq = p.Signal.FrequencyMHz
		sigMode = p.Signal.Mode
		sigEnc = p.Signal.Encryption
		sigIntel = string(intel)
	}

	return []any{
		p.Name, p.Lat, p.Lng, p.Category,
		maxDensity, peakHour, visitMins,
		sigFreq, sigMode, sigEnc, sigIntel,
	}, nil
}
