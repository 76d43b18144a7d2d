package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"recon-planner-service/internal/domain"
)

// SQLite-backed implementation of the PlaceRepository port.
type SqlitePlaceRepository struct{ DB *sql.DB }

func NewSqlitePlaceRepository(db *sql.DB) *SqlitePlaceRepository {
	return &SqlitePlaceRepository{DB: db}
}

// Return all catalog places stored in the database.
func (s *SqlitePlaceRepository) ListPlaces(ctx context.Context) ([]domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite place repository: DB is nil")
	}

	query := `
	SELECT
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
	FROM places
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, 16)
	for rows.Next() {
		var (
			p          domain.Place
			maxDensity sql.NullFloat64
			peakHour   sql.NullInt64
			visitMins  sql.NullInt64
			sigFreq    sql.NullFloat64
			sigMode    sql.NullString
			sigEnc     sql.NullInt64
			sigIntel   sql.NullString
		)

		err := rows.Scan(
			&p.Name,
			&p.Coordinates.Lat,
			&p.Coordinates.Lng,
			&p.Category,
			&maxDensity,
			&peakHour,
			&visitMins,
			&sigFreq,
			&sigMode,
			&sigEnc,
			&sigIntel,
		)
		if err != nil {
			return nil, fmt.Errorf("list places: scan row: %w", err)
		}

		if maxDensity.Valid {
			p.Crowd = &domain.CrowdProfile{
				MaxDensity:   maxDensity.Float64,
				PeakHour:     int(peakHour.Int64),
				VisitMinutes: int(visitMins.Int64),
			}
		}

		if sigFreq.Valid {
			signal := &domain.SignalProfile{
				FrequencyMHz: sigFreq.Float64,
				Mode:         sigMode.String,
				Encryption:   int(sigEnc.Int64),
			}
			if sigIntel.Valid {
				if err := json.Unmarshal([]byte(sigIntel.String), &signal.Intel); err != nil {
					return nil, fmt.Errorf("list places: parse intel for %q: %w", p.Name, err)
				}
			}
			p.Signal = signal
		}

		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	return places, nil
}
