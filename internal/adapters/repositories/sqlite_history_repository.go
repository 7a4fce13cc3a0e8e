package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// SQLite-backed implementation of the OptimizationRepository port.
type SqliteHistoryRepository struct{ DB *sql.DB }

func NewSqliteHistoryRepository(db *sql.DB) *SqliteHistoryRepository {
	return &SqliteHistoryRepository{DB: db}
}

// Persist one completed optimization.
func (s *SqliteHistoryRepository) SaveOptimization(ctx context.Context, rec ports.OptimizationRecord) error {
	if s.DB == nil {
		return errors.New("history repository: DB is nil")
	}

	addresses, err := json.Marshal(rec.Addresses)
	if err != nil {
		return fmt.Errorf("save optimization: encode addresses: %w", err)
	}
	route, err := json.Marshal(rec.Route)
	if err != nil {
		return fmt.Errorf("save optimization: encode route: %w", err)
	}

	query := `
	INSERT INTO optimizations (
		id,
		created_at,
		addresses,
		transport_mode,
		objective,
		route,
		total_duration_seconds,
		total_distance_meters,
		optimization_value
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	_, err = s.DB.ExecContext(ctx, query,
		rec.ID,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(addresses),
		string(rec.TransportMode),
		string(rec.Objective),
		string(route),
		rec.TotalDurationSeconds,
		rec.TotalDistanceMeters,
		rec.OptimizationValue,
	)
	if err != nil {
		return fmt.Errorf("save optimization id=%s: %w", rec.ID, err)
	}

	return nil
}

// Return the most recent optimizations, newest first.
func (s *SqliteHistoryRepository) ListOptimizations(ctx context.Context, limit int) ([]ports.OptimizationRecord, error) {
	if s.DB == nil {
		return nil, errors.New("history repository: DB is nil")
	}
	if limit < 1 {
		limit = 50
	}

	query := `
	SELECT
		id,
		created_at,
		addresses,
		transport_mode,
		objective,
		route,
		total_duration_seconds,
		total_distance_meters,
		optimization_value
	FROM optimizations
	ORDER BY created_at DESC
	LIMIT ?;
	`

	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list optimizations: query optimizations table: %w", err)
	}
	defer rows.Close()

	records := make([]ports.OptimizationRecord, 0, limit)
	for rows.Next() {
		var (
			rec           ports.OptimizationRecord
			createdAt     string
			addressesJSON string
			routeJSON     string
			mode          string
			objective     string
		)
		err := rows.Scan(
			&rec.ID,
			&createdAt,
			&addressesJSON,
			&mode,
			&objective,
			&routeJSON,
			&rec.TotalDurationSeconds,
			&rec.TotalDistanceMeters,
			&rec.OptimizationValue,
		)
		if err != nil {
			return nil, fmt.Errorf("list optimizations: scan row: %w", err)
		}

		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list optimizations: parse created_at %q: %w", createdAt, err)
		}
		if err := json.Unmarshal([]byte(addressesJSON), &rec.Addresses); err != nil {
			return nil, fmt.Errorf("list optimizations: decode addresses: %w", err)
		}
		if err := json.Unmarshal([]byte(routeJSON), &rec.Route); err != nil {
			return nil, fmt.Errorf("list optimizations: decode route: %w", err)
		}
		rec.TransportMode = domain.TransportMode(mode)
		rec.Objective = domain.Objective(objective)

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list optimizations: row iteration: %w", err)
	}

	return records, nil
}
