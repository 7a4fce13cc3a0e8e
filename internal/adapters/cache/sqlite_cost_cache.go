package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-optimizer-service/internal/domain"
)

// SQLite-backed cache for raw pairwise routing costs keyed by the
// symmetric pair key.
type SqliteCostCache struct {
	DB *sql.DB
}

func NewSqliteCostCache(db *sql.DB) *SqliteCostCache {
	return &SqliteCostCache{DB: db}
}

// Fetch a cached cost. Returns nil on a cache miss.
func (s *SqliteCostCache) GetCost(ctx context.Context, key string) (*domain.PairwiseCost, error) {
	if s.DB == nil {
		return nil, errors.New("cost cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get cost cache: key must not be empty")
	}

	q := `
	SELECT duration_seconds, distance_meters
	FROM cost_cache
	WHERE pair_key = ?;
	`

	var cost domain.PairwiseCost
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&cost.DurationSeconds, &cost.DistanceMeters)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cost cache: query cost_cache table: %w", err)
	}

	return &cost, nil
}

// Store a cost under its pair key.
func (s *SqliteCostCache) PutCost(ctx context.Context, key string, cost domain.PairwiseCost) error {
	if s.DB == nil {
		return errors.New("cost cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert cost cache: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO cost_cache (pair_key, duration_seconds, distance_meters)
	VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, key, cost.DurationSeconds, cost.DistanceMeters); err != nil {
		return fmt.Errorf("insert cost cache key=%q: %w", key, err)
	}
	return nil
}
