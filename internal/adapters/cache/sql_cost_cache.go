package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// SQLCostCache is the Postgres variant of the pairwise cost cache.
type SQLCostCache struct {
	DB *sql.DB
}

func NewSQLCostCache(db *sql.DB) *SQLCostCache {
	return &SQLCostCache{DB: db}
}

// Fetch a cached cost. Returns nil on a cache miss.
func (s *SQLCostCache) GetCost(ctx context.Context, key string) (_ *domain.PairwiseCost, err error) {
	defer obs.Time(ctx, "cost.cache.GetCost")(&err)

	if s.DB == nil {
		return nil, errors.New("cost cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get cost cache: key must not be empty")
	}

	q := `
	SELECT duration_seconds, distance_meters
	FROM cost_cache
	WHERE pair_key = $1;
	`

	var cost domain.PairwiseCost
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&cost.DurationSeconds, &cost.DistanceMeters)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cost cache: query cost_cache table: %w", err)
	}

	return &cost, nil
}

// Store a cost under its pair key.
func (s *SQLCostCache) PutCost(ctx context.Context, key string, cost domain.PairwiseCost) error {
	if s.DB == nil {
		return errors.New("cost cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert cost cache: key must not be empty")
	}

	q := `
	INSERT INTO cost_cache (pair_key, duration_seconds, distance_meters)
	VALUES ($1, $2, $3)
	ON CONFLICT (pair_key) DO UPDATE
	SET duration_seconds = EXCLUDED.duration_seconds,
		distance_meters = EXCLUDED.distance_meters;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, cost.DurationSeconds, cost.DistanceMeters); err != nil {
		return fmt.Errorf("insert cost cache key=%q: %w", key, err)
	}
	return nil
}
