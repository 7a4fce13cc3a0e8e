package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// SQLite-backed cache mapping normalized addresses to resolved places.
// Keys are expected to be consistent (already normalized) by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch the cached place for an address. Returns nil on a cache miss.
func (s *SqliteGeocodeCache) GetPlace(ctx context.Context, address string) (*ports.Place, error) {
	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}
	if strings.TrimSpace(address) == "" {
		return nil, errors.New("get geocode cache: address must not be empty")
	}

	q := `
	SELECT lon, lat, display_name
	FROM geocode_cache
	WHERE address = ?;
	`

	var lon, lat float64
	var displayName string
	err := s.DB.QueryRowContext(ctx, q, address).Scan(&lon, &lat, &displayName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return &ports.Place{
		Coordinates: domain.Coordinates{Lon: lon, Lat: lat},
		DisplayName: displayName,
	}, nil
}

// Store an address -> place mapping.
func (s *SqliteGeocodeCache) PutPlace(ctx context.Context, address string, place ports.Place) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if strings.TrimSpace(address) == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (address, lon, lat, display_name)
	VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, address, place.Coordinates.Lon, place.Coordinates.Lat, place.DisplayName); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}
	return nil
}
