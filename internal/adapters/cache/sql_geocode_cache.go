package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// SQLGeocodeCache is the Postgres variant of the geocode cache, used when
// the service runs against a shared database instead of a local file.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch the cached place for an address. Returns nil on a cache miss.
func (s *SQLGeocodeCache) GetPlace(ctx context.Context, address string) (_ *ports.Place, err error) {
	defer obs.Time(ctx, "geocode.cache.GetPlace")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}
	if strings.TrimSpace(address) == "" {
		return nil, errors.New("get geocode cache: address must not be empty")
	}

	q := `
	SELECT lon, lat, display_name
	FROM geocode_cache
	WHERE address = $1;
	`

	var lon, lat float64
	var displayName string
	err = s.DB.QueryRowContext(ctx, q, address).Scan(&lon, &lat, &displayName)
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
func (s *SQLGeocodeCache) PutPlace(ctx context.Context, address string, place ports.Place) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if strings.TrimSpace(address) == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}

	q := `
	INSERT INTO geocode_cache (address, lon, lat, display_name)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		display_name = EXCLUDED.display_name;
	`

	if _, err := s.DB.ExecContext(ctx, q, address, place.Coordinates.Lon, place.Coordinates.Lat, place.DisplayName); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}
	return nil
}
