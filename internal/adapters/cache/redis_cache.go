package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

const (
	geocodeKeyPrefix = "geocode:"
	costKeyPrefix    = "cost:"
)

// RedisGeocodeCache stores resolved places in Redis. A zero TTL keeps
// entries forever; geocoded addresses rarely move.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

type cachedPlace struct {
	Lon         float64 `json:"lon"`
	Lat         float64 `json:"lat"`
	DisplayName string  `json:"display_name"`
}

func (r *RedisGeocodeCache) GetPlace(ctx context.Context, address string) (*ports.Place, error) {
	if r.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}
	if strings.TrimSpace(address) == "" {
		return nil, errors.New("get geocode cache: address must not be empty")
	}

	raw, err := r.Client.Get(ctx, geocodeKeyPrefix+address).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: %w", err)
	}

	var p cachedPlace
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("get geocode cache: decode entry: %w", err)
	}

	return &ports.Place{
		Coordinates: domain.Coordinates{Lon: p.Lon, Lat: p.Lat},
		DisplayName: p.DisplayName,
	}, nil
}

func (r *RedisGeocodeCache) PutPlace(ctx context.Context, address string, place ports.Place) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}
	if strings.TrimSpace(address) == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}

	b, err := json.Marshal(cachedPlace{
		Lon:         place.Coordinates.Lon,
		Lat:         place.Coordinates.Lat,
		DisplayName: place.DisplayName,
	})
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode entry: %w", err)
	}

	if err := r.Client.Set(ctx, geocodeKeyPrefix+address, b, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}
	return nil
}

// RedisCostCache stores raw pairwise costs in Redis. Costs reflect road
// conditions, so a finite TTL keeps them from going stale.
type RedisCostCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCostCache(client *redis.Client, ttl time.Duration) *RedisCostCache {
	return &RedisCostCache{Client: client, TTL: ttl}
}

type cachedCost struct {
	DurationSeconds float64 `json:"duration_seconds"`
	DistanceMeters  float64 `json:"distance_meters"`
}

func (r *RedisCostCache) GetCost(ctx context.Context, key string) (*domain.PairwiseCost, error) {
	if r.Client == nil {
		return nil, errors.New("cost cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get cost cache: key must not be empty")
	}

	raw, err := r.Client.Get(ctx, costKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cost cache: %w", err)
	}

	var c cachedCost
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("get cost cache: decode entry: %w", err)
	}

	return &domain.PairwiseCost{
		DurationSeconds: c.DurationSeconds,
		DistanceMeters:  c.DistanceMeters,
	}, nil
}

func (r *RedisCostCache) PutCost(ctx context.Context, key string, cost domain.PairwiseCost) error {
	if r.Client == nil {
		return errors.New("cost cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert cost cache: key must not be empty")
	}

	b, err := json.Marshal(cachedCost{
		DurationSeconds: cost.DurationSeconds,
		DistanceMeters:  cost.DistanceMeters,
	})
	if err != nil {
		return fmt.Errorf("insert cost cache: encode entry: %w", err)
	}

	if err := r.Client.Set(ctx, costKeyPrefix+key, b, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert cost cache key=%q: %w", key, err)
	}
	return nil
}
