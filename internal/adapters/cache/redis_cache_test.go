package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisGeocodeCacheRoundtrip(t *testing.T) {
	c := NewRedisGeocodeCache(newTestRedis(t), 0)
	ctx := context.Background()

	got, err := c.GetPlace(ctx, "123 main st springfield")
	if err != nil {
		t.Fatalf("GetPlace: %v", err)
	}
	if got != nil {
		t.Fatalf("GetPlace before put = %+v, want nil miss", got)
	}

	place := ports.Place{
		Coordinates: domain.Coordinates{Lon: -89.64, Lat: 39.78},
		DisplayName: "123 Main St, Springfield, IL",
	}
	if err := c.PutPlace(ctx, "123 main st springfield", place); err != nil {
		t.Fatalf("PutPlace: %v", err)
	}

	got, err = c.GetPlace(ctx, "123 main st springfield")
	if err != nil {
		t.Fatalf("GetPlace: %v", err)
	}
	if got == nil {
		t.Fatal("GetPlace after put = nil, want hit")
	}
	if *got != place {
		t.Errorf("GetPlace = %+v, want %+v", *got, place)
	}
}

func TestRedisGeocodeCacheRejectsEmptyAddress(t *testing.T) {
	c := NewRedisGeocodeCache(newTestRedis(t), 0)

	if _, err := c.GetPlace(context.Background(), "  "); err == nil {
		t.Error("GetPlace with blank address: want error")
	}
	if err := c.PutPlace(context.Background(), "", ports.Place{}); err == nil {
		t.Error("PutPlace with empty address: want error")
	}
}

func TestRedisCostCacheRoundtrip(t *testing.T) {
	c := NewRedisCostCache(newTestRedis(t), time.Hour)
	ctx := context.Background()

	key := "-89.640000,39.780000|-87.630000,41.880000|driving"

	got, err := c.GetCost(ctx, key)
	if err != nil {
		t.Fatalf("GetCost: %v", err)
	}
	if got != nil {
		t.Fatalf("GetCost before put = %+v, want nil miss", got)
	}

	cost := domain.PairwiseCost{DurationSeconds: 11520, DistanceMeters: 326000}
	if err := c.PutCost(ctx, key, cost); err != nil {
		t.Fatalf("PutCost: %v", err)
	}

	got, err = c.GetCost(ctx, key)
	if err != nil {
		t.Fatalf("GetCost: %v", err)
	}
	if got == nil {
		t.Fatal("GetCost after put = nil, want hit")
	}
	if *got != cost {
		t.Errorf("GetCost = %+v, want %+v", *got, cost)
	}
}

func TestRedisCostCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisCostCache(client, time.Minute)
	ctx := context.Background()

	if err := c.PutCost(ctx, "k", domain.PairwiseCost{DurationSeconds: 1}); err != nil {
		t.Fatalf("PutCost: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := c.GetCost(ctx, "k")
	if err != nil {
		t.Fatalf("GetCost: %v", err)
	}
	if got != nil {
		t.Errorf("GetCost after TTL = %+v, want nil miss", got)
	}
}
