package cache

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// In-memory databases are per-connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSqliteGeocodeCacheRoundtrip(t *testing.T) {
	c := NewSqliteGeocodeCache(newTestDB(t))
	ctx := context.Background()

	got, err := c.GetPlace(ctx, "willis tower chicago")
	if err != nil {
		t.Fatalf("GetPlace: %v", err)
	}
	if got != nil {
		t.Fatalf("GetPlace before put = %+v, want nil miss", got)
	}

	place := ports.Place{
		Coordinates: domain.Coordinates{Lon: -87.6359, Lat: 41.8789},
		DisplayName: "Willis Tower, Chicago, IL",
	}
	if err := c.PutPlace(ctx, "willis tower chicago", place); err != nil {
		t.Fatalf("PutPlace: %v", err)
	}

	got, err = c.GetPlace(ctx, "willis tower chicago")
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

func TestSqliteGeocodeCacheReplace(t *testing.T) {
	c := NewSqliteGeocodeCache(newTestDB(t))
	ctx := context.Background()

	first := ports.Place{Coordinates: domain.Coordinates{Lon: 1, Lat: 1}, DisplayName: "old"}
	second := ports.Place{Coordinates: domain.Coordinates{Lon: 2, Lat: 2}, DisplayName: "new"}

	if err := c.PutPlace(ctx, "addr", first); err != nil {
		t.Fatalf("PutPlace: %v", err)
	}
	if err := c.PutPlace(ctx, "addr", second); err != nil {
		t.Fatalf("PutPlace replace: %v", err)
	}

	got, err := c.GetPlace(ctx, "addr")
	if err != nil {
		t.Fatalf("GetPlace: %v", err)
	}
	if got == nil || got.DisplayName != "new" {
		t.Errorf("GetPlace after replace = %+v, want the new entry", got)
	}
}

func TestSqliteCostCacheRoundtrip(t *testing.T) {
	c := NewSqliteCostCache(newTestDB(t))
	ctx := context.Background()

	key := "-87.635900,41.878900|-87.624400,41.881900|driving"

	got, err := c.GetCost(ctx, key)
	if err != nil {
		t.Fatalf("GetCost: %v", err)
	}
	if got != nil {
		t.Fatalf("GetCost before put = %+v, want nil miss", got)
	}

	cost := domain.PairwiseCost{DurationSeconds: 240, DistanceMeters: 1100}
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
