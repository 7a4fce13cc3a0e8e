package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"

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

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func sampleRecord(id string, createdAt time.Time) ports.OptimizationRecord {
	return ports.OptimizationRecord{
		ID:                   id,
		CreatedAt:            createdAt,
		Addresses:            []string{"depot", "stop a", "stop b"},
		TransportMode:        domain.ModeDriving,
		Objective:            domain.OptimizeTime,
		Route:                domain.Route{0, 2, 1, 0},
		TotalDurationSeconds: 2000,
		TotalDistanceMeters:  3300,
		OptimizationValue:    33.3,
	}
}

func TestHistoryRoundtrip(t *testing.T) {
	repo := NewSqliteHistoryRepository(newTestDB(t))
	ctx := context.Background()

	created := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	if err := repo.SaveOptimization(ctx, sampleRecord("opt-1", created)); err != nil {
		t.Fatalf("SaveOptimization: %v", err)
	}

	records, err := repo.ListOptimizations(ctx, 10)
	if err != nil {
		t.Fatalf("ListOptimizations: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	rec := records[0]
	if rec.ID != "opt-1" {
		t.Errorf("id = %q, want opt-1", rec.ID)
	}
	if !rec.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v, want %v", rec.CreatedAt, created)
	}
	if len(rec.Addresses) != 3 || rec.Addresses[1] != "stop a" {
		t.Errorf("addresses = %v, want original slice", rec.Addresses)
	}
	if len(rec.Route) != 4 || rec.Route[1] != 2 {
		t.Errorf("route = %v, want {0 2 1 0}", rec.Route)
	}
	if rec.TransportMode != domain.ModeDriving || rec.Objective != domain.OptimizeTime {
		t.Errorf("mode/objective = %q/%q, want driving/time", rec.TransportMode, rec.Objective)
	}
	if rec.OptimizationValue != 33.3 {
		t.Errorf("optimization value = %v, want 33.3", rec.OptimizationValue)
	}
}

func TestHistoryListNewestFirstWithLimit(t *testing.T) {
	repo := NewSqliteHistoryRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := sampleRecord(fmt.Sprintf("opt-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := repo.SaveOptimization(ctx, rec); err != nil {
			t.Fatalf("SaveOptimization #%d: %v", i, err)
		}
	}

	records, err := repo.ListOptimizations(ctx, 3)
	if err != nil {
		t.Fatalf("ListOptimizations: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	wantIDs := []string{"opt-4", "opt-3", "opt-2"}
	for i, want := range wantIDs {
		if records[i].ID != want {
			t.Errorf("records[%d].ID = %q, want %q", i, records[i].ID, want)
		}
	}
}

func TestHistoryEmptyList(t *testing.T) {
	repo := NewSqliteHistoryRepository(newTestDB(t))

	records, err := repo.ListOptimizations(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListOptimizations: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}
