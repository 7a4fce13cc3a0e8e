package services

import (
	"context"
	"errors"
	"testing"

	"route-optimizer-service/internal/adapters/geo"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/solver"
)

func mockPlaces(addrs ...string) map[string]ports.Place {
	places := make(map[string]ports.Place, len(addrs))
	for i, a := range addrs {
		places[a] = ports.Place{Coordinates: geo.MockCoord(i), DisplayName: a + ", Testville"}
	}
	return places
}

func TestOptimizeRouteEndToEnd(t *testing.T) {
	geocoder := &geo.MockGeocoder{Places: mockPlaces("depot", "stop a", "stop b")}
	coster := geo.NewMockCoster([]geo.MockPair{
		{I: 0, J: 1, Seconds: 600, Meters: 1000},
		{I: 1, J: 2, Seconds: 500, Meters: 800},
		{I: 0, J: 2, Seconds: 900, Meters: 1500},
	})

	opt, err := OptimizeRoute(context.Background(), OptimizeRequest{
		Addresses:     []string{"depot", "stop a", "stop b"},
		Objective:     domain.OptimizeTime,
		TransportMode: domain.ModeDriving,
	}, geocoder, coster, OptimizeOptions{PairConcurrency: 2, SolverWorkers: 2})
	if err != nil {
		t.Fatalf("OptimizeRoute: %v", err)
	}

	wantRoute := domain.Route{0, 1, 2, 0}
	if len(opt.Result.Route) != len(wantRoute) {
		t.Fatalf("route = %v, want %v", opt.Result.Route, wantRoute)
	}
	for i := range wantRoute {
		if opt.Result.Route[i] != wantRoute[i] {
			t.Fatalf("route = %v, want %v", opt.Result.Route, wantRoute)
		}
	}

	if opt.Result.TotalDurationSeconds != 2000 {
		t.Errorf("total duration = %v, want 2000", opt.Result.TotalDurationSeconds)
	}
	if opt.Result.TotalDistanceMeters != 3300 {
		t.Errorf("total distance = %v, want 3300", opt.Result.TotalDistanceMeters)
	}

	if len(opt.Report.Stops) != 3 {
		t.Fatalf("report stops = %d, want 3", len(opt.Report.Stops))
	}
	if opt.Report.Stops[1].Address != "stop a, Testville" {
		t.Errorf("stop 2 address = %q, want display name", opt.Report.Stops[1].Address)
	}
	if opt.Report.OptimizationValue != 33.3 {
		t.Errorf("optimization value = %v, want 33.3 minutes", opt.Report.OptimizationValue)
	}
}

func TestOptimizeRouteTooFewAddresses(t *testing.T) {
	_, err := OptimizeRoute(context.Background(), OptimizeRequest{
		Addresses: []string{"only one"},
		Objective: domain.OptimizeTime,
	}, &geo.MockGeocoder{}, geo.NewMockCoster(nil), OptimizeOptions{})

	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestOptimizeRouteTooManyAddresses(t *testing.T) {
	addrs := make([]string, solver.MaxStops+1)
	for i := range addrs {
		addrs[i] = "addr"
	}

	_, err := OptimizeRoute(context.Background(), OptimizeRequest{
		Addresses: addrs,
		Objective: domain.OptimizeTime,
	}, &geo.MockGeocoder{}, geo.NewMockCoster(nil), OptimizeOptions{})

	if !errors.Is(err, solver.ErrTooManyStops) {
		t.Fatalf("err = %v, want ErrTooManyStops", err)
	}
}

func TestOptimizeRouteGeocodingFailure(t *testing.T) {
	geocoder := &geo.MockGeocoder{Places: mockPlaces("depot")}

	_, err := OptimizeRoute(context.Background(), OptimizeRequest{
		Addresses: []string{"depot", "nowhere"},
		Objective: domain.OptimizeTime,
	}, geocoder, geo.NewMockCoster(nil), OptimizeOptions{})

	var gerr *domain.GeocodingError
	if !errors.As(err, &gerr) {
		t.Fatalf("err = %v, want *domain.GeocodingError", err)
	}
	if gerr.Address != "nowhere" {
		t.Errorf("failed address = %q, want %q", gerr.Address, "nowhere")
	}
}

func TestOptimizeRouteInfeasible(t *testing.T) {
	geocoder := &geo.MockGeocoder{Places: mockPlaces("depot", "island")}

	// No pairs configured: every query fails, so the matrix is all-infinite.
	_, err := OptimizeRoute(context.Background(), OptimizeRequest{
		Addresses: []string{"depot", "island"},
		Objective: domain.OptimizeTime,
	}, geocoder, geo.NewMockCoster(nil), OptimizeOptions{PairConcurrency: 1})

	if !errors.Is(err, solver.ErrNoFeasibleRoute) {
		t.Fatalf("err = %v, want ErrNoFeasibleRoute", err)
	}
}
