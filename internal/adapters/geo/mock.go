package geo

import (
	"context"
	"fmt"
	"sync"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// MockGeocoder resolves addresses from a fixed table. Addresses absent
// from the table fail, mirroring an unresolvable input.
type MockGeocoder struct {
	Places map[string]ports.Place
}

func (g *MockGeocoder) Resolve(ctx context.Context, address string) (ports.Place, error) {
	p, ok := g.Places[address]
	if !ok {
		return ports.Place{}, fmt.Errorf("no geocode results for %q", address)
	}
	return p, nil
}

type MockPair struct {
	I, J    int
	Seconds float64
	Meters  float64
}

// MockCoster serves pairwise costs for coordinates of the form
// {Lon: i, Lat: i}, keyed by the unordered index pair. Pairs listed in
// Fail error out, standing in for unreachable legs. Calls are counted so
// tests can assert exactly one query per pair.
type MockCoster struct {
	mu    sync.Mutex
	costs map[[2]int]domain.PairwiseCost
	fail  map[[2]int]bool
	calls int
}

func NewMockCoster(pairs []MockPair, fail ...[2]int) *MockCoster {
	m := &MockCoster{
		costs: make(map[[2]int]domain.PairwiseCost, len(pairs)),
		fail:  make(map[[2]int]bool, len(fail)),
	}
	for _, p := range pairs {
		m.costs[orderedPair(p.I, p.J)] = domain.PairwiseCost{
			DurationSeconds: p.Seconds,
			DistanceMeters:  p.Meters,
		}
	}
	for _, f := range fail {
		m.fail[orderedPair(f[0], f[1])] = true
	}
	return m
}

// MockCoord builds the coordinate MockCoster expects for index i.
func MockCoord(i int) domain.Coordinates {
	return domain.Coordinates{Lon: float64(i), Lat: float64(i)}
}

func (m *MockCoster) PairwiseCost(ctx context.Context, a, b domain.Coordinates, profile string) (domain.PairwiseCost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	key := orderedPair(int(a.Lon), int(b.Lon))
	if m.fail[key] {
		return domain.PairwiseCost{}, fmt.Errorf("no route between %d and %d", key[0], key[1])
	}
	cost, ok := m.costs[key]
	if !ok {
		return domain.PairwiseCost{}, fmt.Errorf("missing pair %d-%d", key[0], key[1])
	}
	return cost, nil
}

func (m *MockCoster) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func orderedPair(i, j int) [2]int {
	if j < i {
		i, j = j, i
	}
	return [2]int{i, j}
}
