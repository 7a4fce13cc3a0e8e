package services

import (
	"context"
	"math"
	"testing"

	"route-optimizer-service/internal/adapters/geo"
	"route-optimizer-service/internal/domain"
)

func testLocations(n int) []domain.Location {
	locs := make([]domain.Location, 0, n)
	for i := 0; i < n; i++ {
		locs = append(locs, domain.Location{Index: i, Coordinates: geo.MockCoord(i)})
	}
	return locs
}

func TestBuildCostMatrixSymmetry(t *testing.T) {
	coster := geo.NewMockCoster([]geo.MockPair{
		{I: 0, J: 1, Seconds: 600, Meters: 5000},
		{I: 0, J: 2, Seconds: 900, Meters: 8000},
		{I: 1, J: 2, Seconds: 500, Meters: 4000},
		{I: 0, J: 3, Seconds: 100, Meters: 1000},
		{I: 1, J: 3, Seconds: 200, Meters: 2000},
		{I: 2, J: 3, Seconds: 300, Meters: 3000},
	})

	matrix := BuildCostMatrix(context.Background(), testLocations(4), domain.ModeDriving, coster, 3)

	for i := 0; i < 4; i++ {
		if matrix[i][i] != (domain.PairwiseCost{}) {
			t.Errorf("diagonal [%d][%d] = %+v, want zero", i, i, matrix[i][i])
		}
		for j := 0; j < 4; j++ {
			if matrix[i][j] != matrix[j][i] {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
		}
	}

	if got := matrix[1][2].DurationSeconds; got != 500 {
		t.Errorf("matrix[1][2] duration = %v, want 500", got)
	}

	// Exactly one collaborator query per unordered pair.
	if coster.Calls() != 6 {
		t.Errorf("coster calls = %d, want 6", coster.Calls())
	}
}

func TestBuildCostMatrixBusMultiplier(t *testing.T) {
	coster := geo.NewMockCoster([]geo.MockPair{
		{I: 0, J: 1, Seconds: 1000, Meters: 5000},
	})

	matrix := BuildCostMatrix(context.Background(), testLocations(2), domain.ModeBus, coster, 1)

	if got := matrix[0][1].DurationSeconds; got != 1200 {
		t.Errorf("bus duration = %v, want 1200", got)
	}
	if got := matrix[0][1].DistanceMeters; got != 5000 {
		t.Errorf("bus distance = %v, want 5000 (unaffected)", got)
	}
}

func TestBuildCostMatrixFailedPairDegrades(t *testing.T) {
	coster := geo.NewMockCoster([]geo.MockPair{
		{I: 0, J: 1, Seconds: 600, Meters: 5000},
		{I: 1, J: 2, Seconds: 500, Meters: 4000},
	}, [2]int{0, 2})

	matrix := BuildCostMatrix(context.Background(), testLocations(3), domain.ModeDriving, coster, 2)

	if !math.IsInf(matrix[0][2].DurationSeconds, 1) || !math.IsInf(matrix[0][2].DistanceMeters, 1) {
		t.Errorf("failed pair = %+v, want infinite cost", matrix[0][2])
	}
	// The rest of the matrix must survive the degraded pair.
	if got := matrix[0][1].DurationSeconds; got != 600 {
		t.Errorf("matrix[0][1] duration = %v, want 600", got)
	}
	if got := matrix[1][2].DurationSeconds; got != 500 {
		t.Errorf("matrix[1][2] duration = %v, want 500", got)
	}
}
