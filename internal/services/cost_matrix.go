package services

import (
	"context"
	"log"
	"sync"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

type pairJob struct {
	i, j int
}

// BuildCostMatrix issues one collaborator query per unordered pair of
// locations and stores each result symmetrically.
//
// Pair queries are independent, so they run on a bounded worker pool; each
// worker writes only its own matrix cells and no locking is needed. A
// failed or timed-out pair degrades to an infinite-cost edge instead of
// aborting the build — infeasibility is decided later by the solver.
// Durations are scaled by the mode's factor (bus ×1.2) before storage.
func BuildCostMatrix(
	ctx context.Context,
	locations []domain.Location,
	mode domain.TransportMode,
	coster ports.PairwiseCoster,
	maxConcurrent int,
) domain.CostMatrix {
	n := len(locations)
	matrix := domain.NewCostMatrix(n)

	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	profile := mode.Profile()
	factor := mode.DurationFactor()

	jobs := make(chan pairJob)
	var wg sync.WaitGroup

	for w := 0; w < maxConcurrent; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				a := locations[job.i].Coordinates
				b := locations[job.j].Coordinates

				cost, err := coster.PairwiseCost(ctx, a, b, profile)
				if err != nil {
					log.Printf("pairwise query failed: i=%d j=%d profile=%s err=%v", job.i, job.j, profile, err)
					matrix.SetPair(job.i, job.j, domain.Unreachable())
					continue
				}

				cost.DurationSeconds *= factor
				matrix.SetPair(job.i, job.j, cost)
			}
		}()
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			jobs <- pairJob{i: i, j: j}
		}
	}
	close(jobs)
	wg.Wait()

	return matrix
}
