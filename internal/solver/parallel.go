package solver

import (
	"math"
	"sync"

	"route-optimizer-service/internal/domain"
)

type partitionBest struct {
	cost float64
	perm []int
}

// SolveParallel splits the permutation space across a bounded pool of
// workers and reduces their local optima to the global one.
//
// Each partition fixes the first interior stop; within a partition a
// worker enumerates the remaining stops in lexicographic order with the
// same strict less-than rule as Solve. The reduction then visits
// partitions in ascending first-stop order, so concatenating them
// reproduces the global lexicographic enumeration and the tie-break
// outcome is identical to the sequential solver.
func SolveParallel(matrix domain.CostMatrix, objective domain.Objective, workers int) (domain.Route, float64, error) {
	n := matrix.Len()
	if n < 2 {
		return Solve(matrix, objective)
	}
	if n > MaxStops {
		return nil, 0, ErrTooManyStops
	}
	if workers < 2 || n < 4 {
		// Not enough work to justify goroutine overhead.
		return Solve(matrix, objective)
	}

	// Partition k (k in 1..n-1) owns all tours whose first stop is k.
	results := make([]partitionBest, n-1)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for first := 1; first < n; first++ {
		wg.Add(1)
		go func(first int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			rest := make([]int, 0, n-2)
			for v := 1; v < n; v++ {
				if v != first {
					rest = append(rest, v)
				}
			}

			best := partitionBest{cost: math.Inf(1)}
			perm := make([]int, 0, n-1)
			for {
				perm = append(perm[:0], first)
				perm = append(perm, rest...)

				cost := tourCost(matrix, perm, objective)
				if cost < best.cost {
					best.cost = cost
					best.perm = append(best.perm[:0], perm...)
				}
				if !nextPermutation(rest) {
					break
				}
			}
			results[first-1] = best
		}(first)
	}
	wg.Wait()

	// Ascending partition order preserves the earliest-lexicographic
	// tie-break across partition boundaries.
	bestCost := math.Inf(1)
	var bestPerm []int
	for _, r := range results {
		if r.cost < bestCost {
			bestCost = r.cost
			bestPerm = r.perm
		}
	}

	if math.IsInf(bestCost, 1) {
		return nil, 0, ErrNoFeasibleRoute
	}

	return closeTour(bestPerm), bestCost, nil
}
