// Package solver finds the minimum-cost closed tour over a pairwise cost
// matrix by exhaustive enumeration. The search is exact: every permutation
// of the non-depot stops is visited exactly once in lexicographic order,
// and on cost ties the earliest-enumerated tour wins. Stop counts are
// small by design; the solver refuses inputs beyond MaxStops rather than
// run for an impractical duration.
package solver

import (
	"errors"
	"fmt"
	"math"

	"route-optimizer-service/internal/domain"
)

// MaxStops bounds the brute-force search. (MaxStops-1)! candidate tours
// are enumerated, so anything much larger would never terminate.
const MaxStops = 10

// ErrNoFeasibleRoute is returned when every closed tour contains at least
// one infinite-cost edge. Callers must treat it as distinct from a
// geocoding failure: the addresses resolved fine, the road network just
// does not connect them.
var ErrNoFeasibleRoute = errors.New("solver: no feasible route exists")

// ErrTooManyStops is returned when the matrix exceeds MaxStops.
var ErrTooManyStops = fmt.Errorf("solver: more than %d stops is not supported by exact search", MaxStops)

// Solve enumerates all (N-1)! closed tours from the fixed depot at index 0
// and returns the cheapest one under the given objective.
//
// The incumbent is replaced only on a strictly lower cost, so the tour
// generated earliest in lexicographic permutation order is kept on ties.
func Solve(matrix domain.CostMatrix, objective domain.Objective) (domain.Route, float64, error) {
	n := matrix.Len()
	if n < 2 {
		return nil, 0, errors.New("solver: matrix must cover at least 2 stops")
	}
	if n > MaxStops {
		return nil, 0, ErrTooManyStops
	}

	perm := ascending(1, n)
	bestCost := math.Inf(1)
	var bestPerm []int

	for {
		cost := tourCost(matrix, perm, objective)
		if cost < bestCost {
			bestCost = cost
			bestPerm = append(bestPerm[:0], perm...)
		}
		if !nextPermutation(perm) {
			break
		}
	}

	if math.IsInf(bestCost, 1) {
		return nil, 0, ErrNoFeasibleRoute
	}

	return closeTour(bestPerm), bestCost, nil
}

// tourCost sums the matrix field selected by objective along the closed
// tour [0] + perm + [0]. Any infinite edge makes the whole sum infinite.
func tourCost(matrix domain.CostMatrix, perm []int, objective domain.Objective) float64 {
	cost := matrix[0][perm[0]].Value(objective)
	for i := 1; i < len(perm); i++ {
		cost += matrix[perm[i-1]][perm[i]].Value(objective)
	}
	cost += matrix[perm[len(perm)-1]][0].Value(objective)
	return cost
}

// closeTour builds the final route [0, perm..., 0].
func closeTour(perm []int) domain.Route {
	route := make(domain.Route, 0, len(perm)+2)
	route = append(route, 0)
	route = append(route, perm...)
	route = append(route, 0)
	return route
}

// ascending returns [lo, lo+1, ..., hi-1], the lexicographically first
// permutation of the interior stops.
func ascending(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}

// nextPermutation advances p to its lexicographic successor in place.
// It returns false once p is the final (descending) permutation.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]

	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
