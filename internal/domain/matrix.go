package domain

import "math"

// Travel duration and distance between two specific stops.
// Positive infinity in either field means no usable connection was found.
type PairwiseCost struct {
	DurationSeconds float64
	DistanceMeters  float64
}

// Unreachable returns the cost pair stored when a routing query fails.
func Unreachable() PairwiseCost {
	return PairwiseCost{DurationSeconds: math.Inf(1), DistanceMeters: math.Inf(1)}
}

// Value selects the cost field matching the given objective.
func (p PairwiseCost) Value(o Objective) float64 {
	if o == OptimizeDistance {
		return p.DistanceMeters
	}
	return p.DurationSeconds
}

// CostMatrix is an N×N symmetric matrix of pairwise costs with a zero
// diagonal. It is built exactly once per optimization request and never
// mutated afterwards.
type CostMatrix [][]PairwiseCost

// NewCostMatrix allocates an n×n matrix with zero-value cells.
func NewCostMatrix(n int) CostMatrix {
	m := make(CostMatrix, n)
	for i := range m {
		m[i] = make([]PairwiseCost, n)
	}
	return m
}

// Len returns the number of stops covered by the matrix.
func (m CostMatrix) Len() int { return len(m) }

// SetPair stores a cost symmetrically at [i][j] and [j][i].
func (m CostMatrix) SetPair(i, j int, cost PairwiseCost) {
	m[i][j] = cost
	m[j][i] = cost
}
