package domain

// Route is an ordered sequence of location indices of length N+1 that
// starts and ends at the depot (index 0) and visits every other index
// exactly once in between.
type Route []int

// Interior returns the visited indices without the depot bookends.
func (r Route) Interior() []int {
	if len(r) < 2 {
		return nil
	}
	return r[1 : len(r)-1]
}

// OptimizationResult is derived from the cost matrix after the winning
// route is known. Both totals are recomputed along the route's edges
// regardless of which objective was optimized.
type OptimizationResult struct {
	Route                Route
	Objective            Objective
	TotalCost            float64
	TotalDurationSeconds float64
	TotalDistanceMeters  float64
}
