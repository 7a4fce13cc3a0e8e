package services

import (
	"context"
	"fmt"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/metrics"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/solver"
)

type OptimizeRequest struct {
	Addresses     []string
	Objective     domain.Objective
	TransportMode domain.TransportMode
}

// Tuning knobs owned by the composition root, not the pipeline itself.
type OptimizeOptions struct {
	// Concurrent pairwise queries during matrix construction.
	PairConcurrency int
	// Worker count for the parallel solver; <2 runs sequentially.
	SolverWorkers int
	// Optional metrics collector; nil disables instrumentation.
	Metrics *metrics.Collector
}

// Everything produced by one optimization request. Locations and Matrix
// stay available so the caller can fetch per-leg geometry or persist the
// outcome without re-deriving anything.
type Optimization struct {
	Locations []domain.Location
	Matrix    domain.CostMatrix
	Result    domain.OptimizationResult
	Report    RouteReport
}

// OptimizeRoute runs the full pipeline: geocode, build the pairwise cost
// matrix, solve the tour exactly, and assemble the report.
//
// The request either yields a complete result or a single typed error
// identifying the failed stage (domain.ErrInvalidInput, a
// *domain.GeocodingError, solver.ErrNoFeasibleRoute or
// solver.ErrTooManyStops). There is no partial success.
func OptimizeRoute(
	ctx context.Context,
	req OptimizeRequest,
	geocoder ports.Geocoder,
	coster ports.PairwiseCoster,
	opts OptimizeOptions,
) (_ *Optimization, err error) {
	defer obs.Time(ctx, "services.OptimizeRoute")(&err)

	if len(req.Addresses) < 2 {
		return nil, domain.ErrInvalidInput
	}
	if len(req.Addresses) > solver.MaxStops {
		return nil, solver.ErrTooManyStops
	}

	locations, err := ResolveLocations(ctx, req.Addresses, geocoder)
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	buildStart := time.Now()
	matrix := BuildCostMatrix(ctx, locations, req.TransportMode, coster, opts.PairConcurrency)
	if opts.Metrics != nil {
		opts.Metrics.MatrixBuildDuration.Observe(time.Since(buildStart).Seconds())
	}

	solveStart := time.Now()
	route, _, err := solver.SolveParallel(matrix, req.Objective, opts.SolverWorkers)
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}
	if opts.Metrics != nil {
		opts.Metrics.SolverDuration.Observe(time.Since(solveStart).Seconds())
		opts.Metrics.Optimizations.WithLabelValues(string(req.Objective), string(req.TransportMode)).Inc()
	}

	result := AssembleResult(matrix, route, req.Objective)

	return &Optimization{
		Locations: locations,
		Matrix:    matrix,
		Result:    result,
		Report:    BuildReport(result, locations, req.TransportMode),
	}, nil
}
