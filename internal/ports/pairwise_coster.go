package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Contract for retrieving travel duration and distance between two
// coordinates under a given routing profile. Used once per unordered pair
// when building a cost matrix.
type PairwiseCoster interface {
	PairwiseCost(ctx context.Context, a, b domain.Coordinates, profile string) (domain.PairwiseCost, error)
}

// Optional extension that exposes road geometry for a single leg.
// Consumed only for visualization payloads, never by the solver.
// A failed lookup yields an empty polyline, not an error the caller must
// abort on.
type RouteGeometer interface {
	RouteGeometry(ctx context.Context, a, b domain.Coordinates, profile string) ([]domain.Coordinates, error)
}
