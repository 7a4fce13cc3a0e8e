package geo

import (
	"context"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// GeocodeCache stores resolved places keyed by normalized address.
// A nil place with a nil error means "not cached".
type GeocodeCache interface {
	GetPlace(ctx context.Context, address string) (*ports.Place, error)
	PutPlace(ctx context.Context, address string, place ports.Place) error
}

// CostCache stores raw pairwise costs keyed by PairKey. Cached values are
// pre-multiplier: transport-mode duration factors are applied by the
// matrix builder, so driving and bus share cache entries.
type CostCache interface {
	GetCost(ctx context.Context, key string) (*domain.PairwiseCost, error)
	PutCost(ctx context.Context, key string, cost domain.PairwiseCost) error
}

// ClientMetrics is implemented by the composition root to count
// collaborator traffic; all methods must be safe with a nil receiver
// check upstream (adapters guard against nil themselves).
type ClientMetrics interface {
	GeocodeInc()
	GeocodeErrInc()
	PairwiseInc()
	PairwiseErrInc()
	CacheHit(cache string)
	CacheMiss(cache string)
}
