package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// A resolved place returned by the geocoding collaborator.
type Place struct {
	Coordinates domain.Coordinates
	DisplayName string
}

// Contract for resolving free-text addresses to coordinates.
// Implementations may try several query variants internally, but from the
// caller's view a single call either succeeds with one coordinate or fails
// outright for that address.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (Place, error)
}
