package services

import (
	"context"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// ResolveLocations geocodes every address in input order.
//
// Addresses are resolved sequentially: the collaborator owns its own rate
// limiting, and a failed address aborts the whole request rather than
// producing a partial tour. Indices in the returned slice match input
// positions, so index 0 is always the depot.
func ResolveLocations(
	ctx context.Context,
	addresses []string,
	geocoder ports.Geocoder,
) ([]domain.Location, error) {
	locations := make([]domain.Location, 0, len(addresses))

	for i, addr := range addresses {
		addr = strings.TrimSpace(addr)

		place, err := geocoder.Resolve(ctx, addr)
		if err != nil {
			return nil, &domain.GeocodingError{Address: addr, Err: err}
		}

		locations = append(locations, domain.Location{
			Index:       i,
			RawAddress:  addr,
			Coordinates: place.Coordinates,
			DisplayName: place.DisplayName,
		})
	}

	return locations, nil
}
