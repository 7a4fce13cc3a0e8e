package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a request carries fewer than two
// addresses. It is rejected before any collaborator call.
var ErrInvalidInput = errors.New("at least 2 addresses are required")

// GeocodingError marks an address that could not be resolved after all
// collaborator-internal attempts. It is fatal to the whole request; no
// partial tour over a subset of stops is produced.
type GeocodingError struct {
	Address string
	Err     error
}

func (e *GeocodingError) Error() string {
	return fmt.Sprintf("could not geocode %q: %v", e.Address, e.Err)
}

func (e *GeocodingError) Unwrap() error { return e.Err }
