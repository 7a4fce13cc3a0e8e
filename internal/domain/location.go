package domain

// Represents a delivery stop after geocoding.
// Index is the stable position in input order (0..N-1); index 0 is the
// depot where every tour starts and ends. Locations are immutable once
// resolved.
type Location struct {
	Index       int
	RawAddress  string
	Coordinates Coordinates
	DisplayName string
}
