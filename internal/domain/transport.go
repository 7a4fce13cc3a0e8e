package domain

import "fmt"

// TransportMode selects the routing profile used for pairwise queries.
type TransportMode string

const (
	ModeDriving TransportMode = "driving"
	ModeCycling TransportMode = "cycling"
	ModeWalking TransportMode = "walking"
	ModeBus     TransportMode = "bus"
)

// ParseTransportMode validates a user-supplied mode string.
// An empty string defaults to driving.
func ParseTransportMode(s string) (TransportMode, error) {
	switch TransportMode(s) {
	case "":
		return ModeDriving, nil
	case ModeDriving, ModeCycling, ModeWalking, ModeBus:
		return TransportMode(s), nil
	default:
		return "", fmt.Errorf("unknown transport mode %q", s)
	}
}

// Profile maps the mode to an OSRM routing profile.
// Buses follow road geometry, so they reuse the driving profile.
func (m TransportMode) Profile() string {
	switch m {
	case ModeCycling:
		return "cycling"
	case ModeWalking:
		return "foot"
	default:
		return "driving"
	}
}

// DurationFactor is applied to raw query durations before they are stored
// in the cost matrix. Buses are assumed 20% slower than cars due to stops.
func (m TransportMode) DurationFactor() float64 {
	if m == ModeBus {
		return 1.2
	}
	return 1.0
}

// Objective selects which cost dimension the solver minimizes.
type Objective string

const (
	OptimizeTime     Objective = "time"
	OptimizeDistance Objective = "distance"
)

// ParseObjective validates a user-supplied objective string.
// An empty string defaults to time.
func ParseObjective(s string) (Objective, error) {
	switch Objective(s) {
	case "":
		return OptimizeTime, nil
	case OptimizeTime, OptimizeDistance:
		return Objective(s), nil
	default:
		return "", fmt.Errorf("unknown objective %q (want \"time\" or \"distance\")", s)
	}
}
