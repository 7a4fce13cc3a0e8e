package services

import (
	"math"

	"route-optimizer-service/internal/domain"
)

const metersPerMile = 1609.34

// A single stop in the ordered report, 1-based.
type StopDetail struct {
	Step        int
	Address     string
	Coordinates domain.Coordinates
}

// RouteReport is the user-facing summary of one optimization: the ordered
// stop list plus totals converted into reporting units.
type RouteReport struct {
	Stops              []StopDetail
	TotalTimeMinutes   float64
	TotalTimeHours     float64
	TotalDistanceKm    float64
	TotalDistanceMiles float64
	OptimizedBy        domain.Objective
	TransportMode      domain.TransportMode
	// OptimizationValue is the optimized objective's total in minutes
	// (time) or kilometers (distance).
	OptimizationValue float64
}

// AssembleResult recomputes both duration and distance totals along the
// winning route's edges. The totals are independent of which objective was
// optimized: a distance-optimal route still reports its full travel time.
func AssembleResult(
	matrix domain.CostMatrix,
	route domain.Route,
	objective domain.Objective,
) domain.OptimizationResult {
	var durationSeconds, distanceMeters float64
	for i := 1; i < len(route); i++ {
		cost := matrix[route[i-1]][route[i]]
		durationSeconds += cost.DurationSeconds
		distanceMeters += cost.DistanceMeters
	}

	result := domain.OptimizationResult{
		Route:                route,
		Objective:            objective,
		TotalDurationSeconds: durationSeconds,
		TotalDistanceMeters:  distanceMeters,
	}
	if objective == domain.OptimizeDistance {
		result.TotalCost = distanceMeters
	} else {
		result.TotalCost = durationSeconds
	}
	return result
}

// BuildReport converts a result into reporting units and pairs each route
// index with its location. The final return-to-depot element is excluded
// from the stop list.
func BuildReport(
	result domain.OptimizationResult,
	locations []domain.Location,
	mode domain.TransportMode,
) RouteReport {
	stops := make([]StopDetail, 0, len(result.Route)-1)
	for step, idx := range result.Route[:len(result.Route)-1] {
		loc := locations[idx]
		stops = append(stops, StopDetail{
			Step:        step + 1,
			Address:     loc.DisplayName,
			Coordinates: loc.Coordinates,
		})
	}

	report := RouteReport{
		Stops:              stops,
		TotalTimeMinutes:   RoundTo(result.TotalDurationSeconds/60, 1),
		TotalTimeHours:     RoundTo(result.TotalDurationSeconds/3600, 2),
		TotalDistanceKm:    RoundTo(result.TotalDistanceMeters/1000, 2),
		TotalDistanceMiles: RoundTo(result.TotalDistanceMeters/metersPerMile, 2),
		OptimizedBy:        result.Objective,
		TransportMode:      mode,
	}

	if result.Objective == domain.OptimizeDistance {
		report.OptimizationValue = RoundTo(result.TotalCost/1000, 2)
	} else {
		report.OptimizationValue = RoundTo(result.TotalCost/60, 1)
	}

	return report
}

// RoundTo rounds half away from zero to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
