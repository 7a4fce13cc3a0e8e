package dto

type OptimizeRequest struct {
	Addresses       []string `json:"addresses"`
	OptimizeBy      string   `json:"optimize_by"`
	TransportMode   string   `json:"transport_mode"`
	IncludeGeometry bool     `json:"include_geometry"`
}

type StopResponse struct {
	Step    int    `json:"step"`
	Address string `json:"address"`
	// Coordinates are [lat, lon], matching the order map widgets expect.
	Coordinates [2]float64 `json:"coordinates"`
}

// Road polyline for one leg of the winning route. Points may be empty
// when the geometry collaborator had nothing; clients draw a straight
// line between the stops in that case.
type LegResponse struct {
	FromStep int          `json:"from_step"`
	ToStep   int          `json:"to_step"`
	Points   [][2]float64 `json:"points"`
}

type OptimizeResponse struct {
	Route              []StopResponse `json:"route"`
	TotalTimeMinutes   float64        `json:"total_time_minutes"`
	TotalTimeHours     float64        `json:"total_time_hours"`
	TotalDistanceKm    float64        `json:"total_distance_km"`
	TotalDistanceMiles float64        `json:"total_distance_miles"`
	OptimizedBy        string         `json:"optimized_by"`
	TransportMode      string         `json:"transport_mode"`
	OptimizationValue  float64        `json:"optimization_value"`
	Legs               []LegResponse  `json:"legs,omitempty"`
}

// ErrorResponse identifies which stage of the pipeline rejected the
// request: invalid_input, geocoding, or routing.
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage"`
}
