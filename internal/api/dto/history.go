package dto

import "time"

type OptimizationSummaryResponse struct {
	ID                   string    `json:"id"`
	CreatedAt            time.Time `json:"created_at"`
	Addresses            []string  `json:"addresses"`
	TransportMode        string    `json:"transport_mode"`
	Objective            string    `json:"objective"`
	Route                []int     `json:"route"`
	TotalDurationSeconds float64   `json:"total_duration_seconds"`
	TotalDistanceMeters  float64   `json:"total_distance_meters"`
	OptimizationValue    float64   `json:"optimization_value"`
}

type ListOptimizationsResponse struct {
	Optimizations []OptimizationSummaryResponse `json:"optimizations"`
}
