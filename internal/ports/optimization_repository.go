package ports

import (
	"context"
	"time"

	"route-optimizer-service/internal/domain"
)

// A persisted record of one completed optimization request.
type OptimizationRecord struct {
	ID                   string
	CreatedAt            time.Time
	Addresses            []string
	TransportMode        domain.TransportMode
	Objective            domain.Objective
	Route                domain.Route
	TotalDurationSeconds float64
	TotalDistanceMeters  float64
	OptimizationValue    float64
}

// Port: a boundary for storing and listing optimization history.
type OptimizationRepository interface {
	SaveOptimization(ctx context.Context, rec OptimizationRecord) error
	ListOptimizations(ctx context.Context, limit int) ([]OptimizationRecord, error)
}
