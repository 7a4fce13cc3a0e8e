package api

import (
	"net/http"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/metrics"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/publisher"
)

// Dependencies for the HTTP surface, wired by the composition root.
// Geometer, Repo, Events and Metrics are optional.
type RouterDeps struct {
	Geocoder ports.Geocoder
	Coster   ports.PairwiseCoster
	Geometer ports.RouteGeometer
	Repo     ports.OptimizationRepository
	Events   *publisher.NATSPublisher
	Metrics  *metrics.Collector

	PairConcurrency int
	SolverWorkers   int
	HistoryLimit    int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	optimizeHandler := &handlers.OptimizeHandler{
		Geocoder:        deps.Geocoder,
		Coster:          deps.Coster,
		Geometer:        deps.Geometer,
		Repo:            deps.Repo,
		Events:          deps.Events,
		Metrics:         deps.Metrics,
		PairConcurrency: deps.PairConcurrency,
		SolverWorkers:   deps.SolverWorkers,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)

	if deps.Repo != nil {
		historyHandler := &handlers.HistoryHandler{Repo: deps.Repo, Limit: deps.HistoryLimit}
		mux.HandleFunc("/optimizations", historyHandler.List)
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}
