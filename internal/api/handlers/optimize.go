package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/metrics"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/publisher"
	"route-optimizer-service/internal/services"
	"route-optimizer-service/internal/solver"
)

type OptimizeHandler struct {
	Geocoder ports.Geocoder
	Coster   ports.PairwiseCoster
	// Optional collaborators; nil disables the corresponding feature.
	Geometer ports.RouteGeometer
	Repo     ports.OptimizationRepository
	Events   *publisher.NATSPublisher
	Metrics  *metrics.Collector

	PairConcurrency int
	SolverWorkers   int
}

// Optimize runs the full pipeline for one request: geocode, cost matrix,
// exact tour search, report assembly, plus the optional geometry,
// history, and event side effects.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeStageError(w, r, http.StatusBadRequest, "invalid_input", "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeStageError(w, r, http.StatusBadRequest, "invalid_input", "body must contain only one JSON object")
		return
	}

	objective, err := domain.ParseObjective(req.OptimizeBy)
	if err != nil {
		writeStageError(w, r, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	mode, err := domain.ParseTransportMode(req.TransportMode)
	if err != nil {
		writeStageError(w, r, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	svcReq := services.OptimizeRequest{
		Addresses:     req.Addresses,
		Objective:     objective,
		TransportMode: mode,
	}
	opts := services.OptimizeOptions{
		PairConcurrency: h.PairConcurrency,
		SolverWorkers:   h.SolverWorkers,
		Metrics:         h.Metrics,
	}

	opt, err := services.OptimizeRoute(r.Context(), svcReq, h.Geocoder, h.Coster, opts)
	if err != nil {
		h.writeOptimizeError(w, r, err)
		return
	}

	res := toOptimizeResponse(opt.Report)
	if req.IncludeGeometry && h.Geometer != nil {
		res.Legs = h.fetchLegs(r.Context(), opt, mode)
	}

	h.recordOutcome(r.Context(), req.Addresses, opt)

	writeJSON(w, r, http.StatusOK, res)
}

func (h *OptimizeHandler) writeOptimizeError(w http.ResponseWriter, r *http.Request, err error) {
	var geoErr *domain.GeocodingError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeStageError(w, r, http.StatusBadRequest, "invalid_input", domain.ErrInvalidInput.Error())
	case errors.Is(err, solver.ErrTooManyStops):
		writeStageError(w, r, http.StatusBadRequest, "invalid_input", solver.ErrTooManyStops.Error())
	case errors.As(err, &geoErr):
		writeStageError(w, r, http.StatusUnprocessableEntity, "geocoding", geoErr.Error())
	case errors.Is(err, solver.ErrNoFeasibleRoute):
		if h.Metrics != nil {
			h.Metrics.InfeasibleTours.Inc()
		}
		writeStageError(w, r, http.StatusUnprocessableEntity, "routing", "no feasible route connects all stops")
	default:
		log.Printf("optimize failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// fetchLegs retrieves road geometry per consecutive stop pair. Failures
// degrade to an empty polyline for that leg; they never fail the request.
func (h *OptimizeHandler) fetchLegs(ctx context.Context, opt *services.Optimization, mode domain.TransportMode) []dto.LegResponse {
	route := opt.Result.Route
	legs := make([]dto.LegResponse, 0, len(route)-1)

	for i := 1; i < len(route); i++ {
		from := opt.Locations[route[i-1]]
		to := opt.Locations[route[i]]

		leg := dto.LegResponse{FromStep: i, ToStep: i + 1, Points: [][2]float64{}}
		points, err := h.Geometer.RouteGeometry(ctx, from.Coordinates, to.Coordinates, mode.Profile())
		if err != nil {
			log.Printf("route geometry failed: leg=%d err=%v", i, err)
		}
		for _, p := range points {
			leg.Points = append(leg.Points, [2]float64{p.Lat, p.Lon})
		}
		legs = append(legs, leg)
	}

	return legs
}

// recordOutcome persists the optimization and emits the result event.
// Both are best-effort: the response was already computed.
func (h *OptimizeHandler) recordOutcome(ctx context.Context, addresses []string, opt *services.Optimization) {
	id := uuid.NewString()
	now := time.Now().UTC()

	if h.Repo != nil {
		rec := ports.OptimizationRecord{
			ID:                   id,
			CreatedAt:            now,
			Addresses:            addresses,
			TransportMode:        opt.Report.TransportMode,
			Objective:            opt.Result.Objective,
			Route:                opt.Result.Route,
			TotalDurationSeconds: opt.Result.TotalDurationSeconds,
			TotalDistanceMeters:  opt.Result.TotalDistanceMeters,
			OptimizationValue:    opt.Report.OptimizationValue,
		}
		if err := h.Repo.SaveOptimization(ctx, rec); err != nil {
			log.Printf("save optimization failed: id=%s err=%v", id, err)
		}
	}

	if h.Events != nil {
		evt := publisher.OptimizationEvent{
			ID:                   id,
			Timestamp:            now,
			StopCount:            len(addresses),
			TransportMode:        string(opt.Report.TransportMode),
			Objective:            string(opt.Result.Objective),
			Route:                opt.Result.Route,
			TotalDurationSeconds: opt.Result.TotalDurationSeconds,
			TotalDistanceMeters:  opt.Result.TotalDistanceMeters,
		}
		if err := h.Events.PublishOptimization(evt); err != nil {
			log.Printf("publish optimization event failed: id=%s err=%v", id, err)
		}
	}
}

func toOptimizeResponse(report services.RouteReport) dto.OptimizeResponse {
	stops := make([]dto.StopResponse, 0, len(report.Stops))
	for _, s := range report.Stops {
		stops = append(stops, dto.StopResponse{
			Step:        s.Step,
			Address:     s.Address,
			Coordinates: [2]float64{s.Coordinates.Lat, s.Coordinates.Lon},
		})
	}

	return dto.OptimizeResponse{
		Route:              stops,
		TotalTimeMinutes:   report.TotalTimeMinutes,
		TotalTimeHours:     report.TotalTimeHours,
		TotalDistanceKm:    report.TotalDistanceKm,
		TotalDistanceMiles: report.TotalDistanceMiles,
		OptimizedBy:        title(string(report.OptimizedBy)),
		TransportMode:      title(string(report.TransportMode)),
		OptimizationValue:  report.OptimizationValue,
	}
}

// title capitalizes a known-ASCII enum value for display ("time" -> "Time").
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
