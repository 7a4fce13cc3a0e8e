package handlers

import (
	"log"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
)

// HistoryHandler exposes read-only access to past optimizations.
type HistoryHandler struct {
	Repo  ports.OptimizationRepository
	Limit int
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := h.Repo.ListOptimizations(r.Context(), h.Limit)
	if err != nil {
		log.Printf("list optimizations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListOptimizationsResponse{
		Optimizations: make([]dto.OptimizationSummaryResponse, 0, len(records)),
	}
	for _, rec := range records {
		res.Optimizations = append(res.Optimizations, dto.OptimizationSummaryResponse{
			ID:                   rec.ID,
			CreatedAt:            rec.CreatedAt,
			Addresses:            rec.Addresses,
			TransportMode:        string(rec.TransportMode),
			Objective:            string(rec.Objective),
			Route:                rec.Route,
			TotalDurationSeconds: rec.TotalDurationSeconds,
			TotalDistanceMeters:  rec.TotalDistanceMeters,
			OptimizationValue:    rec.OptimizationValue,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
