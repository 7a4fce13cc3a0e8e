package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"route-optimizer-service/internal/api/dto"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeStageError reports a pipeline failure with the stage that caused
// it, so callers can tell a bad address from a disconnected road network.
func writeStageError(w http.ResponseWriter, r *http.Request, status int, stage, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg, Stage: stage})
}
