package server

import (
	"context"
	"net/http"
	"time"

	"github.com/jonathan/resume-assist/internal/llm"
)

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status   string           `json:"status"`
	Model    string           `json:"model"`
	Backend  llm.Availability `json:"backend"`
	Database string           `json:"database"`
}

// handleHealth reports liveness plus backend and database reachability.
// The server itself is up, so it answers 200 with a "degraded" status when
// a dependency is down.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:   "ok",
		Model:    s.gen.Model(),
		Backend:  s.gen.CheckBackend(ctx),
		Database: "ok",
	}
	if err := s.store.Ping(ctx); err != nil {
		resp.Database = err.Error()
		resp.Status = "degraded"
	}
	if !resp.Backend.IsAvailable {
		resp.Status = "degraded"
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
