package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type HealthResponse struct {
	Status        string `json:"status"`
	CachedKeys    int    `json:"cached_keys"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := s.store.ListItems(r.Context())
	if err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, HealthResponse{
		Status:        "ok",
		CachedKeys:    len(items),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	})
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	setup, err := s.builder.StudySetup(r.Context())
	if err != nil {
		s.logger.Error("failed to build study setup", zap.Error(err))
		http.Error(w, "Failed to build study setup", http.StatusInternalServerError)
		return
	}

	writeJSON(w, setup)
}

type EnrollResponse struct {
	AllowEnroll bool `json:"allowEnroll"`
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	allowed, err := s.builder.ShouldAllowEnroll(r.Context())
	if err != nil {
		s.logger.Error("failed to resolve enrollment", zap.Error(err))
		http.Error(w, "Failed to resolve enrollment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, EnrollResponse{AllowEnroll: allowed})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.builder.ResetEnrollment(r.Context()); err != nil {
		s.logger.Error("failed to reset enrollment", zap.Error(err))
		http.Error(w, "Failed to reset enrollment", http.StatusInternalServerError)
		return
	}

	s.logger.Info("enrollment cache reset")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
