package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type pingRequest struct {
	Event  string `json:"event"`
	Source string `json:"source"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4<<10)

	var req pingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "validation_error", "invalid request body", http.StatusBadRequest)
		return
	}
	req.Event = strings.TrimSpace(req.Event)
	if req.Event == "" {
		jsonError(w, "validation_error", "event is required", http.StatusBadRequest)
		return
	}

	if err := s.telemetry.Record(r.Context(), req.Event, strings.TrimSpace(req.Source)); err != nil {
		s.log.Error("ping record failed", "error", err)
		jsonError(w, "internal_error", "could not record ping", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.telemetry.Aggregate(r.Context())
	if err != nil {
		s.log.Error("stats aggregate failed", "error", err)
		jsonError(w, "internal_error", "could not aggregate stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.llmStats == nil {
		jsonError(w, "internal_error", "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"model": s.cfg.OpenAIModel,
		"stats": s.llmStats.Snapshot(),
	})
}
