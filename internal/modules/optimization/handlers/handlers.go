// Package handlers provides HTTP handlers for the optimization surface.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/fuzzysystem/finance/internal/modules/optimization"
	"github.com/fuzzysystem/finance/internal/session"
)

// SessionSource provides the active session.
type SessionSource interface {
	Current() *session.Session
}

// Handler handles optimization HTTP requests
type Handler struct {
	sessions SessionSource
	log      zerolog.Logger
}

// NewHandler creates a new optimization handler
func NewHandler(sessions SessionSource, log zerolog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		log:      log.With().Str("handler", "optimization").Logger(),
	}
}

// HandleGetOptimization handles GET /api/optimization
func (h *Handler) HandleGetOptimization(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Current()
	if s == nil || !s.HasOptimization() {
		h.writeError(w, http.StatusNotFound, "no optimization data loaded")
		return
	}

	surface, summary, err := optimization.Adapt(*s.Optimization)
	if err != nil {
		h.log.Error().Err(err).Str("session_id", s.ID).Msg("Failed to adapt optimization data")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"series":       surface.Series(),
			"summary":      summary,
			"summary_text": optimization.FormatSummary(summary),
		},
		"metadata": map[string]interface{}{
			"timestamp":  time.Now().Format(time.RFC3339),
			"session_id": s.ID,
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
