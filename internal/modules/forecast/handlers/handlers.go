// Package handlers provides HTTP handlers for forecast chart data.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fuzzysystem/finance/internal/domain"
	"github.com/fuzzysystem/finance/internal/modules/forecast"
	"github.com/fuzzysystem/finance/internal/session"
)

// SessionSource provides the active session.
type SessionSource interface {
	Current() *session.Session
}

// Handler handles forecast HTTP requests
type Handler struct {
	service  *forecast.Service
	sessions SessionSource
	log      zerolog.Logger
}

// NewHandler creates a new forecast handler
func NewHandler(service *forecast.Service, sessions SessionSource, log zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		log:      log.With().Str("handler", "forecast").Logger(),
	}
}

// HandleGetTickers handles GET /api/forecast/tickers
func (h *Handler) HandleGetTickers(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Current()
	if s == nil {
		h.writeError(w, http.StatusServiceUnavailable, "no data loaded")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"tickers": h.service.Tickers(s.Table),
		},
		"metadata": metadata(s),
	})
}

// HandleGetSeries handles GET /api/forecast/{ticker}/series
func (h *Handler) HandleGetSeries(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Current()
	if s == nil {
		h.writeError(w, http.StatusServiceUnavailable, "no data loaded")
		return
	}

	ticker := domain.Ticker(chi.URLParam(r, "ticker"))
	chart, err := h.service.Chart(s.Table, ticker)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Str("ticker", string(ticker)).Msg("Failed to build chart")
		}
		h.writeError(w, status, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":     chart,
		"metadata": metadata(s),
	})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidTicker):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownModelTag):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyRange), errors.Is(err, domain.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func metadata(s *session.Session) map[string]interface{} {
	return map[string]interface{}{
		"timestamp":  time.Now().Format(time.RFC3339),
		"session_id": s.ID,
		"loaded_at":  s.LoadedAt.Format(time.RFC3339),
	}
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
