// Package handlers provides HTTP handlers for forecast accuracy metrics.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fuzzysystem/finance/internal/domain"
	"github.com/fuzzysystem/finance/internal/modules/accuracy"
	"github.com/fuzzysystem/finance/internal/session"
)

// SessionSource provides the active session.
type SessionSource interface {
	Current() *session.Session
}

// Handler handles accuracy HTTP requests
type Handler struct {
	evaluator *accuracy.Evaluator
	namer     accuracy.ModelNamer
	sessions  SessionSource
	log       zerolog.Logger
}

// NewHandler creates a new accuracy handler
func NewHandler(
	evaluator *accuracy.Evaluator,
	namer accuracy.ModelNamer,
	sessions SessionSource,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		evaluator: evaluator,
		namer:     namer,
		sessions:  sessions,
		log:       log.With().Str("handler", "accuracy").Logger(),
	}
}

// HandleGetAccuracy handles GET /api/forecast/{ticker}/accuracy?models=&metrics=
func (h *Handler) HandleGetAccuracy(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Current()
	if s == nil {
		h.writeError(w, http.StatusServiceUnavailable, "no data loaded")
		return
	}

	kinds, err := accuracy.ParseMetricKinds(r.URL.Query().Get("metrics"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tags := accuracy.ParseModelTags(r.URL.Query().Get("models"))
	ticker := domain.Ticker(chi.URLParam(r, "ticker"))

	results, err := h.evaluator.Evaluate(s.Table, ticker, tags, kinds...)
	if err != nil {
		h.writeError(w, errorStatus(err), err.Error())
		return
	}

	messages, err := accuracy.Messages(ticker, results, h.namer, kinds...)
	if err != nil {
		h.writeError(w, errorStatus(err), err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"ticker":   ticker,
			"results":  results,
			"messages": messages,
		},
		"metadata": map[string]interface{}{
			"timestamp":  time.Now().Format(time.RFC3339),
			"session_id": s.ID,
		},
	})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidTicker):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownModelTag):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
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
	if status == http.StatusInternalServerError {
		h.log.Error().Str("error", message).Msg("Accuracy request failed")
	}
	h.writeJSON(w, status, map[string]string{"error": message})
}
