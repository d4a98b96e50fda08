package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the accuracy routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/forecast/{ticker}/accuracy", h.HandleGetAccuracy)
}
