package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the forecast routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/forecast/tickers", h.HandleGetTickers)
	r.Get("/forecast/{ticker}/series", h.HandleGetSeries)
}
