package handlers

import (
	"log"
	"net/http"

	"itinerary-optimizer-service/internal/ports"
)

// AttractionCounter reports how many attractions the provider holds.
type AttractionCounter interface {
	Len() int
}

type HealthHandler struct {
	Version string
	Ref     AttractionCounter
	Cache   ports.ResultCache
}

// Health reports liveness plus dataset and cache figures.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := h.Cache.Stats(r.Context())
	if err != nil {
		log.Printf("cache stats failed: %v", err)
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":             "healthy",
		"version":            h.Version,
		"attractions_loaded": h.Ref.Len(),
		"cities":             supportedCities,
		"cache_stats":        stats,
	})
}
