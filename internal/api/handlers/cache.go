package handlers

import (
	"log"
	"net/http"

	"itinerary-optimizer-service/internal/ports"
)

type CacheHandler struct {
	Cache ports.ResultCache
}

// Stats returns cache hit/miss counters.
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Cache.Stats(r.Context())
	if err != nil {
		log.Printf("cache stats failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "cache": stats})
}

// Clear drops every cached entry.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Cache.Clear(r.Context()); err != nil {
		log.Printf("cache clear failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "message": "Cache cleared"})
}
