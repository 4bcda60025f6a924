package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"itinerary-optimizer-service/internal/adapters/cache"
	"itinerary-optimizer-service/internal/api/dto"
	"itinerary-optimizer-service/internal/domain"
	"itinerary-optimizer-service/internal/ports"
	"itinerary-optimizer-service/internal/services"
)

const defaultStartHour = 9

type OptimizeHandler struct {
	Ref   ports.ReferenceData
	Cache ports.ResultCache
}

// Optimize runs the exhaustive itinerary search for the requested stops.
// The city is derived from the first resolvable attraction id, and complete
// responses are cached so identical requests skip the search entirely.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Request body must be JSON")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.PreferenceMode == "" {
		req.PreferenceMode = "balanced"
	}
	if msg := req.Validate(); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	startHour := defaultStartHour
	if req.StartHour != nil {
		startHour = *req.StartHour
	}

	key := cache.OptimizeKey(
		req.StartLatitude, req.StartLongitude, req.AttractionIDs,
		"", req.Date, startHour, req.PreferenceMode,
	)
	if h.serveCached(w, r, key) {
		return
	}

	city := ""
	for _, id := range req.AttractionIDs {
		if attr, ok := h.Ref.LookupAttraction(id); ok {
			city = attr.City
			break
		}
	}
	if city == "" {
		writeError(w, r, http.StatusBadRequest, "No valid attraction IDs found")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid date format")
		return
	}

	result, err := services.Optimize(h.Ref, services.OptimizeRequest{
		Start:          domain.Coordinates{Lat: req.StartLatitude, Lon: req.StartLongitude},
		AttractionIDs:  req.AttractionIDs,
		City:           city,
		Date:           date,
		StartHour:      startHour,
		PreferenceMode: req.PreferenceMode,
	})
	if err != nil {
		log.Printf("optimize failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "Optimization failed")
		return
	}

	res := dto.FromOptimizationResult(result, city)

	h.storeCached(r, key, res)
	writeJSON(w, r, http.StatusOK, res)
}

// serveCached replays a cached response with the _cached flag flipped on.
// Cache failures degrade to a normal engine run.
func (h *OptimizeHandler) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	payload, found, err := h.Cache.Get(r.Context(), key)
	if err != nil {
		log.Printf("cache get failed: key=%s err=%v", key, err)
		return false
	}
	if !found {
		return false
	}

	var cached map[string]any
	if err := json.Unmarshal(payload, &cached); err != nil {
		log.Printf("cache payload corrupt: key=%s err=%v", key, err)
		return false
	}
	cached["_cached"] = true

	writeJSON(w, r, http.StatusOK, cached)
	return true
}

func (h *OptimizeHandler) storeCached(r *http.Request, key string, res any) {
	payload, err := json.Marshal(res)
	if err != nil {
		log.Printf("cache encode failed: key=%s err=%v", key, err)
		return
	}
	if err := h.Cache.Set(r.Context(), key, payload, 0); err != nil {
		log.Printf("cache set failed: key=%s err=%v", key, err)
	}
}
