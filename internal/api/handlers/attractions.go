package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"itinerary-optimizer-service/internal/api/dto"
	"itinerary-optimizer-service/internal/ports"
)

const defaultListLimit = 50

// cityAliases maps accepted query spellings onto canonical city names.
var cityAliases = map[string]string{
	"madrid":    "Madrid",
	"barcelona": "Barcelona",
	"seville":   "Seville",
	"sevilla":   "Seville",
}

type AttractionHandler struct {
	Ref ports.ReferenceData
}

// List returns a city's attractions with optional category, priority and
// count filters, ordered by priority descending.
func (h *AttractionHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, r, http.StatusBadRequest, "city parameter is required")
		return
	}

	canonical, ok := cityAliases[strings.ToLower(city)]
	if !ok {
		writeError(w, r, http.StatusBadRequest,
			"Unsupported city. Choose from: madrid, barcelona, seville, sevilla")
		return
	}

	attractions := h.Ref.AttractionsByCity(canonical)

	category := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))
	minPriority := 0.0
	if raw := r.URL.Query().Get("min_priority"); raw != "" {
		var err error
		minPriority, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "min_priority must be a number")
			return
		}
	}

	filtered := make([]dto.AttractionResponse, 0, len(attractions))
	for _, a := range attractions {
		if category != "" && strings.ToLower(a.Category) != category {
			continue
		}
		if a.PriorityScore < minPriority {
			continue
		}
		filtered = append(filtered, dto.FromAttraction(a))
	}

	// Stable sort keeps the provider's id order among equal priorities.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PriorityScore > filtered[j].PriorityScore
	})

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	writeJSON(w, r, http.StatusOK, dto.ListAttractionsResponse{
		Success:     true,
		City:        canonical,
		Count:       len(filtered),
		Attractions: filtered,
	})
}

// Get returns a single attraction by id.
func (h *AttractionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	attr, ok := h.Ref.LookupAttraction(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Attraction not found")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AttractionDetailResponse{
		Success:    true,
		Attraction: dto.FromAttraction(attr),
	})
}
