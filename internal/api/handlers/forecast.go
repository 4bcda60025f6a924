package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"itinerary-optimizer-service/internal/adapters/forecast"
)

// ForecastProvider is the subset of the OpenWeather client the handler needs.
type ForecastProvider interface {
	GeocodePlace(ctx context.Context, place, cityHint string) (forecast.GeocodeResult, error)
	BestTime(ctx context.Context, lat, lon float64, hoursAhead int, label string) (*forecast.BestTimeReport, error)
}

type ForecastHandler struct {
	Provider ForecastProvider
}

// BestTime finds the most and least comfortable forecast slots near a place
// or coordinate pair. Runs only when an OpenWeather key is configured.
func (h *ForecastHandler) BestTime(w http.ResponseWriter, r *http.Request) {
	if h.Provider == nil {
		writeError(w, r, http.StatusServiceUnavailable, "forecast service not configured")
		return
	}

	q := r.URL.Query()

	hoursAhead := 24
	if raw := q.Get("hours_ahead"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "hours_ahead must be an integer")
			return
		}
		hoursAhead = parsed
	}

	var lat, lon float64
	var label string

	place := strings.TrimSpace(q.Get("place"))
	if place != "" {
		located, err := h.Provider.GeocodePlace(r.Context(), place, q.Get("city"))
		if err != nil {
			log.Printf("geocode failed: place=%q err=%v", place, err)
			writeError(w, r, http.StatusBadGateway, "could not resolve place")
			return
		}
		lat, lon, label = located.Lat, located.Lon, located.Label
	} else {
		var err error
		if lat, err = parseFloatParam(q.Get("lat")); err != nil {
			writeError(w, r, http.StatusBadRequest, "lat must be a number")
			return
		}
		if lon, err = parseFloatParam(q.Get("lon")); err != nil {
			writeError(w, r, http.StatusBadRequest, "lon must be a number")
			return
		}
		if lat == 0 && lon == 0 {
			writeError(w, r, http.StatusBadRequest, "place or lat/lon is required")
			return
		}
	}

	report, err := h.Provider.BestTime(r.Context(), lat, lon, hoursAhead, label)
	if err != nil {
		log.Printf("forecast failed: lat=%v lon=%v err=%v", lat, lon, err)
		writeError(w, r, http.StatusBadGateway, "forecast service unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success":  true,
		"location": report.Location,
		"best":     report.Best,
		"worst":    report.Worst,
	})
}
