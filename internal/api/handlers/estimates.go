package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"itinerary-optimizer-service/internal/adapters/cache"
	"itinerary-optimizer-service/internal/api/dto"
	"itinerary-optimizer-service/internal/domain"
	"itinerary-optimizer-service/internal/ports"
	"itinerary-optimizer-service/internal/services"
)

type EstimateHandler struct {
	Ref   ports.ReferenceData
	Cache ports.ResultCache
}

// TrafficEstimate exposes the travel-time estimator for a single point pair.
func (h *EstimateHandler) TrafficEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := dto.TrafficEstimateRequest{
		City:    strings.TrimSpace(q.Get("city")),
		Hour:    12,
		DayType: "weekday",
		Month:   6,
	}

	var err error
	if req.OriginLat, err = parseFloatParam(q.Get("origin_lat")); err != nil {
		writeError(w, r, http.StatusBadRequest, "origin_lat must be a number")
		return
	}
	if req.OriginLon, err = parseFloatParam(q.Get("origin_lon")); err != nil {
		writeError(w, r, http.StatusBadRequest, "origin_lon must be a number")
		return
	}
	if req.DestLat, err = parseFloatParam(q.Get("dest_lat")); err != nil {
		writeError(w, r, http.StatusBadRequest, "dest_lat must be a number")
		return
	}
	if req.DestLon, err = parseFloatParam(q.Get("dest_lon")); err != nil {
		writeError(w, r, http.StatusBadRequest, "dest_lon must be a number")
		return
	}
	if raw := q.Get("hour"); raw != "" {
		if req.Hour, err = strconv.Atoi(raw); err != nil {
			writeError(w, r, http.StatusBadRequest, "hour must be an integer")
			return
		}
	}
	if raw := q.Get("day_type"); raw != "" {
		req.DayType = raw
	}
	if raw := q.Get("month"); raw != "" {
		if req.Month, err = strconv.Atoi(raw); err != nil {
			writeError(w, r, http.StatusBadRequest, "month must be an integer")
			return
		}
	}

	if msg := req.Validate(); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	key := cache.TrafficKey(
		req.OriginLat, req.OriginLon, req.DestLat, req.DestLon,
		req.City, req.Hour, req.DayType, req.Month,
	)
	if payload, found, err := h.Cache.Get(r.Context(), key); err == nil && found {
		var cached map[string]any
		if err := json.Unmarshal(payload, &cached); err == nil {
			cached["_cached"] = true
			writeJSON(w, r, http.StatusOK, cached)
			return
		}
	}

	estimate := services.EstimateTravelTime(
		h.Ref,
		domain.Coordinates{Lat: req.OriginLat, Lon: req.OriginLon},
		domain.Coordinates{Lat: req.DestLat, Lon: req.DestLon},
		req.City, req.Hour, req.DayType, req.Month,
	)

	res := dto.TrafficEstimateResponse{Success: true, TravelEstimate: estimate}
	if payload, err := json.Marshal(res); err == nil {
		if err := h.Cache.Set(r.Context(), key, payload, 0); err != nil {
			log.Printf("cache set failed: key=%s err=%v", key, err)
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

// supportedCities gates the weather endpoint, which reads baseline tables
// that exist only for these cities.
var supportedCities = []string{"madrid", "barcelona", "seville"}

// WeatherEstimate returns the heat baseline for a single hour, or the full
// 24-hour profile when no hour is given.
func (h *EstimateHandler) WeatherEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	city := strings.ToLower(strings.TrimSpace(q.Get("city")))
	supported := false
	for _, c := range supportedCities {
		if city == c {
			supported = true
			break
		}
	}
	if !supported {
		writeError(w, r, http.StatusBadRequest, "city must be one of: madrid, barcelona, seville")
		return
	}

	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "month must be an integer")
		return
	}
	if month < 1 || month > 12 {
		writeError(w, r, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	res := dto.WeatherEstimateResponse{Success: true, City: city, Month: month}

	if raw := q.Get("hour"); raw != "" {
		hour, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "hour must be an integer")
			return
		}

		weather := h.Ref.Weather(city, month, hour)
		res.Hour = &hour
		res.TemperatureC = &weather.TemperatureC
		res.HeatDiscomfortIndex = &weather.HeatDiscomfort
		writeJSON(w, r, http.StatusOK, res)
		return
	}

	res.Hours = make([]dto.WeatherHour, 0, 24)
	for hour := 0; hour < 24; hour++ {
		weather := h.Ref.Weather(city, month, hour)
		res.Hours = append(res.Hours, dto.WeatherHour{
			Hour:                hour,
			TemperatureC:        weather.TemperatureC,
			HeatDiscomfortIndex: weather.HeatDiscomfort,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func parseFloatParam(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
