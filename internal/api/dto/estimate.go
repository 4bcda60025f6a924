package dto

import "itinerary-optimizer-service/internal/services"

// TrafficEstimateRequest carries the GET /api/traffic-estimate parameters
// after query parsing.
type TrafficEstimateRequest struct {
	OriginLat float64
	OriginLon float64
	DestLat   float64
	DestLon   float64
	City      string
	Hour      int
	DayType   string
	Month     int
}

// Validate returns an error message for invalid input, or "" when valid.
func (r *TrafficEstimateRequest) Validate() string {
	if r.City == "" {
		return "city is required"
	}
	if r.Hour < 0 || r.Hour > 23 {
		return "hour must be between 0 and 23"
	}
	if r.DayType != "weekday" && r.DayType != "weekend" {
		return "day_type must be weekday or weekend"
	}
	if r.Month < 1 || r.Month > 12 {
		return "month must be between 1 and 12"
	}
	return ""
}

// TrafficEstimateResponse is the GET /api/traffic-estimate output.
type TrafficEstimateResponse struct {
	Success bool `json:"success"`
	Cached  bool `json:"_cached"`
	services.TravelEstimate
}

// WeatherHour is one hour of the weather profile.
type WeatherHour struct {
	Hour                int     `json:"hour"`
	TemperatureC        float64 `json:"temperature_c"`
	HeatDiscomfortIndex float64 `json:"heat_discomfort_index"`
}

// WeatherEstimateResponse is the GET /api/weather-estimate output. Hour is
// set for single-hour queries, Hours for the 24-hour profile.
type WeatherEstimateResponse struct {
	Success             bool          `json:"success"`
	City                string        `json:"city"`
	Month               int           `json:"month"`
	Hour                *int          `json:"hour,omitempty"`
	TemperatureC        *float64      `json:"temperature_c,omitempty"`
	HeatDiscomfortIndex *float64      `json:"heat_discomfort_index,omitempty"`
	Hours               []WeatherHour `json:"hours,omitempty"`
}
