package dto

import (
	"fmt"
	"time"

	"itinerary-optimizer-service/internal/domain"
)

// OptimizeRequest is the POST /api/optimize input.
type OptimizeRequest struct {
	StartLatitude  float64  `json:"start_latitude"`
	StartLongitude float64  `json:"start_longitude"`
	Date           string   `json:"date"` // ISO format: "2025-07-15"
	AttractionIDs  []string `json:"attraction_ids"`
	PreferenceMode string   `json:"preference_mode"`
	StartHour      *int     `json:"start_hour"`
}

// Validate returns an error message for invalid input, or "" when valid.
// The id-count cap is enforced here at the boundary; the engine would
// truncate with a warning instead.
func (r *OptimizeRequest) Validate() string {
	if r.StartLatitude < -90 || r.StartLatitude > 90 {
		return "start_latitude must be between -90 and 90"
	}
	if r.StartLongitude < -180 || r.StartLongitude > 180 {
		return "start_longitude must be between -180 and 180"
	}
	if len(r.AttractionIDs) == 0 {
		return "attraction_ids must not be empty"
	}
	if len(r.AttractionIDs) > 7 {
		return "Maximum 7 attractions per itinerary"
	}
	switch r.PreferenceMode {
	case "comfort", "fastest", "balanced":
	default:
		return "preference_mode must be comfort, fastest, or balanced"
	}
	if r.StartHour != nil && (*r.StartHour < 0 || *r.StartHour > 23) {
		return "start_hour must be between 0 and 23"
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return "date must be in ISO format (YYYY-MM-DD)"
	}
	return ""
}

// LegResponse is one timeline entry of the optimized itinerary.
type LegResponse struct {
	AttractionID      string          `json:"attraction_id"`
	AttractionName    string          `json:"attraction_name"`
	TravelFrom        string          `json:"travel_from"`
	DepartureTime     string          `json:"departure_time"` // HH:MM
	ArrivalTime       string          `json:"arrival_time"`   // HH:MM
	TravelDurationMin float64         `json:"travel_duration_min"`
	TravelDistanceKm  float64         `json:"travel_distance_km"`
	VisitStart        string          `json:"visit_start"` // HH:MM
	VisitEnd          string          `json:"visit_end"`   // HH:MM
	VisitDurationMin  float64         `json:"visit_duration_min"`
	ImpactScore       domain.LegScore `json:"impact_score"`
}

// OptimizeResponse is the POST /api/optimize output.
type OptimizeResponse struct {
	Success               bool                      `json:"success"`
	City                  string                    `json:"city"`
	Cached                bool                      `json:"_cached"`
	OrderedRoute          []domain.RouteStop        `json:"ordered_route"`
	Timeline              []LegResponse             `json:"timeline"`
	TotalTravelTimeMin    float64                   `json:"total_travel_time_min"`
	TotalVisitTimeMin     float64                   `json:"total_visit_time_min"`
	TotalDurationMin      float64                   `json:"total_duration_min"`
	TotalImpactScore      float64                   `json:"total_impact_score"`
	ImpactBreakdown       domain.ItineraryScore     `json:"impact_breakdown"`
	ItineraryStart        string                    `json:"itinerary_start"`
	ItineraryEnd          string                    `json:"itinerary_end"`
	PermutationsEvaluated int                       `json:"permutations_evaluated"`
	ComputationTimeMs     float64                   `json:"computation_time_ms"`
	Explanation           string                    `json:"explanation"`
	Warnings              []string                  `json:"warnings,omitempty"`
	AllScores             []domain.CandidateSummary `json:"all_scores,omitempty"`
}

// FromOptimizationResult maps an engine result onto the response shape,
// flattening leg timestamps to HH:MM clock strings.
func FromOptimizationResult(result *domain.OptimizationResult, city string) OptimizeResponse {
	timeline := make([]LegResponse, 0, len(result.Timeline))
	for _, leg := range result.Timeline {
		timeline = append(timeline, LegResponse{
			AttractionID:      leg.AttractionID,
			AttractionName:    leg.AttractionName,
			TravelFrom:        leg.TravelFrom,
			DepartureTime:     clock(leg.TravelStart),
			ArrivalTime:       clock(leg.TravelEnd),
			TravelDurationMin: leg.TravelDurationMin,
			TravelDistanceKm:  leg.TravelDistanceKm,
			VisitStart:        clock(leg.VisitStart),
			VisitEnd:          clock(leg.VisitEnd),
			VisitDurationMin:  leg.VisitDurationMin,
			ImpactScore:       leg.ImpactScore,
		})
	}

	return OptimizeResponse{
		Success:               true,
		City:                  city,
		OrderedRoute:          result.OrderedRoute,
		Timeline:              timeline,
		TotalTravelTimeMin:    result.TotalTravelTimeMin,
		TotalVisitTimeMin:     result.TotalVisitTimeMin,
		TotalDurationMin:      result.TotalTravelTimeMin + result.TotalVisitTimeMin,
		TotalImpactScore:      result.TotalImpactScore,
		ImpactBreakdown:       result.ImpactBreakdown,
		ItineraryStart:        result.ItineraryStart,
		ItineraryEnd:          result.ItineraryEnd,
		PermutationsEvaluated: result.PermutationsEvaluated,
		ComputationTimeMs:     result.ComputationTimeMs,
		Explanation:           result.Explanation,
		Warnings:              result.Warnings,
		AllScores:             result.AllScores,
	}
}

func clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
