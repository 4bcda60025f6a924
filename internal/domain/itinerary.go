package domain

import "time"

// LegScore is the four-component stress breakdown for a single leg.
// Component scores carry the preference-mode weights; raw signals do not.
type LegScore struct {
	TotalScore          float64 `json:"total_score"`
	TrafficComponent    float64 `json:"traffic_component"`
	HeatComponent       float64 `json:"heat_component"`
	CrowdComponent      float64 `json:"crowd_component"`
	VolatilityComponent float64 `json:"volatility_component"`
	RawTraffic          float64 `json:"raw_traffic"`
	RawHeat             float64 `json:"raw_heat"`
	RawCrowd            float64 `json:"raw_crowd"`
	RawVolatility       float64 `json:"raw_volatility"`
}

// ScoreComponents holds per-component sums across an itinerary.
type ScoreComponents struct {
	Traffic    float64 `json:"traffic"`
	Heat       float64 `json:"heat"`
	Crowd      float64 `json:"crowd"`
	Volatility float64 `json:"volatility"`
}

// ItineraryScore aggregates leg scores. TotalScore is the ranking key;
// the remaining fields are diagnostics.
type ItineraryScore struct {
	TotalScore float64         `json:"total_score"`
	AvgScore   float64         `json:"avg_score"`
	MaxScore   float64         `json:"max_score"`
	MinScore   float64         `json:"min_score"`
	Legs       int             `json:"legs"`
	Components ScoreComponents `json:"components"`
}

// ItineraryLeg is one travel segment plus the visit at its destination.
// Legs are transient simulation output: each candidate ordering produces a
// fresh list and only the winner's legs survive the optimization.
type ItineraryLeg struct {
	AttractionID      string
	AttractionName    string
	TravelFrom        string
	TravelStart       time.Time
	TravelEnd         time.Time
	TravelDurationMin float64
	TravelDistanceKm  float64
	VisitStart        time.Time
	VisitEnd          time.Time
	VisitDurationMin  float64
	ImpactScore       LegScore
}

// RouteStop is one entry of the winning ordered route (1-based rank).
type RouteStop struct {
	Order        int    `json:"order"`
	AttractionID string `json:"attraction_id"`
	Name         string `json:"name"`
}

// CandidateSummary records one evaluated ordering for diagnostics and
// explanation generation.
type CandidateSummary struct {
	Permutation []string `json:"permutation"`
	TotalScore  float64  `json:"total_score"`
	AvgScore    float64  `json:"avg_score"`
}

// OptimizationResult is the only artifact that survives an optimization call.
type OptimizationResult struct {
	OrderedRoute          []RouteStop
	Timeline              []ItineraryLeg
	TotalTravelTimeMin    float64
	TotalVisitTimeMin     float64
	TotalImpactScore      float64
	ImpactBreakdown       ItineraryScore
	ItineraryStart        string // HH:MM
	ItineraryEnd          string // HH:MM
	PermutationsEvaluated int
	ComputationTimeMs     float64
	Explanation           string
	Warnings              []string
	// AllScores ranks every evaluated candidate ascending by total score.
	// Retained for diagnostics within the request; not persisted.
	AllScores []CandidateSummary
}
