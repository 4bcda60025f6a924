package services

import (
	"math"

	"itinerary-optimizer-service/internal/domain"
	"itinerary-optimizer-service/internal/ports"
)

// Weight profiles by preference mode. Each profile sums to 1.0, so a leg's
// total score stays in [0,1] under normal inputs.
type scoreWeights struct {
	traffic    float64
	heat       float64
	crowd      float64
	volatility float64
}

var weightProfiles = map[string]scoreWeights{
	"balanced": {traffic: 0.40, heat: 0.20, crowd: 0.20, volatility: 0.20},
	"comfort":  {traffic: 0.25, heat: 0.35, crowd: 0.25, volatility: 0.15},
	"fastest":  {traffic: 0.55, heat: 0.10, crowd: 0.15, volatility: 0.20},
}

// CrowdFactor estimates crowding (0-1) at an attraction for an arrival hour.
// Time-of-day context sets the base level; popularity blends in 70/30.
func CrowdFactor(attr *domain.Attraction, arrivalHour int) float64 {
	var base float64
	switch {
	case attr.IsPeakHour(arrivalHour):
		base = 0.85
	case attr.IdealTimeStart <= arrivalHour && arrivalHour <= attr.IdealTimeEnd:
		base = 0.40
	default:
		// Outside operating hours or very early/late.
		base = 0.15
	}

	popularity := math.Min(attr.PriorityScore/10.0, 1.0)

	crowd := base*0.7 + popularity*0.3
	return round3(math.Min(crowd, 1.0))
}

// TrafficVolatility estimates traffic unpredictability (0-1) for a departure
// hour. Rush hours are volatile; off-peak is predictable. Higher congestion
// adds volatility on top of the hour band.
func TrafficVolatility(trafficIndex float64, hour int) float64 {
	var base float64
	switch {
	case (7 <= hour && hour <= 9) || (17 <= hour && hour <= 20):
		base = 0.6
	case 10 <= hour && hour <= 16:
		base = 0.3
	default:
		base = 0.15
	}

	return round3(math.Min(base+trafficIndex*0.4, 1.0))
}

// HeatImpact scales the weather discomfort index by the destination's heat
// sensitivity: full weight for heat-sensitive or outdoor attractions, 20% for
// indoor, 50% otherwise (landmarks, markets).
func HeatImpact(ref ports.ReferenceData, city string, month, hour int, attr *domain.Attraction) float64 {
	discomfort := ref.Weather(city, month, hour).HeatDiscomfort

	switch {
	case attr.HeatSensitive || attr.Category == "outdoor":
		return discomfort
	case attr.Category == "indoor":
		return discomfort * 0.2
	default:
		return discomfort * 0.5
	}
}

// ScoreLeg combines the four raw signals into a weighted leg score.
// Unknown preference modes fall back to balanced.
func ScoreLeg(trafficIndex, heatImpact, crowdFactor, trafficVolatility float64, preferenceMode string) domain.LegScore {
	w, ok := weightProfiles[preferenceMode]
	if !ok {
		w = weightProfiles["balanced"]
	}

	total := w.traffic*trafficIndex +
		w.heat*heatImpact +
		w.crowd*crowdFactor +
		w.volatility*trafficVolatility

	return domain.LegScore{
		TotalScore:          round4(total),
		TrafficComponent:    round4(w.traffic * trafficIndex),
		HeatComponent:       round4(w.heat * heatImpact),
		CrowdComponent:      round4(w.crowd * crowdFactor),
		VolatilityComponent: round4(w.volatility * trafficVolatility),
		RawTraffic:          round3(trafficIndex),
		RawHeat:             round3(heatImpact),
		RawCrowd:            round3(crowdFactor),
		RawVolatility:       round3(trafficVolatility),
	}
}

// ScoreItinerary aggregates leg scores. The summed total is the ranking key;
// avg/max/min and per-component sums are diagnostics.
func ScoreItinerary(legScores []domain.LegScore) domain.ItineraryScore {
	if len(legScores) == 0 {
		return domain.ItineraryScore{}
	}

	var sum, max, min float64
	min = math.Inf(1)
	var components domain.ScoreComponents

	for _, s := range legScores {
		sum += s.TotalScore
		max = math.Max(max, s.TotalScore)
		min = math.Min(min, s.TotalScore)
		components.Traffic += s.TrafficComponent
		components.Heat += s.HeatComponent
		components.Crowd += s.CrowdComponent
		components.Volatility += s.VolatilityComponent
	}

	return domain.ItineraryScore{
		TotalScore: round4(sum),
		AvgScore:   round4(sum / float64(len(legScores))),
		MaxScore:   round4(max),
		MinScore:   round4(min),
		Legs:       len(legScores),
		Components: domain.ScoreComponents{
			Traffic:    round4(components.Traffic),
			Heat:       round4(components.Heat),
			Crowd:      round4(components.Crowd),
			Volatility: round4(components.Volatility),
		},
	}
}
