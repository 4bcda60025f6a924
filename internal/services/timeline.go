package services

import (
	"math"
	"time"

	"itinerary-optimizer-service/internal/domain"
	"itinerary-optimizer-service/internal/ports"
)

// startLocationName labels the implicit origin of every itinerary.
const startLocationName = "Start Location"

// SimulateTimeline walks one ordered sequence of attraction ids forward in
// time: travel phase, then visit phase, advancing the clock through both.
//
// Unknown attraction ids are skipped silently, so the result may have fewer
// legs than requested ids; callers treat that as degraded-but-valid output.
// The function is pure given its inputs and the provider's immutable tables,
// which is what makes parallel evaluation of independent orderings safe.
func SimulateTimeline(
	ref ports.ReferenceData,
	start domain.Coordinates,
	attractionIDs []string,
	city string,
	date time.Time,
	startHour int,
	preferenceMode string,
) ([]domain.ItineraryLeg, domain.ItineraryScore) {
	month := int(date.Month())
	dayName := date.Weekday().String()
	dayType := "weekday"
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		dayType = "weekend"
	}

	currentTime := time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, date.Location())
	currentPos := start
	currentName := startLocationName

	legs := make([]domain.ItineraryLeg, 0, len(attractionIDs))
	legScores := make([]domain.LegScore, 0, len(attractionIDs))

	for _, id := range attractionIDs {
		attr, ok := ref.LookupAttraction(id)
		if !ok {
			continue
		}

		// Travel phase.
		departureHour := currentTime.Hour()
		travel := EstimateTravelTime(ref, currentPos, attr.Coordinates(), city, departureHour, dayType, month)

		leg := domain.ItineraryLeg{
			AttractionID:      id,
			AttractionName:    attr.Name,
			TravelFrom:        currentName,
			TravelStart:       currentTime,
			TravelDurationMin: travel.DurationMinutes,
			TravelDistanceKm:  travel.DistanceKm,
		}
		leg.TravelEnd = currentTime.Add(minutes(travel.DurationMinutes))

		// Visit phase: fixed average duration, no variability.
		leg.VisitStart = leg.TravelEnd
		leg.VisitDurationMin = float64(attr.AverageVisitDuration)
		leg.VisitEnd = leg.VisitStart.Add(minutes(leg.VisitDurationMin))

		// Raw signals: heat and crowd use the arrival hour, volatility the
		// departure hour combined with the travel congestion.
		arrivalHour := leg.VisitStart.Hour()
		trafficIndex := travel.TrafficIndex
		heatImpact := HeatImpact(ref, city, month, arrivalHour, attr)
		crowdFactor := CrowdFactor(attr, arrivalHour)
		trafficVol := TrafficVolatility(trafficIndex, departureHour)

		// Venue events boost both traffic intensity and its unpredictability.
		if mult := ref.EventMultiplier(city, travel.DestZone, dayName); mult > 1.0 {
			trafficIndex = math.Min(trafficIndex*mult, 1.0)
			trafficVol = math.Min(trafficVol*1.2, 1.0)
		}

		leg.ImpactScore = ScoreLeg(trafficIndex, heatImpact, crowdFactor, trafficVol, preferenceMode)
		legScores = append(legScores, leg.ImpactScore)

		currentTime = leg.VisitEnd
		currentPos = attr.Coordinates()
		currentName = attr.Name
		legs = append(legs, leg)
	}

	return legs, ScoreItinerary(legScores)
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
