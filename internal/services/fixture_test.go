package services

import (
	"itinerary-optimizer-service/internal/adapters/refdata"
	"itinerary-optimizer-service/internal/domain"
)

// newTestStore builds a small but realistic Madrid/Seville dataset shared by
// the engine tests. Cells not listed resolve through the provider fallbacks.
func newTestStore() *refdata.Store {
	attractions := []domain.Attraction{
		{
			ID: "prado", Name: "Prado Museum", City: "Madrid",
			Latitude: 40.4138, Longitude: -3.6921, Category: "indoor",
			AverageVisitDuration: 120, IdealTimeStart: 10, IdealTimeEnd: 18,
			PeakHours: []int{11, 12, 16}, PriorityScore: 9.5,
		},
		{
			ID: "retiro", Name: "Retiro Park", City: "Madrid",
			Latitude: 40.4153, Longitude: -3.6844, Category: "outdoor",
			HeatSensitive:        true,
			AverageVisitDuration: 90, IdealTimeStart: 8, IdealTimeEnd: 20,
			PeakHours: []int{17, 18}, PriorityScore: 8.0,
		},
		{
			ID: "royal", Name: "Royal Palace", City: "Madrid",
			Latitude: 40.4180, Longitude: -3.7143, Category: "landmark",
			AverageVisitDuration: 90, IdealTimeStart: 10, IdealTimeEnd: 17,
			PeakHours: []int{10, 11}, PriorityScore: 9.0,
		},
		{
			ID: "mercado", Name: "Mercado San Miguel", City: "Madrid",
			Latitude: 40.4154, Longitude: -3.7090, Category: "market",
			AverageVisitDuration: 45, IdealTimeStart: 9, IdealTimeEnd: 15,
			PeakHours: []int{13, 14}, PriorityScore: 7.0,
		},
		{
			ID: "templo", Name: "Templo de Debod", City: "Madrid",
			Latitude: 40.4240, Longitude: -3.7178, Category: "outdoor",
			AverageVisitDuration: 30, IdealTimeStart: 17, IdealTimeEnd: 21,
			PeakHours: []int{19, 20}, PriorityScore: 6.5,
		},
		{
			ID: "catedral", Name: "Almudena Cathedral", City: "Madrid",
			Latitude: 40.4156, Longitude: -3.7145, Category: "indoor",
			AverageVisitDuration: 40, IdealTimeStart: 10, IdealTimeEnd: 18,
			PeakHours: []int{12}, PriorityScore: 7.5,
		},
		{
			ID: "granvia", Name: "Gran Via", City: "Madrid",
			Latitude: 40.4203, Longitude: -3.7058, Category: "landmark",
			AverageVisitDuration: 60, IdealTimeStart: 10, IdealTimeEnd: 21,
			PeakHours: []int{18, 19}, PriorityScore: 8.5,
		},
		{
			ID: "casacampo", Name: "Casa de Campo", City: "Madrid",
			Latitude: 40.4189, Longitude: -3.7327, Category: "outdoor",
			AverageVisitDuration: 75, IdealTimeStart: 8, IdealTimeEnd: 20,
			PeakHours: []int{11, 12}, PriorityScore: 6.0,
		},
		{
			ID: "alcazar", Name: "Real Alcazar", City: "Seville",
			Latitude: 37.3831, Longitude: -5.9901, Category: "outdoor",
			HeatSensitive:        true,
			AverageVisitDuration: 90, IdealTimeStart: 9, IdealTimeEnd: 18,
			PeakHours: []int{11, 12}, PriorityScore: 9.2,
		},
	}

	congestion := []domain.CongestionEntry{
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 8, Index: 0.85},
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 9, Index: 0.75},
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 10, Index: 0.55},
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 11, Index: 0.50},
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 12, Index: 0.50},
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 13, Index: 0.48},
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 14, Index: 0.52},
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 15, Index: 0.55},
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 16, Index: 0.60},
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 17, Index: 0.82},
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 18, Index: 0.88},
		{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 22, Index: 0.15},
		{City: "Madrid", Zone: "Retiro", DayType: "weekday", Hour: 8, Index: 0.60},
		{City: "Madrid", Zone: "Retiro", DayType: "weekday", Hour: 9, Index: 0.55},
	}

	weather := []domain.WeatherEntry{
		{City: "Madrid", Month: 7, Hour: 10, TemperatureC: 30, HeatDiscomfort: 0.45},
		{City: "Madrid", Month: 7, Hour: 12, TemperatureC: 34, HeatDiscomfort: 0.60},
		{City: "Madrid", Month: 7, Hour: 14, TemperatureC: 37, HeatDiscomfort: 0.80},
		{City: "Madrid", Month: 7, Hour: 16, TemperatureC: 36, HeatDiscomfort: 0.75},
		{City: "Seville", Month: 8, Hour: 14, TemperatureC: 40, HeatDiscomfort: 0.95},
	}

	zones := []domain.TrafficZone{
		{City: "Madrid", Zone: "Central", Center: domain.Coordinates{Lat: 40.4168, Lon: -3.7038}, RadiusKm: 3.0},
		{City: "Madrid", Zone: "Retiro", Center: domain.Coordinates{Lat: 40.4153, Lon: -3.6844}, RadiusKm: 1.5},
	}

	venues := []domain.VenueEvent{
		{
			City: "Madrid", VenueName: "Las Ventas", AffectedZone: "Central",
			TypicalEventDays:     []string{"Tuesday", "Saturday"},
			CongestionMultiplier: 1.5,
		},
	}

	return refdata.New(refdata.Dataset{
		Attractions: attractions,
		Congestion:  congestion,
		Weather:     weather,
		Zones:       zones,
		Venues:      venues,
		Seasonal:    map[int]float64{7: 1.1, 8: 1.15},
	})
}
