package ports

import "itinerary-optimizer-service/internal/domain"

// WeatherConditions is the weather baseline value for a (city, month, hour) cell.
type WeatherConditions struct {
	TemperatureC   float64
	HeatDiscomfort float64
}

// Port: read-only reference data the engine consumes.
//
// All lookups are in-memory and must never fail: missing cells resolve through
// documented fallbacks (congestion -> city "Central" zone -> 0.3; weather ->
// 20.0C / 0.0 discomfort; seasonal -> 1.0; zone -> "Central"). Implementations
// must be safe for concurrent readers.
type ReferenceData interface {
	// LookupAttraction returns the attraction for id, or false when unknown.
	LookupAttraction(id string) (*domain.Attraction, bool)

	// AttractionsByCity returns every attraction in the city (any casing).
	AttractionsByCity(city string) []*domain.Attraction

	// CongestionIndex returns the congestion index in [0,1] for the cell,
	// applying the zone and default fallbacks.
	CongestionIndex(city, zone, dayType string, hour int) float64

	// Weather returns temperature and heat discomfort for the cell.
	Weather(city string, month, hour int) WeatherConditions

	// ClassifyZone returns the name of the nearest zone whose radius contains
	// the point, or "Central" when no zone does.
	ClassifyZone(city string, lat, lon float64) string

	// EventMultiplier returns the maximum congestion multiplier (>= 1.0) of
	// venue events affecting the zone on the named weekday.
	EventMultiplier(city, zone, dayName string) float64

	// SeasonalMultiplier returns the month's congestion factor (1.0 default).
	SeasonalMultiplier(month int) float64
}
