package domain

// Represents a single point of interest a visitor can add to an itinerary.
// Attractions are immutable reference data: created once at data-load time,
// never mutated, and shared read-only across concurrent optimizations.
type Attraction struct {
	ID                   string
	Name                 string
	NameES               string
	City                 string
	Latitude             float64
	Longitude            float64
	Category             string
	Zone                 string
	AverageVisitDuration int
	IdealTimeStart       int
	IdealTimeEnd         int
	PeakHours            []int
	HeatSensitive        bool
	SunsetSensitive      bool
	PriorityScore        float64
	Description          string
	OpeningHours         string
	Fee                  string
}

// Coordinates returns the attraction's location.
func (a *Attraction) Coordinates() Coordinates {
	return Coordinates{Lat: a.Latitude, Lon: a.Longitude}
}

// IsPeakHour reports whether the given hour is one of the attraction's peak hours.
func (a *Attraction) IsPeakHour(hour int) bool {
	for _, h := range a.PeakHours {
		if h == hour {
			return true
		}
	}
	return false
}

// TrafficZone is a named catchment area inside a city, used to index
// congestion data by proximity.
type TrafficZone struct {
	City     string
	Zone     string
	Center   Coordinates
	RadiusKm float64
}

// CongestionEntry is one cell of the traffic baseline table:
// (city, zone, day type, hour) -> congestion index in [0,1].
type CongestionEntry struct {
	City    string
	Zone    string
	DayType string
	Hour    int
	Index   float64
}

// WeatherEntry is one cell of the weather baseline table:
// (city, month, hour) -> temperature and heat discomfort.
type WeatherEntry struct {
	City           string
	Month          int
	Hour           int
	TemperatureC   float64
	HeatDiscomfort float64
}

// VenueEvent boosts congestion in its affected zone on typical event days.
// Multiple matching events take the maximum multiplier, never compounded.
type VenueEvent struct {
	City                 string
	VenueName            string
	AffectedZone         string
	EventTypes           []string
	TypicalEventDays     []string
	CongestionMultiplier float64
}
