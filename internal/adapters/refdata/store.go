package refdata

import (
	"sort"
	"strings"

	"itinerary-optimizer-service/internal/domain"
	"itinerary-optimizer-service/internal/ports"
)

// Fallback values for cells missing from the baseline tables. These silently
// shape every estimate for unmodeled zone/hour combinations, so they must
// stay aligned with the documented lookup contract.
const (
	fallbackZone           = "Central"
	defaultCongestion      = 0.3
	defaultTemperatureC    = 20.0
	defaultHeatDiscomfort  = 0.0
	defaultSeasonalFactor  = 1.0
	defaultEventMultiplier = 1.0
)

type trafficKey struct {
	city    string
	zone    string
	dayType string
	hour    int
}

type weatherKey struct {
	city  string
	month int
	hour  int
}

// Dataset is the raw reference data a Store is built from.
type Dataset struct {
	Attractions []domain.Attraction
	Congestion  []domain.CongestionEntry
	Weather     []domain.WeatherEntry
	Zones       []domain.TrafficZone
	Venues      []domain.VenueEvent
	Seasonal    map[int]float64
}

// Store is an immutable in-memory implementation of ports.ReferenceData.
// Built once at startup and shared read-only across concurrent optimizations;
// no method mutates state after New returns.
type Store struct {
	attractions map[string]*domain.Attraction
	byCity      map[string][]*domain.Attraction
	traffic     map[trafficKey]float64
	weather     map[weatherKey]ports.WeatherConditions
	zones       map[string][]domain.TrafficZone
	venues      []domain.VenueEvent
	seasonal    map[int]float64
}

var _ ports.ReferenceData = (*Store)(nil)

// New builds a Store from raw reference data.
func New(data Dataset) *Store {
	s := &Store{
		attractions: make(map[string]*domain.Attraction, len(data.Attractions)),
		byCity:      make(map[string][]*domain.Attraction),
		traffic:     make(map[trafficKey]float64, len(data.Congestion)),
		weather:     make(map[weatherKey]ports.WeatherConditions, len(data.Weather)),
		zones:       make(map[string][]domain.TrafficZone),
		venues:      data.Venues,
		seasonal:    make(map[int]float64, len(data.Seasonal)),
	}

	for i := range data.Attractions {
		a := data.Attractions[i]
		s.attractions[a.ID] = &a
		city := strings.ToLower(a.City)
		s.byCity[city] = append(s.byCity[city], &a)
	}
	// Stable listing order regardless of input file order.
	for _, attrs := range s.byCity {
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].ID < attrs[j].ID })
	}

	for _, e := range data.Congestion {
		s.traffic[trafficKey{strings.ToLower(e.City), e.Zone, e.DayType, e.Hour}] = e.Index
	}
	for _, e := range data.Weather {
		s.weather[weatherKey{strings.ToLower(e.City), e.Month, e.Hour}] = ports.WeatherConditions{
			TemperatureC:   e.TemperatureC,
			HeatDiscomfort: e.HeatDiscomfort,
		}
	}
	for _, z := range data.Zones {
		city := strings.ToLower(z.City)
		s.zones[city] = append(s.zones[city], z)
	}
	for m, f := range data.Seasonal {
		s.seasonal[m] = f
	}

	return s
}

// LookupAttraction returns the attraction for id, or false when unknown.
func (s *Store) LookupAttraction(id string) (*domain.Attraction, bool) {
	a, ok := s.attractions[id]
	return a, ok
}

// AttractionsByCity returns every attraction in the city, ordered by id.
func (s *Store) AttractionsByCity(city string) []*domain.Attraction {
	return s.byCity[strings.ToLower(city)]
}

// Len returns the number of loaded attractions.
func (s *Store) Len() int { return len(s.attractions) }

// CongestionIndex returns the congestion index for the cell, falling back to
// the city's Central zone, then to the hardcoded default.
func (s *Store) CongestionIndex(city, zone, dayType string, hour int) float64 {
	cityLower := strings.ToLower(city)
	hour = ((hour % 24) + 24) % 24

	if v, ok := s.traffic[trafficKey{cityLower, zone, dayType, hour}]; ok {
		return v
	}
	if v, ok := s.traffic[trafficKey{cityLower, fallbackZone, dayType, hour}]; ok {
		return v
	}
	return defaultCongestion
}

// Weather returns the weather cell, or the mild default when missing.
func (s *Store) Weather(city string, month, hour int) ports.WeatherConditions {
	hour = ((hour % 24) + 24) % 24
	if v, ok := s.weather[weatherKey{strings.ToLower(city), month, hour}]; ok {
		return v
	}
	return ports.WeatherConditions{TemperatureC: defaultTemperatureC, HeatDiscomfort: defaultHeatDiscomfort}
}

// ClassifyZone returns the nearest zone whose radius contains the point,
// or Central when no zone does.
func (s *Store) ClassifyZone(city string, lat, lon float64) string {
	point := domain.Coordinates{Lat: lat, Lon: lon}

	best := fallbackZone
	bestDist := -1.0
	for _, z := range s.zones[strings.ToLower(city)] {
		dist := domain.HaversineKm(point, z.Center)
		if dist < z.RadiusKm && (bestDist < 0 || dist < bestDist) {
			bestDist = dist
			best = z.Zone
		}
	}
	return best
}

// EventMultiplier returns the maximum multiplier of venue events affecting
// the zone on the named weekday; matches never compound.
func (s *Store) EventMultiplier(city, zone, dayName string) float64 {
	cityLower := strings.ToLower(city)

	max := defaultEventMultiplier
	for _, v := range s.venues {
		if strings.ToLower(v.City) != cityLower || v.AffectedZone != zone {
			continue
		}
		for _, d := range v.TypicalEventDays {
			if d == dayName && v.CongestionMultiplier > max {
				max = v.CongestionMultiplier
			}
		}
	}
	return max
}

// SeasonalMultiplier returns the month's congestion factor (1.0 default).
func (s *Store) SeasonalMultiplier(month int) float64 {
	if f, ok := s.seasonal[month]; ok {
		return f
	}
	return defaultSeasonalFactor
}
