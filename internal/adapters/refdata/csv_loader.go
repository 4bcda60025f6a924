package refdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"

	"itinerary-optimizer-service/internal/domain"
)

// CSV records map one-to-one onto the seed file headers. csvutil reads the
// header row and matches it against the csv tags, so headers must stay in
// sync with these structs.

type attractionRecord struct {
	ID                   string  `csv:"id"`
	Name                 string  `csv:"name"`
	NameES               string  `csv:"name_es"`
	City                 string  `csv:"city"`
	Latitude             float64 `csv:"latitude"`
	Longitude            float64 `csv:"longitude"`
	Category             string  `csv:"category"`
	Zone                 string  `csv:"zone"`
	AverageVisitDuration int     `csv:"average_visit_duration"`
	IdealTimeStart       int     `csv:"ideal_time_start"`
	IdealTimeEnd         int     `csv:"ideal_time_end"`
	PeakHoursJSON        string  `csv:"peak_hours_json"`
	HeatSensitive        string  `csv:"heat_sensitive"`
	SunsetSensitive      string  `csv:"sunset_sensitive"`
	PriorityScore        float64 `csv:"priority_score"`
	Description          string  `csv:"description,omitempty"`
	OpeningHours         string  `csv:"opening_hours,omitempty"`
	Fee                  string  `csv:"fee,omitempty"`
}

type trafficRecord struct {
	City    string  `csv:"city"`
	Zone    string  `csv:"zone"`
	DayType string  `csv:"day_type"`
	Hour    int     `csv:"hour"`
	Index   float64 `csv:"avg_traffic_index"`
}

type weatherRecord struct {
	City           string  `csv:"city"`
	Month          int     `csv:"month"`
	Hour           int     `csv:"hour"`
	TemperatureC   float64 `csv:"avg_temperature_c"`
	HeatDiscomfort float64 `csv:"heat_discomfort_index"`
}

type zoneRecord struct {
	City      string  `csv:"city"`
	Zone      string  `csv:"zone"`
	Latitude  float64 `csv:"center_latitude"`
	Longitude float64 `csv:"center_longitude"`
	RadiusKm  float64 `csv:"radius_km"`
}

type venueRecord struct {
	City                 string  `csv:"city"`
	VenueName            string  `csv:"venue_name"`
	AffectedZone         string  `csv:"affected_zone"`
	EventTypesJSON       string  `csv:"event_types"`
	TypicalEventDaysJSON string  `csv:"typical_event_days"`
	CongestionMultiplier float64 `csv:"congestion_multiplier"`
}

type seasonalRecord struct {
	Month      int     `csv:"month"`
	Multiplier float64 `csv:"seasonal_multiplier"`
}

// LoadDataset reads every reference table from dir. The seasonal table is
// optional and defaults to 1.0 per month when the file is absent.
func LoadDataset(dir string) (Dataset, error) {
	var data Dataset
	var err error

	data.Attractions, err = LoadAttractions(filepath.Join(dir, "attractions.csv"))
	if err != nil {
		return Dataset{}, fmt.Errorf("load dataset: %w", err)
	}

	data.Congestion, err = loadTraffic(filepath.Join(dir, "traffic_baseline.csv"))
	if err != nil {
		return Dataset{}, fmt.Errorf("load dataset: %w", err)
	}

	data.Weather, err = loadWeather(filepath.Join(dir, "weather_baseline.csv"))
	if err != nil {
		return Dataset{}, fmt.Errorf("load dataset: %w", err)
	}

	data.Zones, err = loadZones(filepath.Join(dir, "zone_definitions.csv"))
	if err != nil {
		return Dataset{}, fmt.Errorf("load dataset: %w", err)
	}

	data.Venues, err = loadVenues(filepath.Join(dir, "major_venues.csv"))
	if err != nil {
		return Dataset{}, fmt.Errorf("load dataset: %w", err)
	}

	data.Seasonal, err = loadSeasonal(filepath.Join(dir, "seasonal_adjustments.csv"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Dataset{}, fmt.Errorf("load dataset: %w", err)
		}
		data.Seasonal = nil
	}

	return data, nil
}

// LoadAttractions reads the attraction table from path.
func LoadAttractions(path string) ([]domain.Attraction, error) {
	var records []attractionRecord
	if err := unmarshalCSV(path, &records); err != nil {
		return nil, fmt.Errorf("load attractions: %w", err)
	}

	attractions := make([]domain.Attraction, 0, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.ID) == "" {
			return nil, fmt.Errorf("load attractions: row %d: id must be non-empty", i+1)
		}

		peakHours, err := parsePeakHours(r.PeakHoursJSON)
		if err != nil {
			return nil, fmt.Errorf("load attractions: row %d (%s): %w", i+1, r.ID, err)
		}

		attractions = append(attractions, domain.Attraction{
			ID:                   r.ID,
			Name:                 r.Name,
			NameES:               r.NameES,
			City:                 r.City,
			Latitude:             r.Latitude,
			Longitude:            r.Longitude,
			Category:             r.Category,
			Zone:                 r.Zone,
			AverageVisitDuration: r.AverageVisitDuration,
			IdealTimeStart:       r.IdealTimeStart,
			IdealTimeEnd:         r.IdealTimeEnd,
			PeakHours:            peakHours,
			HeatSensitive:        parseBoolish(r.HeatSensitive),
			SunsetSensitive:      parseBoolish(r.SunsetSensitive),
			PriorityScore:        r.PriorityScore,
			Description:          r.Description,
			OpeningHours:         r.OpeningHours,
			Fee:                  r.Fee,
		})
	}

	return attractions, nil
}

func loadTraffic(path string) ([]domain.CongestionEntry, error) {
	var records []trafficRecord
	if err := unmarshalCSV(path, &records); err != nil {
		return nil, fmt.Errorf("load traffic baseline: %w", err)
	}

	entries := make([]domain.CongestionEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, domain.CongestionEntry{
			City:    r.City,
			Zone:    r.Zone,
			DayType: r.DayType,
			Hour:    r.Hour,
			Index:   r.Index,
		})
	}
	return entries, nil
}

func loadWeather(path string) ([]domain.WeatherEntry, error) {
	var records []weatherRecord
	if err := unmarshalCSV(path, &records); err != nil {
		return nil, fmt.Errorf("load weather baseline: %w", err)
	}

	entries := make([]domain.WeatherEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, domain.WeatherEntry{
			City:           r.City,
			Month:          r.Month,
			Hour:           r.Hour,
			TemperatureC:   r.TemperatureC,
			HeatDiscomfort: r.HeatDiscomfort,
		})
	}
	return entries, nil
}

func loadZones(path string) ([]domain.TrafficZone, error) {
	var records []zoneRecord
	if err := unmarshalCSV(path, &records); err != nil {
		return nil, fmt.Errorf("load zone definitions: %w", err)
	}

	zones := make([]domain.TrafficZone, 0, len(records))
	for _, r := range records {
		zones = append(zones, domain.TrafficZone{
			City:     r.City,
			Zone:     r.Zone,
			Center:   domain.Coordinates{Lat: r.Latitude, Lon: r.Longitude},
			RadiusKm: r.RadiusKm,
		})
	}
	return zones, nil
}

func loadVenues(path string) ([]domain.VenueEvent, error) {
	var records []venueRecord
	if err := unmarshalCSV(path, &records); err != nil {
		return nil, fmt.Errorf("load major venues: %w", err)
	}

	venues := make([]domain.VenueEvent, 0, len(records))
	for i, r := range records {
		var eventTypes, eventDays []string
		if err := parseJSONList(r.EventTypesJSON, &eventTypes); err != nil {
			return nil, fmt.Errorf("load major venues: row %d (%s): event_types: %w", i+1, r.VenueName, err)
		}
		if err := parseJSONList(r.TypicalEventDaysJSON, &eventDays); err != nil {
			return nil, fmt.Errorf("load major venues: row %d (%s): typical_event_days: %w", i+1, r.VenueName, err)
		}

		venues = append(venues, domain.VenueEvent{
			City:                 r.City,
			VenueName:            r.VenueName,
			AffectedZone:         r.AffectedZone,
			EventTypes:           eventTypes,
			TypicalEventDays:     eventDays,
			CongestionMultiplier: r.CongestionMultiplier,
		})
	}
	return venues, nil
}

func loadSeasonal(path string) (map[int]float64, error) {
	var records []seasonalRecord
	if err := unmarshalCSV(path, &records); err != nil {
		return nil, fmt.Errorf("load seasonal adjustments: %w", err)
	}

	seasonal := make(map[int]float64, len(records))
	for _, r := range records {
		seasonal[r.Month] = r.Multiplier
	}
	return seasonal, nil
}

func unmarshalCSV(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}

	if err := csvutil.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %q: %w", path, err)
	}
	return nil
}

func parsePeakHours(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var hours []int
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil, fmt.Errorf("parse peak_hours_json %q: %w", raw, err)
	}
	return hours, nil
}

func parseJSONList(raw string, out *[]string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}

func parseBoolish(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
