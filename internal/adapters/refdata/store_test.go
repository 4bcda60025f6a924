package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary-optimizer-service/internal/domain"
)

func testDataset() Dataset {
	return Dataset{
		Attractions: []domain.Attraction{
			{ID: "prado", Name: "Prado Museum", City: "Madrid", Category: "indoor", Latitude: 40.4138, Longitude: -3.6921},
			{ID: "retiro", Name: "Retiro Park", City: "Madrid", Category: "outdoor", Latitude: 40.4153, Longitude: -3.6844},
			{ID: "sagrada", Name: "Sagrada Familia", City: "Barcelona", Category: "landmark", Latitude: 41.4036, Longitude: 2.1744},
		},
		Congestion: []domain.CongestionEntry{
			{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 8, Index: 0.8},
			{City: "Madrid", Zone: "Central", DayType: "weekday", Hour: 22, Index: 0.2},
			{City: "Madrid", Zone: "Retiro", DayType: "weekday", Hour: 8, Index: 0.6},
		},
		Weather: []domain.WeatherEntry{
			{City: "Madrid", Month: 7, Hour: 14, TemperatureC: 34, HeatDiscomfort: 0.8},
		},
		Zones: []domain.TrafficZone{
			{City: "Madrid", Zone: "Central", Center: domain.Coordinates{Lat: 40.4168, Lon: -3.7038}, RadiusKm: 2.0},
			{City: "Madrid", Zone: "Retiro", Center: domain.Coordinates{Lat: 40.4153, Lon: -3.6844}, RadiusKm: 1.5},
		},
		Venues: []domain.VenueEvent{
			{City: "Madrid", VenueName: "Bernabeu", AffectedZone: "Central", TypicalEventDays: []string{"Saturday"}, CongestionMultiplier: 1.4},
			{City: "Madrid", VenueName: "WiZink", AffectedZone: "Central", TypicalEventDays: []string{"Saturday", "Friday"}, CongestionMultiplier: 1.2},
		},
		Seasonal: map[int]float64{7: 1.1},
	}
}

func TestCongestionFallbackChain(t *testing.T) {
	s := New(testDataset())

	// Exact cell.
	assert.Equal(t, 0.6, s.CongestionIndex("Madrid", "Retiro", "weekday", 8))
	// Missing zone falls back to Central.
	assert.Equal(t, 0.8, s.CongestionIndex("madrid", "Salamanca", "weekday", 8))
	// Missing zone and missing Central cell falls back to the default.
	assert.Equal(t, 0.3, s.CongestionIndex("Madrid", "Salamanca", "weekend", 8))
	// Unknown city falls back to the default as well.
	assert.Equal(t, 0.3, s.CongestionIndex("Valencia", "Central", "weekday", 8))
}

func TestWeatherDefaults(t *testing.T) {
	s := New(testDataset())

	w := s.Weather("MADRID", 7, 14)
	assert.Equal(t, 34.0, w.TemperatureC)
	assert.Equal(t, 0.8, w.HeatDiscomfort)

	missing := s.Weather("Madrid", 1, 3)
	assert.Equal(t, 20.0, missing.TemperatureC)
	assert.Equal(t, 0.0, missing.HeatDiscomfort)
}

func TestClassifyZone(t *testing.T) {
	s := New(testDataset())

	// Point at the Retiro zone center: inside both zones, Retiro is nearer.
	assert.Equal(t, "Retiro", s.ClassifyZone("Madrid", 40.4153, -3.6844))
	// Point at the Central center.
	assert.Equal(t, "Central", s.ClassifyZone("Madrid", 40.4168, -3.7038))
	// Far away point is contained by no zone.
	assert.Equal(t, "Central", s.ClassifyZone("Madrid", 41.0, -3.0))
	// City without zone definitions.
	assert.Equal(t, "Central", s.ClassifyZone("Seville", 37.39, -5.99))
}

func TestEventMultiplierMaxOfMatches(t *testing.T) {
	s := New(testDataset())

	// Two venues match Saturday; the maximum wins, never a compound.
	assert.Equal(t, 1.4, s.EventMultiplier("Madrid", "Central", "Saturday"))
	assert.Equal(t, 1.2, s.EventMultiplier("Madrid", "Central", "Friday"))
	assert.Equal(t, 1.0, s.EventMultiplier("Madrid", "Central", "Tuesday"))
	assert.Equal(t, 1.0, s.EventMultiplier("Madrid", "Retiro", "Saturday"))
}

func TestSeasonalMultiplierDefault(t *testing.T) {
	s := New(testDataset())

	assert.Equal(t, 1.1, s.SeasonalMultiplier(7))
	assert.Equal(t, 1.0, s.SeasonalMultiplier(1))
}

func TestAttractionLookups(t *testing.T) {
	s := New(testDataset())

	a, ok := s.LookupAttraction("prado")
	require.True(t, ok)
	assert.Equal(t, "Prado Museum", a.Name)

	_, ok = s.LookupAttraction("nope")
	assert.False(t, ok)

	madrid := s.AttractionsByCity("madrid")
	require.Len(t, madrid, 2)
	// Ordered by id for stable listings.
	assert.Equal(t, "prado", madrid[0].ID)
	assert.Equal(t, "retiro", madrid[1].ID)

	assert.Equal(t, 3, s.Len())
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"attractions.csv": "id,name,name_es,city,latitude,longitude,category,zone,average_visit_duration,ideal_time_start,ideal_time_end,peak_hours_json,heat_sensitive,sunset_sensitive,priority_score,description,opening_hours,fee\n" +
			"prado,Prado Museum,Museo del Prado,Madrid,40.4138,-3.6921,indoor,Central,120,10,18,\"[11,12,16]\",false,false,9.5,Art museum,10:00-20:00,15 EUR\n",
		"traffic_baseline.csv": "city,zone,day_type,hour,avg_traffic_index\n" +
			"Madrid,Central,weekday,8,0.82\n",
		"weather_baseline.csv": "city,month,hour,avg_temperature_c,heat_discomfort_index\n" +
			"Madrid,7,14,34.5,0.85\n",
		"zone_definitions.csv": "city,zone,center_latitude,center_longitude,radius_km\n" +
			"Madrid,Central,40.4168,-3.7038,2.5\n",
		"major_venues.csv": "city,venue_name,affected_zone,event_types,typical_event_days,congestion_multiplier\n" +
			"Madrid,Santiago Bernabeu,Chamartin,\"[\"\"football\"\"]\",\"[\"\"Saturday\"\",\"\"Sunday\"\"]\",1.5\n",
		"seasonal_adjustments.csv": "month,seasonal_multiplier\n7,1.15\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	data, err := LoadDataset(dir)
	require.NoError(t, err)

	require.Len(t, data.Attractions, 1)
	a := data.Attractions[0]
	assert.Equal(t, "Prado Museum", a.Name)
	assert.Equal(t, []int{11, 12, 16}, a.PeakHours)
	assert.False(t, a.HeatSensitive)
	assert.Equal(t, 9.5, a.PriorityScore)

	require.Len(t, data.Venues, 1)
	assert.Equal(t, []string{"Saturday", "Sunday"}, data.Venues[0].TypicalEventDays)
	assert.Equal(t, 1.5, data.Venues[0].CongestionMultiplier)

	assert.Equal(t, map[int]float64{7: 1.15}, data.Seasonal)

	s := New(data)
	assert.Equal(t, 0.82, s.CongestionIndex("Madrid", "Central", "weekday", 8))
	assert.Equal(t, 0.85, s.Weather("Madrid", 7, 14).HeatDiscomfort)
}

func TestLoadDatasetSeasonalOptional(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"attractions.csv":      "id,name,name_es,city,latitude,longitude,category,zone,average_visit_duration,ideal_time_start,ideal_time_end,peak_hours_json,heat_sensitive,sunset_sensitive,priority_score,description,opening_hours,fee\n",
		"traffic_baseline.csv": "city,zone,day_type,hour,avg_traffic_index\n",
		"weather_baseline.csv": "city,month,hour,avg_temperature_c,heat_discomfort_index\n",
		"zone_definitions.csv": "city,zone,center_latitude,center_longitude,radius_km\n",
		"major_venues.csv":     "city,venue_name,affected_zone,event_types,typical_event_days,congestion_multiplier\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	data, err := LoadDataset(dir)
	require.NoError(t, err)
	assert.Nil(t, data.Seasonal)

	s := New(data)
	assert.Equal(t, 1.0, s.SeasonalMultiplier(8))
}
