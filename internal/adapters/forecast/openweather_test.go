package forecast

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherScore(t *testing.T) {
	cases := []struct {
		name      string
		feelsLike float64
		wind      float64
		humidity  int
		pop       float64
		want      int
	}{
		{"ideal conditions", 21, 0, 50, 0, 100},
		{"warm and breezy", 26, 2, 70, 0.5, 62},
		{"hot humid storm", 40, 10, 95, 1.0, 0},
		{"cold snap", 1, 0, 40, 0, 60},
	}
	for _, tc := range cases {
		got := WeatherScore(tc.feelsLike, tc.wind, tc.humidity, tc.pop)
		assert.Equal(t, tc.want, got, tc.name)
	}
}

func TestRatingBands(t *testing.T) {
	assert.Equal(t, "Excellent", Rating(85))
	assert.Equal(t, "Good", Rating(84))
	assert.Equal(t, "Good", Rating(70))
	assert.Equal(t, "Okay", Rating(69))
	assert.Equal(t, "Okay", Rating(50))
	assert.Equal(t, "Poor", Rating(49))
}

func TestSummarySentence(t *testing.T) {
	s := summarySentence(23.4, "clear sky", 0.1, 90)
	assert.Equal(t,
		"Excellent weather: feels like 23.4°C, clear sky, rain chance 10%. Perfect for sightseeing and outdoor plans.",
		s)
}

func newTestClient(t *testing.T, handler http.Handler) *OpenWeatherClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewOpenWeatherClient("test-key")
	require.NoError(t, err)
	c.forecastURL = srv.URL + "/forecast"
	c.geocodeURL = srv.URL + "/geocode"
	return c
}

func TestGeocodePlace(t *testing.T) {
	var gotQuery, gotKey string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.URL.Query().Get("appid")
		fmt.Fprint(w, `[{"name":"Plaza Mayor","state":"Madrid","country":"ES","lat":40.4155,"lon":-3.7074}]`)
	}))

	got, err := c.GeocodePlace(context.Background(), "Plaza Mayor", "madrid")
	require.NoError(t, err)

	assert.Equal(t, "Plaza Mayor, madrid, ES", gotQuery)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, 40.4155, got.Lat)
	assert.Equal(t, -3.7074, got.Lon)
	assert.Equal(t, "Plaza Mayor, Madrid, ES", got.Label)
}

func TestGeocodePlaceNoResults(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))

	_, err := c.GeocodePlace(context.Background(), "Atlantis", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no results")
}

func TestBestTime(t *testing.T) {
	now := time.Date(2025, time.July, 16, 12, 0, 0, 0, time.UTC)

	payload := fmt.Sprintf(`{
		"city": {"timezone": 7200},
		"list": [
			{"dt": %d, "main": {"temp": 22, "feels_like": 21, "humidity": 50}, "weather": [{"description": "clear sky"}], "wind": {"speed": 1}, "pop": 0},
			{"dt": %d, "main": {"temp": 35, "feels_like": 39, "humidity": 80}, "weather": [{"description": "thunderstorm"}], "wind": {"speed": 8}, "pop": 0.9},
			{"dt": %d, "main": {"temp": 20, "feels_like": 20, "humidity": 40}, "weather": [{"description": "few clouds"}], "wind": {"speed": 0}, "pop": 0}
		]
	}`,
		now.Add(3*time.Hour).Unix(),
		now.Add(6*time.Hour).Unix(),
		now.Add(48*time.Hour).Unix(), // outside the 24h window, must be ignored
	)

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	c.now = func() time.Time { return now }

	report, err := c.BestTime(context.Background(), 40.4168, -3.7038, 24, "Madrid")
	require.NoError(t, err)

	assert.Equal(t, "Madrid", report.Location)

	// Clear-sky slot: feels 21, wind 1 -> score 98.
	assert.Equal(t, 98, report.Best.Score)
	assert.Equal(t, "2025-07-16T15:00", report.Best.TimeUTC)
	assert.Equal(t, "2025-07-16T17:00", report.Best.TimeLocal)
	assert.Contains(t, report.Best.Summary, "Excellent weather")
	assert.Contains(t, report.Best.Summary, "clear sky")

	// Thunderstorm slot: 100 - 36 - 12 - 10 - 36 = 6.
	assert.Equal(t, 6, report.Worst.Score)
	assert.Equal(t, "2025-07-16T18:00", report.Worst.TimeUTC)
	assert.Contains(t, report.Worst.Summary, "Poor weather")
}

func TestBestTimeEmptyWindow(t *testing.T) {
	now := time.Date(2025, time.July, 16, 12, 0, 0, 0, time.UTC)

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"city": {"timezone": 0}, "list": [{"dt": %d, "main": {}, "wind": {}}]}`,
			now.Add(-3*time.Hour).Unix())
	}))
	c.now = func() time.Time { return now }

	_, err := c.BestTime(context.Background(), 0, 0, 24, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no forecast slots")
}

func TestDoWithRetryTransientFailure(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `[{"name":"Prado","lat":40.41,"lon":-3.69}]`)
	}))

	got, err := c.GeocodePlace(context.Background(), "Prado", "")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "Prado", got.Label)
}

func TestDoWithRetryGivesUpOnClientError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.GeocodePlace(context.Background(), "Prado", "")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "401 must not be retried")
}
