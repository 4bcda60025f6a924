package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"itinerary-optimizer-service/internal/platform/obs"
)

// OpenWeatherClient resolves place names and scores upcoming 3-hour forecast
// slots for outdoor comfort. Auxiliary to the optimizer: itinerary scoring
// always runs on the baseline tables, never on live forecasts.
//
// The client is safe for concurrent use.
type OpenWeatherClient struct {
	session     *http.Client
	apiKey      string
	forecastURL string
	geocodeURL  string
	now         func() time.Time
}

func NewOpenWeatherClient(apiKey string) (*OpenWeatherClient, error) {
	if apiKey == "" {
		return nil, errors.New("openweather api key is empty")
	}

	return &OpenWeatherClient{
		session:     &http.Client{Timeout: 20 * time.Second},
		apiKey:      apiKey,
		forecastURL: "https://api.openweathermap.org/data/2.5/forecast",
		geocodeURL:  "https://api.openweathermap.org/geo/1.0/direct",
		now:         time.Now,
	}, nil
}

// GeocodeResult is a resolved place name.
type GeocodeResult struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// ForecastSlot is one scored 3-hour window.
type ForecastSlot struct {
	TimeUTC   string `json:"time_utc"`
	TimeLocal string `json:"time_local"`
	Score     int    `json:"weather_score"`
	Summary   string `json:"summary"`
}

// BestTimeReport names the best and worst slots inside the lookahead window.
type BestTimeReport struct {
	Location string       `json:"location"`
	Best     ForecastSlot `json:"best"`
	Worst    ForecastSlot `json:"worst"`
}

type geocodeEntry struct {
	Name    string  `json:"name"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type forecastResponse struct {
	City struct {
		Timezone int `json:"timezone"`
	} `json:"city"`
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	DT   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Pop float64 `json:"pop"`
}

// GeocodePlace resolves a free-text place name to coordinates. A non-empty
// cityHint narrows the query to that city in Spain.
func (c *OpenWeatherClient) GeocodePlace(ctx context.Context, place, cityHint string) (_ GeocodeResult, err error) {
	defer obs.Time(ctx, "openweather.GeocodePlace")(&err)

	q := strings.TrimSpace(place)
	if q == "" {
		return GeocodeResult{}, errors.New("geocode place: place must be non-empty")
	}
	if cityHint != "" {
		q = fmt.Sprintf("%s, %s, ES", q, cityHint)
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("limit", "1")

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, c.geocodeURL, params)
	})
	if err != nil {
		return GeocodeResult{}, fmt.Errorf("geocode place %q: %w", q, err)
	}
	defer resp.Body.Close()

	var entries []geocodeEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return GeocodeResult{}, fmt.Errorf("geocode place: decode response: %w", err)
	}
	if len(entries) == 0 {
		return GeocodeResult{}, fmt.Errorf("geocode place: no results for %q", q)
	}

	top := entries[0]
	label := top.Name
	if label == "" {
		label = place
	}
	if top.State != "" {
		label += ", " + top.State
	}
	if top.Country != "" {
		label += ", " + top.Country
	}

	return GeocodeResult{Lat: top.Lat, Lon: top.Lon, Label: label}, nil
}

// BestTime scores every 3-hour forecast slot inside the next hoursAhead hours
// and reports the best and worst ones. hoursAhead clamps to 3..120, the range
// the 5-day forecast product covers.
func (c *OpenWeatherClient) BestTime(ctx context.Context, lat, lon float64, hoursAhead int, label string) (_ *BestTimeReport, err error) {
	defer obs.Time(ctx, "openweather.BestTime")(&err)

	if hoursAhead < 3 {
		hoursAhead = 3
	}
	if hoursAhead > 120 {
		hoursAhead = 120
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", lat))
	params.Set("lon", fmt.Sprintf("%.4f", lon))
	params.Set("units", "metric")

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, c.forecastURL, params)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	var decoded forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	nowUTC := c.now().UTC()
	endUTC := nowUTC.Add(time.Duration(hoursAhead) * time.Hour)
	tzOffset := time.Duration(decoded.City.Timezone) * time.Second

	type scoredSlot struct {
		at        time.Time
		feelsLike float64
		desc      string
		pop       float64
		score     int
	}

	var best, worst *scoredSlot
	for _, item := range decoded.List {
		at := time.Unix(item.DT, 0).UTC()
		if at.Before(nowUTC) || at.After(endUTC) {
			continue
		}

		desc := "weather"
		if len(item.Weather) > 0 && strings.TrimSpace(item.Weather[0].Description) != "" {
			desc = strings.TrimSpace(item.Weather[0].Description)
		}

		slot := scoredSlot{
			at:        at,
			feelsLike: item.Main.FeelsLike,
			desc:      desc,
			pop:       clamp(item.Pop, 0, 1),
			score:     WeatherScore(item.Main.FeelsLike, item.Wind.Speed, item.Main.Humidity, item.Pop),
		}

		if best == nil || slot.score > best.score {
			s := slot
			best = &s
		}
		if worst == nil || slot.score < worst.score {
			s := slot
			worst = &s
		}
	}

	if best == nil {
		return nil, errors.New("no forecast slots in the requested window")
	}

	if label == "" {
		label = fmt.Sprintf("%.4f,%.4f", lat, lon)
	}

	report := &BestTimeReport{
		Location: label,
		Best: ForecastSlot{
			TimeUTC:   best.at.Format("2006-01-02T15:04"),
			TimeLocal: best.at.Add(tzOffset).Format("2006-01-02T15:04"),
			Score:     best.score,
			Summary:   summarySentence(best.feelsLike, best.desc, best.pop, best.score),
		},
		Worst: ForecastSlot{
			TimeUTC:   worst.at.Format("2006-01-02T15:04"),
			TimeLocal: worst.at.Add(tzOffset).Format("2006-01-02T15:04"),
			Score:     worst.score,
			Summary:   summarySentence(worst.feelsLike, worst.desc, worst.pop, worst.score),
		},
	}
	return report, nil
}

// WeatherScore rates a forecast slot 0-100 for outdoor comfort; higher is
// better. Feels-like is centered on 21°C; wind (m/s), humidity above 60% and
// precipitation probability each subtract from the base.
func WeatherScore(feelsLike, windMS float64, humidity int, pop float64) int {
	score := 100.0
	score -= math.Abs(feelsLike-21) * 2.0
	score -= windMS * 1.5
	score -= math.Max(0, float64(humidity-60)) * 0.5
	score -= clamp(pop, 0, 1) * 40.0

	return int(clamp(score, 0, 100))
}

// Rating maps a comfort score onto its display band.
func Rating(score int) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Okay"
	default:
		return "Poor"
	}
}

func summarySentence(feelsLike float64, desc string, pop float64, score int) string {
	rainPct := int(math.Round(clamp(pop, 0, 1) * 100))

	var vibe string
	switch {
	case score >= 85:
		vibe = "Perfect for sightseeing and outdoor plans."
	case score >= 70:
		vibe = "Great for exploring; minor weather discomfort possible."
	case score >= 50:
		vibe = "Decent, but plan smart: some conditions may be annoying."
	default:
		vibe = "Not ideal for outdoor plans; consider indoor activities."
	}

	return fmt.Sprintf("%s weather: feels like %.1f°C, %s, rain chance %d%%. %s",
		Rating(score), feelsLike, desc, rainPct, vibe)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
