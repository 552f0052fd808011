package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/sony/gobreaker"

	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/metrics"
)

var (
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// OpenWeatherProvider fetches current conditions and the 5-day/3-hour
// forecast from an OpenWeatherMap-compatible API.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates a provider for the given base URL.
func NewOpenWeatherProvider(baseURL, apiKey string, client *http.Client) *OpenWeatherProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

// Name returns the provider name.
func (p *OpenWeatherProvider) Name() string { return p.name }

type currentResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			TempMin  float64 `json:"temp_min"`
			TempMax  float64 `json:"temp_max"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Pop float64 `json:"pop"`
	} `json:"list"`
}

// Fetch retrieves and normalizes current conditions plus a daily forecast.
// The forecast is ordered by date ascending with index 0 being today.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, lat, lon float64) (domain.WeatherSnapshot, error) {
	if p.apiKey == "" {
		return domain.WeatherSnapshot{}, fmt.Errorf("weather api key is not configured")
	}

	var current currentResponse
	if err := p.getJSON(ctx, "/weather", lat, lon, &current); err != nil {
		metrics.WeatherFetches.WithLabelValues("error").Inc()
		return domain.WeatherSnapshot{}, fmt.Errorf("fetch current conditions: %w", err)
	}

	var forecast forecastResponse
	if err := p.getJSON(ctx, "/forecast", lat, lon, &forecast); err != nil {
		metrics.WeatherFetches.WithLabelValues("error").Inc()
		return domain.WeatherSnapshot{}, fmt.Errorf("fetch forecast: %w", err)
	}

	snapshot := domain.WeatherSnapshot{
		Latitude:  lat,
		Longitude: lon,
		Current: domain.CurrentConditions{
			Temperature: current.Main.Temp,
			Humidity:    current.Main.Humidity,
		},
		Forecast:  reduceToDays(forecast),
		FetchedAt: time.Now(),
	}
	if len(current.Weather) > 0 {
		snapshot.Current.Description = current.Weather[0].Description
		snapshot.Current.Icon = MapIconCode(current.Weather[0].Icon)
	}

	metrics.WeatherFetches.WithLabelValues("ok").Inc()
	return snapshot, nil
}

func (p *OpenWeatherProvider) getJSON(ctx context.Context, path string, lat, lon float64, out interface{}) error {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("units", "metric")
	values.Set("appid", p.apiKey)

	u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	_, err = p.circuit.Execute(func() (interface{}, error) {
		resp, execErr := p.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return nil, errServerError
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}

		body := json.NewDecoder(resp.Body)
		if decodeErr := body.Decode(out); decodeErr != nil {
			return nil, decodeErr
		}
		return nil, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", errCircuitOpen, err)
	}
	return err
}

// reduceToDays collapses the 3-hour forecast list into one entry per day:
// min/max over the day's slots, worst-case rain probability, and the
// midday slot's icon and description.
func reduceToDays(payload forecastResponse) []domain.ForecastDay {
	type bucket struct {
		day         domain.ForecastDay
		slots       int
		humiditySum float64
		windSum     float64
		hasMidday   bool
	}

	buckets := make(map[string]*bucket)
	for _, slot := range payload.List {
		ts := time.Unix(slot.Dt, 0).UTC()
		key := ts.Format("2006-01-02")

		b, ok := buckets[key]
		if !ok {
			b = &bucket{day: domain.ForecastDay{
				Date:    time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
				Weekday: ts.Format("Mon"),
				TempMin: slot.Main.TempMin,
				TempMax: slot.Main.TempMax,
			}}
			buckets[key] = b
		}

		if slot.Main.TempMin < b.day.TempMin {
			b.day.TempMin = slot.Main.TempMin
		}
		if slot.Main.TempMax > b.day.TempMax {
			b.day.TempMax = slot.Main.TempMax
		}
		if pop := slot.Pop * 100; pop > b.day.RainProbability {
			b.day.RainProbability = pop
		}
		b.humiditySum += slot.Main.Humidity
		b.windSum += slot.Wind.Speed
		b.slots++

		// Prefer the midday slot as the day's representative icon.
		midday := ts.Hour() == 12
		if len(slot.Weather) > 0 && (midday || !b.hasMidday && b.day.IconCode == "") {
			b.day.IconCode = slot.Weather[0].Icon
			b.day.Description = slot.Weather[0].Description
			if midday {
				b.hasMidday = true
			}
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	days := make([]domain.ForecastDay, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		if b.slots > 0 {
			b.day.Humidity = b.humiditySum / float64(b.slots)
			b.day.WindSpeed = b.windSum / float64(b.slots)
		}
		b.day.Icon = MapIconCode(b.day.IconCode)
		days = append(days, b.day)
	}
	return days
}
