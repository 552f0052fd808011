package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/api/internal/domain"
)

func forecastSlot(ts time.Time, icon string, tempMin, tempMax, pop float64) string {
	return fmt.Sprintf(`{
		"dt": %d,
		"main": {"temp_min": %f, "temp_max": %f, "humidity": 60},
		"weather": [{"description": "teste", "icon": %q}],
		"wind": {"speed": 3.1},
		"pop": %f
	}`, ts.Unix(), tempMin, tempMax, icon, pop)
}

func TestOpenWeatherProviderFetch(t *testing.T) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	noon := today.Add(12 * time.Hour)
	tomorrowNoon := noon.Add(24 * time.Hour)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/weather":
			fmt.Fprint(w, `{"main": {"temp": 26.7, "humidity": 55}, "weather": [{"description": "céu limpo", "icon": "01d"}]}`)
		case "/forecast":
			fmt.Fprintf(w, `{"list": [%s, %s, %s]}`,
				forecastSlot(noon, "01d", 18.2, 29.1, 0.1),
				forecastSlot(noon.Add(3*time.Hour), "02d", 19.0, 27.5, 0.4),
				forecastSlot(tomorrowNoon, "10d", 16.4, 22.8, 0.9),
			)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	provider := NewOpenWeatherProvider(server.URL, "test-key", server.Client())
	snapshot, err := provider.Fetch(context.Background(), -18.9186, -48.2772)
	require.NoError(t, err)

	assert.Equal(t, 26.7, snapshot.Current.Temperature)
	assert.Equal(t, domain.IconSun, snapshot.Current.Icon)

	require.Len(t, snapshot.Forecast, 2, "three-hour slots collapse into days")

	first := snapshot.Forecast[0]
	assert.Equal(t, 18.2, first.TempMin, "day minimum across slots")
	assert.Equal(t, 29.1, first.TempMax, "day maximum across slots")
	assert.InDelta(t, 40.0, first.RainProbability, 0.01, "worst-case rain probability for the day")
	assert.Equal(t, "01d", first.IconCode, "midday slot provides the icon")

	second := snapshot.Forecast[1]
	assert.Equal(t, domain.IconCloudRain, second.Icon)
	assert.True(t, first.Date.Before(second.Date), "forecast ordered date ascending")
}

func TestOpenWeatherProviderFetch_Errors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		provider := NewOpenWeatherProvider("http://localhost", "", nil)
		_, err := provider.Fetch(context.Background(), 0, 0)
		require.Error(t, err)
	})

	t.Run("server error surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		provider := NewOpenWeatherProvider(server.URL, "test-key", server.Client())
		_, err := provider.Fetch(context.Background(), 0, 0)
		require.Error(t, err)
	})
}
