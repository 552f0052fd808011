package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/api/internal/domain"
)

func TestMapIconCode(t *testing.T) {
	tests := []struct {
		code     string
		expected domain.IconCategory
	}{
		{"01d", domain.IconSun},
		{"01n", domain.IconSun},
		{"02d", domain.IconCloudSun},
		{"03n", domain.IconCloudSun},
		{"04d", domain.IconCloud},
		{"09d", domain.IconCloudRain},
		{"10n", domain.IconCloudRain},
		{"11d", domain.IconCloudRain},
		{"13d", domain.IconCloudSun},
		{"50n", domain.IconCloudSun},
		{"", domain.IconCloudSun},
		{"garbage", domain.IconCloudSun},
	}
	for _, tt := range tests {
		t.Run("code "+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapIconCode(tt.code))
		})
	}
}

func day(icon string, rainProb float64) domain.ForecastDay {
	return domain.ForecastDay{
		Date:            time.Now(),
		Weekday:         "Wed",
		IconCode:        icon,
		Icon:            MapIconCode(icon),
		TempMin:         18.4,
		TempMax:         27.6,
		RainProbability: rainProb,
	}
}

func TestDeriveAdvisory(t *testing.T) {
	t.Run("fewer than two entries yields neutral result", func(t *testing.T) {
		assert.Empty(t, DeriveAdvisory(nil))
		assert.Empty(t, DeriveAdvisory([]domain.ForecastDay{day("01d", 0)}))
	})

	t.Run("high rain probability today discourages spraying", func(t *testing.T) {
		days := []domain.ForecastDay{day("01d", 60), day("01d", 10)}
		assert.Equal(t, AdvisorySprayingDiscouraged, DeriveAdvisory(days))
	})

	t.Run("high rain probability tomorrow discourages spraying", func(t *testing.T) {
		days := []domain.ForecastDay{day("01d", 10), day("02d", 80)}
		assert.Equal(t, AdvisorySprayingDiscouraged, DeriveAdvisory(days))
	})

	t.Run("rain icon discourages spraying regardless of probability", func(t *testing.T) {
		days := []domain.ForecastDay{day("10d", 0), day("01d", 0)}
		assert.Equal(t, AdvisorySprayingDiscouraged, DeriveAdvisory(days))
	})

	t.Run("low probabilities and clear icons are favorable", func(t *testing.T) {
		days := []domain.ForecastDay{day("01d", 10), day("02d", 20)}
		assert.Equal(t, AdvisoryFavorable, DeriveAdvisory(days))
	})

	t.Run("exactly at threshold is still favorable", func(t *testing.T) {
		days := []domain.ForecastDay{day("01d", 50), day("01d", 50)}
		assert.Equal(t, AdvisoryFavorable, DeriveAdvisory(days))
	})

	t.Run("rain on third day does not affect the advisory", func(t *testing.T) {
		days := []domain.ForecastDay{day("01d", 0), day("01d", 0), day("11d", 100)}
		assert.Equal(t, AdvisoryFavorable, DeriveAdvisory(days))
	})
}

func TestBuildUIForecast(t *testing.T) {
	t.Run("labels and truncation", func(t *testing.T) {
		days := []domain.ForecastDay{
			{Weekday: "Mon", IconCode: "01d", TempMin: 17.2, TempMax: 28.9},
			{Weekday: "Tue", IconCode: "10d", TempMin: 16.0, TempMax: 22.4},
			{Weekday: "Wed", IconCode: "04d", TempMin: 15.5, TempMax: 21.0},
			{Weekday: "Thu", IconCode: "01d", TempMin: 18.0, TempMax: 26.0},
		}

		entries := BuildUIForecast(days)
		require.Len(t, entries, 3, "at most three cards")

		assert.Equal(t, "Today", entries[0].Label)
		assert.Equal(t, "Tomorrow", entries[1].Label)
		assert.Equal(t, "Wed", entries[2].Label, "third card carries the weekday abbreviation")

		assert.Equal(t, domain.IconSun, entries[0].Icon)
		assert.Equal(t, domain.IconCloudRain, entries[1].Icon)
		assert.Equal(t, domain.IconCloud, entries[2].Icon)
	})

	t.Run("temperatures are rounded whole degrees with unit", func(t *testing.T) {
		entries := BuildUIForecast([]domain.ForecastDay{{Weekday: "Fri", TempMin: 17.5, TempMax: 28.4}})
		require.Len(t, entries, 1)
		assert.Equal(t, "18°C", entries[0].TempMin)
		assert.Equal(t, "28°C", entries[0].TempMax)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, BuildUIForecast(nil))
	})
}
