package weather

import (
	"fmt"
	"math"

	"github.com/agrocampo/api/internal/domain"
)

// Advisory messages derived from the next two forecast days.
const (
	AdvisorySprayingDiscouraged = "Rain expected today or tomorrow - avoid spraying and postpone applications."
	AdvisoryFavorable           = "Conditions look favorable for field work in the next days."
)

// Rain probability (percent) above which spraying is discouraged even
// without a rain icon.
const rainProbabilityThreshold = 50.0

// maximum number of UI forecast cards.
const uiForecastDays = 3

// BuildUIForecast shapes the raw daily forecast into at most three
// UI-ready cards: today, tomorrow, then the actual weekday abbreviation.
// Temperatures are rounded to whole degrees with a unit suffix.
func BuildUIForecast(days []domain.ForecastDay) []domain.UIForecastEntry {
	entries := make([]domain.UIForecastEntry, 0, uiForecastDays)
	for i, day := range days {
		if i >= uiForecastDays {
			break
		}

		label := day.Weekday
		switch i {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		}

		entries = append(entries, domain.UIForecastEntry{
			Label:       label,
			Icon:        MapIconCode(day.IconCode),
			TempMin:     formatTemp(day.TempMin),
			TempMax:     formatTemp(day.TempMax),
			Humidity:    day.Humidity,
			WindSpeed:   day.WindSpeed,
			RainChance:  day.RainProbability,
			Description: day.Description,
		})
	}
	return entries
}

// DeriveAdvisory returns the agricultural advisory for the first two
// forecast days. With fewer than two entries there is not enough signal
// and the result is empty.
func DeriveAdvisory(days []domain.ForecastDay) string {
	if len(days) < 2 {
		return ""
	}

	for _, day := range days[:2] {
		if MapIconCode(day.IconCode) == domain.IconCloudRain || day.RainProbability > rainProbabilityThreshold {
			return AdvisorySprayingDiscouraged
		}
	}
	return AdvisoryFavorable
}

func formatTemp(v float64) string {
	return fmt.Sprintf("%d°C", int(math.Round(v)))
}
