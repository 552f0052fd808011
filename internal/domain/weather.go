package domain

import "time"

// IconCategory is the small semantic icon set the UI understands.
type IconCategory string

const (
	IconSun       IconCategory = "sun"
	IconCloud     IconCategory = "cloud"
	IconCloudSun  IconCategory = "cloud-sun"
	IconCloudRain IconCategory = "cloud-rain"
)

// CurrentConditions describes the weather at a location right now.
type CurrentConditions struct {
	Temperature float64      `json:"temperature"`
	Description string       `json:"description"`
	Icon        IconCategory `json:"icon"`
	Humidity    float64      `json:"humidity"`
}

// ForecastDay is one day of provider forecast data, already reduced to
// daily granularity but not yet shaped for the UI.
type ForecastDay struct {
	Date            time.Time    `json:"date"`
	Weekday         string       `json:"weekday"`
	IconCode        string       `json:"icon_code"`
	Icon            IconCategory `json:"icon"`
	TempMin         float64      `json:"temp_min"`
	TempMax         float64      `json:"temp_max"`
	Humidity        float64      `json:"humidity"`
	WindSpeed       float64      `json:"wind_speed"`
	RainProbability float64      `json:"rain_probability"`
	Description     string       `json:"description,omitempty"`
}

// WeatherSnapshot is the cached view of a location's weather: current
// conditions plus a date-ascending forecast whose index 0 is always today.
type WeatherSnapshot struct {
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Current   CurrentConditions `json:"current"`
	Forecast  []ForecastDay     `json:"forecast"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// UIForecastEntry is one UI-ready forecast card.
type UIForecastEntry struct {
	Label       string       `json:"label"`
	Icon        IconCategory `json:"icon"`
	TempMin     string       `json:"temp_min"`
	TempMax     string       `json:"temp_max"`
	Humidity    float64      `json:"humidity"`
	WindSpeed   float64      `json:"wind_speed"`
	RainChance  float64      `json:"rain_chance"`
	Description string       `json:"description,omitempty"`
}
