package weather

import (
	"context"

	"github.com/agrocampo/api/internal/domain"
)

// Provider fetches current conditions and a multi-day forecast for a
// coordinate pair from an external weather API.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, lat, lon float64) (domain.WeatherSnapshot, error)
}
