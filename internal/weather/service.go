package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agrocampo/api/internal/cache"
	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/logger"
)

// maxTrackedLocations bounds the set of coordinates the background
// refresher keeps warm.
const maxTrackedLocations = 128

// Coordinate is a tracked lat/lon pair.
type Coordinate struct {
	Lat float64
	Lon float64
}

// View is the UI-ready weather payload: current conditions, at most
// three forecast cards and the derived agricultural advisory.
type View struct {
	Current   domain.CurrentConditions `json:"current"`
	Forecast  []domain.UIForecastEntry `json:"forecast"`
	Advisory  string                   `json:"advisory,omitempty"`
	Stale     bool                     `json:"stale,omitempty"`
	FetchedAt time.Time                `json:"fetched_at"`
}

// Service serves weather data through the cache layer.
type Service interface {
	// Snapshot returns the cached (possibly stale) weather snapshot.
	Snapshot(ctx context.Context, lat, lon float64) (domain.WeatherSnapshot, bool, error)

	// View returns the presentation-ready weather payload.
	View(ctx context.Context, lat, lon float64) (View, error)

	// Refresh forces a provider fetch, bypassing freshness checks.
	Refresh(ctx context.Context, lat, lon float64) error

	// Tracked returns the coordinates served recently, for the
	// background refresher.
	Tracked() []Coordinate
}

type service struct {
	store    *cache.Store
	provider Provider
	ttl      time.Duration

	mu      sync.Mutex
	tracked map[string]Coordinate
}

// NewService creates a weather service with the given freshness window.
func NewService(store *cache.Store, provider Provider, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &service{
		store:    store,
		provider: provider,
		ttl:      ttl,
		tracked:  make(map[string]Coordinate),
	}
}

func (s *service) track(lat, lon float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tracked) >= maxTrackedLocations {
		return
	}
	s.tracked[cache.WeatherKey(lat, lon).String()] = Coordinate{Lat: lat, Lon: lon}
}

func (s *service) Tracked() []Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	coords := make([]Coordinate, 0, len(s.tracked))
	for _, c := range s.tracked {
		coords = append(coords, c)
	}
	return coords
}

func (s *service) fetchFunc(lat, lon float64) cache.FetchFunc {
	return func(ctx context.Context) (interface{}, error) {
		return s.provider.Fetch(ctx, lat, lon)
	}
}

func (s *service) Snapshot(ctx context.Context, lat, lon float64) (domain.WeatherSnapshot, bool, error) {
	s.track(lat, lon)

	res := s.store.Get(ctx, cache.WeatherKey(lat, lon), cache.Options{TTL: s.ttl}, s.fetchFunc(lat, lon))
	if res.Err != nil {
		return domain.WeatherSnapshot{}, false, fmt.Errorf("weather fetch failed: %w", res.Err)
	}

	snapshot, ok := res.Value.(domain.WeatherSnapshot)
	if !ok {
		return domain.WeatherSnapshot{}, false, fmt.Errorf("unexpected cached weather value")
	}
	return snapshot, res.Stale, nil
}

func (s *service) View(ctx context.Context, lat, lon float64) (View, error) {
	snapshot, stale, err := s.Snapshot(ctx, lat, lon)
	if err != nil {
		return View{}, err
	}

	return View{
		Current:   snapshot.Current,
		Forecast:  BuildUIForecast(snapshot.Forecast),
		Advisory:  DeriveAdvisory(snapshot.Forecast),
		Stale:     stale,
		FetchedAt: snapshot.FetchedAt,
	}, nil
}

func (s *service) Refresh(ctx context.Context, lat, lon float64) error {
	// ForceRefresh rather than Invalidate+Get: an in-flight fetch started
	// before the refresh request would otherwise satisfy it with data
	// from before the caller asked.
	key := cache.WeatherKey(lat, lon)
	res := s.store.ForceRefresh(ctx, key, cache.Options{TTL: s.ttl}, s.fetchFunc(lat, lon))
	if res.Err != nil {
		logger.FromContext(ctx).Warn("forced weather refresh failed", "lat", lat, "lon", lon, "error", res.Err)
		return res.Err
	}
	return nil
}
