package weather

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/api/internal/cache"
	"github.com/agrocampo/api/internal/domain"
)

type fakeProvider struct {
	snapshot domain.WeatherSnapshot
	err      error
	calls    atomic.Int32
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Fetch(ctx context.Context, lat, lon float64) (domain.WeatherSnapshot, error) {
	f.calls.Add(1)
	if f.err != nil {
		return domain.WeatherSnapshot{}, f.err
	}
	snap := f.snapshot
	snap.Latitude = lat
	snap.Longitude = lon
	snap.FetchedAt = time.Now()
	return snap, nil
}

func sampleSnapshot() domain.WeatherSnapshot {
	return domain.WeatherSnapshot{
		Current: domain.CurrentConditions{Temperature: 26.4, Description: "céu limpo", Icon: domain.IconSun, Humidity: 48},
		Forecast: []domain.ForecastDay{
			{Weekday: "Mon", IconCode: "01d", TempMin: 18, TempMax: 29, RainProbability: 10},
			{Weekday: "Tue", IconCode: "02d", TempMin: 17, TempMax: 27, RainProbability: 20},
			{Weekday: "Wed", IconCode: "10d", TempMin: 16, TempMax: 23, RainProbability: 80},
		},
	}
}

func TestServiceSnapshot_CachesWithinFreshnessWindow(t *testing.T) {
	provider := &fakeProvider{snapshot: sampleSnapshot()}
	svc := NewService(cache.NewStore(), provider, 30*time.Minute)

	_, stale, err := svc.Snapshot(context.Background(), -18.9186, -48.2772)
	require.NoError(t, err)
	assert.False(t, stale)

	_, _, err = svc.Snapshot(context.Background(), -18.9186, -48.2772)
	require.NoError(t, err)

	assert.Equal(t, int32(1), provider.calls.Load(), "second snapshot within 30 minutes must not hit the provider")
}

func TestServiceSnapshot_ErrorWithoutPriorValue(t *testing.T) {
	provider := &fakeProvider{err: errors.New("provider down")}
	svc := NewService(cache.NewStore(), provider, 30*time.Minute)

	_, _, err := svc.Snapshot(context.Background(), 1, 2)
	require.Error(t, err)
}

func TestServiceView(t *testing.T) {
	provider := &fakeProvider{snapshot: sampleSnapshot()}
	svc := NewService(cache.NewStore(), provider, 30*time.Minute)

	view, err := svc.View(context.Background(), -18.9186, -48.2772)
	require.NoError(t, err)

	require.Len(t, view.Forecast, 3)
	assert.Equal(t, "Today", view.Forecast[0].Label)
	assert.Equal(t, "Tomorrow", view.Forecast[1].Label)
	assert.Equal(t, "Wed", view.Forecast[2].Label)
	assert.Equal(t, AdvisoryFavorable, view.Advisory, "rain only on day three keeps conditions favorable")
	assert.Equal(t, 26.4, view.Current.Temperature)
}

type gatedProvider struct {
	firstStarted chan struct{}
	release      chan struct{}
	calls        atomic.Int32
}

func (g *gatedProvider) Name() string { return "gated" }

func (g *gatedProvider) Fetch(ctx context.Context, lat, lon float64) (domain.WeatherSnapshot, error) {
	if g.calls.Add(1) == 1 {
		close(g.firstStarted)
		<-g.release
		return domain.WeatherSnapshot{Current: domain.CurrentConditions{Temperature: 10}, FetchedAt: time.Now()}, nil
	}
	return domain.WeatherSnapshot{Current: domain.CurrentConditions{Temperature: 20}, FetchedAt: time.Now()}, nil
}

func TestServiceRefresh_DoesNotJoinEarlierFetch(t *testing.T) {
	provider := &gatedProvider{firstStarted: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(cache.NewStore(), provider, 30*time.Minute)

	// A snapshot request is stuck on a slow provider call when the
	// forced refresh arrives.
	go svc.Snapshot(context.Background(), 3, 4)
	<-provider.firstStarted

	require.NoError(t, svc.Refresh(context.Background(), 3, 4))
	close(provider.release)

	snap, _, err := svc.Snapshot(context.Background(), 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 20.0, snap.Current.Temperature, "refresh must serve data fetched after it was requested")
}

func TestServiceRefresh_BypassesFreshness(t *testing.T) {
	provider := &fakeProvider{snapshot: sampleSnapshot()}
	svc := NewService(cache.NewStore(), provider, 30*time.Minute)

	_, _, err := svc.Snapshot(context.Background(), 5, 6)
	require.NoError(t, err)

	require.NoError(t, svc.Refresh(context.Background(), 5, 6))
	assert.Equal(t, int32(2), provider.calls.Load(), "refresh must force a provider fetch")
}
