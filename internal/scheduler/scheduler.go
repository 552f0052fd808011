package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/agrocampo/api/internal/weather"
)

const refreshTimeout = 30 * time.Second

// Scheduler keeps cached weather warm by forcing a provider refresh for
// every tracked coordinate at a fixed interval.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	weatherSvc weather.Service
	interval   time.Duration
}

// New creates a scheduler. interval defaults to one hour.
func New(weatherSvc weather.Service, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		weatherSvc: weatherSvc,
		interval:   interval,
	}
}

// Start registers the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.refreshAll); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	slog.Default().Info("Weather refresh scheduled", "interval", s.interval)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) refreshAll() {
	coords := s.weatherSvc.Tracked()
	if len(coords) == 0 {
		return
	}

	slog.Default().Info("Refreshing weather", "locations", len(coords))

	var wg sync.WaitGroup
	for _, c := range coords {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()

			if err := s.weatherSvc.Refresh(ctx, c.Lat, c.Lon); err != nil {
				slog.Default().Warn("Weather refresh failed", "lat", c.Lat, "lon", c.Lon, "error", err)
			}
		}()
	}
	wg.Wait()
}
