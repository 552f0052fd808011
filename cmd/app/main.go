package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrocampo/api/internal/activity"
	"github.com/agrocampo/api/internal/analysis"
	"github.com/agrocampo/api/internal/assistant"
	"github.com/agrocampo/api/internal/bootstrap"
	"github.com/agrocampo/api/internal/cache"
	"github.com/agrocampo/api/internal/config"
	"github.com/agrocampo/api/internal/dashboard"
	"github.com/agrocampo/api/internal/database"
	"github.com/agrocampo/api/internal/farm"
	"github.com/agrocampo/api/internal/geo"
	"github.com/agrocampo/api/internal/listing"
	"github.com/agrocampo/api/internal/plot"
	"github.com/agrocampo/api/internal/scheduler"
	"github.com/agrocampo/api/internal/server"
	"github.com/agrocampo/api/internal/storage"
	"github.com/agrocampo/api/internal/weather"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	ctx := context.Background()

	if err := database.Migrate(ctx, cfg.GetDBConnString()); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool)
	store := cache.NewStore()

	bucket, err := storage.NewBucket(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		slog.Error("Failed to prepare upload directory", "error", err)
		os.Exit(1)
	}

	weatherProvider := weather.NewOpenWeatherProvider(cfg.WeatherBaseURL, cfg.WeatherAPIKey, nil)
	weatherSvc := weather.NewService(store, weatherProvider, cfg.WeatherTTL)

	geocoder := geo.NewNominatimClient(cfg.GeocodeBaseURL, &http.Client{Timeout: cfg.GeocodeTimeout})
	resolver := geo.NewResolver(geocoder, geo.NewLocationStore(), cfg.GeocodeTimeout)

	llmClient := assistant.NewOpenAIClient(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, nil)

	services := server.Services{
		Farm:      farm.NewService(repos.Farm, store),
		Plot:      plot.NewService(repos.Plot, repos.Farm, store),
		Activity:  activity.NewService(repos.Activity, store),
		Listing:   listing.NewService(repos.Listing, store),
		Weather:   weatherSvc,
		Dashboard: dashboard.NewService(repos.Farm, repos.Plot),
		Assistant: assistant.NewService(llmClient),
		Analysis:  analysis.NewService(bucket, llmClient),
		Locations: resolver,
	}

	refresher := scheduler.New(weatherSvc, cfg.WeatherRefresh)
	if err := refresher.Start(); err != nil {
		slog.Error("Failed to start weather refresher", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, services, bucket)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Scheduler: refresher,
	})
}
