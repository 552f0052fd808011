package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrocampo_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agrocampo_http_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agrocampo_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)
)

// Cache Metrics
var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrocampo_cache_hits_total",
			Help: "Cache reads served fresh from memory, by resource.",
		},
		[]string{"resource"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrocampo_cache_misses_total",
			Help: "Cache reads that required a fetch, by resource.",
		},
		[]string{"resource"},
	)

	CacheStale = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrocampo_cache_stale_serves_total",
			Help: "Cache reads served stale while refreshing in background, by resource.",
		},
		[]string{"resource"},
	)

	CacheFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrocampo_cache_fetch_failures_total",
			Help: "Cache fetches that failed after exhausting retries, by resource.",
		},
		[]string{"resource"},
	)
)

// External provider metrics
var (
	WeatherFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrocampo_weather_fetches_total",
			Help: "Weather provider fetches by outcome.",
		},
		[]string{"outcome"},
	)

	GeocodeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrocampo_geocode_lookups_total",
			Help: "Reverse geocoding lookups by outcome.",
		},
		[]string{"outcome"},
	)

	AssistantRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrocampo_assistant_requests_total",
			Help: "Chat assistant completions by outcome.",
		},
		[]string{"outcome"},
	)
)
