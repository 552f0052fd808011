package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrocampo/api/internal/activity"
	"github.com/agrocampo/api/internal/analysis"
	"github.com/agrocampo/api/internal/assistant"
	"github.com/agrocampo/api/internal/dashboard"
	"github.com/agrocampo/api/internal/database"
	"github.com/agrocampo/api/internal/farm"
	"github.com/agrocampo/api/internal/geo"
	"github.com/agrocampo/api/internal/handler"
	"github.com/agrocampo/api/internal/listing"
	"github.com/agrocampo/api/internal/logger"
	"github.com/agrocampo/api/internal/metrics"
	"github.com/agrocampo/api/internal/plot"
	"github.com/agrocampo/api/internal/storage"
	"github.com/agrocampo/api/internal/weather"
)

// maxRequestBytes bounds request bodies. Plant image uploads dominate
// request size, everything else is small JSON.
const maxRequestBytes = 12 << 20

// Services groups the business services the HTTP layer exposes.
type Services struct {
	Farm      farm.Service
	Plot      plot.Service
	Activity  activity.Service
	Listing   listing.Service
	Weather   weather.Service
	Dashboard dashboard.Service
	Assistant assistant.Service
	Analysis  analysis.Service
	Locations *geo.Resolver
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, services Services, bucket *storage.Bucket) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(maxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Uploaded plant images (public, served by URL from analysis results)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(bucket.Dir()))))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		farmHandler := handler.NewFarmHandler(services.Farm)
		r.Route("/farms", func(r chi.Router) {
			r.Get("/", farmHandler.HandleList)
			r.Post("/", farmHandler.HandleCreate)
			r.Get("/{id}", farmHandler.HandleGet)
			r.Put("/{id}", farmHandler.HandleUpdate)
			r.Delete("/{id}", farmHandler.HandleDelete)
		})

		plotHandler := handler.NewPlotHandler(services.Plot)
		r.Route("/plots", func(r chi.Router) {
			r.Get("/", plotHandler.HandleList)
			r.Post("/", plotHandler.HandleCreate)
			r.Get("/{id}", plotHandler.HandleGet)
			r.Put("/{id}", plotHandler.HandleUpdate)
			r.Delete("/{id}", plotHandler.HandleDelete)
		})

		activityHandler := handler.NewActivityHandler(services.Activity)
		r.Route("/activities", func(r chi.Router) {
			r.Get("/", activityHandler.HandleList)
			r.Post("/", activityHandler.HandleCreate)
			r.Get("/{id}", activityHandler.HandleGet)
			r.Put("/{id}", activityHandler.HandleUpdate)
			r.Delete("/{id}", activityHandler.HandleDelete)
			r.Post("/{id}/complete", activityHandler.HandleComplete)
		})

		listingHandler := handler.NewListingHandler(services.Listing)
		r.Route("/listings", func(r chi.Router) {
			r.Get("/", listingHandler.HandleList)
			r.Post("/", listingHandler.HandleCreate)
			r.Post("/bulk-delete", listingHandler.HandleBulkDelete)
			r.Get("/{id}", listingHandler.HandleGet)
			r.Put("/{id}", listingHandler.HandleUpdate)
			r.Delete("/{id}", listingHandler.HandleDelete)
			r.Get("/{id}/whatsapp-link", listingHandler.HandleWhatsAppLink)
		})

		weatherHandler := handler.NewWeatherHandler(services.Weather)
		r.Get("/weather", weatherHandler.HandleGet)

		locationHandler := handler.NewLocationHandler(services.Locations)
		r.Route("/location", func(r chi.Router) {
			r.Get("/", locationHandler.HandleGet)
			r.Put("/", locationHandler.HandleSetManual)
			r.Delete("/", locationHandler.HandleClear)
			r.Post("/resolve", locationHandler.HandleResolve)
		})

		dashboardHandler := handler.NewDashboardHandler(services.Dashboard)
		r.Get("/dashboard", dashboardHandler.HandleOverview)

		chatHandler := handler.NewChatHandler(services.Assistant)
		r.Post("/chat", chatHandler.HandleChat)

		analysisHandler := handler.NewAnalysisHandler(services.Analysis)
		r.Post("/analysis", analysisHandler.HandleAnalyze)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
