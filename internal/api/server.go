// Package api assembles the HTTP server: router, middleware, and handlers.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/dugoutclub/dugout-data/internal/api/handler"
	"github.com/dugoutclub/dugout-data/internal/cache"
	"github.com/dugoutclub/dugout-data/internal/config"
)

// NewServer builds the HTTP server with all routes and middleware wired.
func NewServer(cfg *config.Config, pool *pgxpool.Pool, c *cache.Cache) *http.Server {
	h := handler.New(pool, c, cfg)

	r := chi.NewRouter()

	// Middleware stack (order matters)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"ETag", "X-Cache", "X-Process-Time"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	r.Use(corsHandler.Handler)

	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// Meta and health
	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)
	r.Get("/health/db", h.HealthCheckDB)
	r.Get("/health/cache", h.HealthCheckCache)

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// Archive API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/seasons", h.GetSeasons)
		r.Route("/seasons/{year}", func(r chi.Router) {
			r.Get("/periods", h.GetPeriods)
			r.Get("/periods/{number}/stats", h.GetPeriodStats)
			r.Get("/draft", h.GetDraft)
			r.Get("/standings", h.GetStandings)
		})
		r.Get("/imports", h.GetImports)
	})

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	slog.Info("api server configured",
		"addr", addr,
		"environment", cfg.Environment,
		"rate_limit", cfg.RateLimitEnabled,
		"cache", cfg.CacheEnabled,
	)

	return &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
