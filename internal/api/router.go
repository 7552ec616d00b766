// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/skursatToklucu/ozanparquet/internal/api/handlers"
	"github.com/skursatToklucu/ozanparquet/internal/api/middleware"
	"github.com/skursatToklucu/ozanparquet/internal/observability"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/httputil"
	"github.com/skursatToklucu/ozanparquet/internal/web"
)

// RouterConfig contains configuration for setting up routes.
type RouterConfig struct {
	// CORSConfig applies to /api/v1 only.
	CORSConfig middleware.CORSConfig

	// RateLimitPerMinute limits API reads per client IP.
	RateLimitPerMinute int

	// SubmissionsPerMinute limits API quote and contact posts per client IP.
	SubmissionsPerMinute int

	// RequestTimeout bounds API requests. Pages set their own deadlines.
	RequestTimeout time.Duration

	// Logger for request logging.
	Logger middleware.RequestLogger

	// EnableDebugLogging adds query strings and user agents to access logs.
	EnableDebugLogging bool

	// Metrics, when set, instruments every request and serves MetricsPath.
	Metrics     *observability.Metrics
	MetricsPath string

	// Tracing, when enabled, opens a span per request.
	Tracing *observability.Provider

	// Web controls the storefront form limits.
	Web web.RoutesConfig
}

// DefaultRouterConfig returns a default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CORSConfig:           middleware.DefaultCORSConfig(),
		RateLimitPerMinute:   100,
		SubmissionsPerMinute: 10,
		RequestTimeout:       30 * time.Second,
		MetricsPath:          "/metrics",
		Web: web.RoutesConfig{
			FormRequests: 20,
			FormWindow:   time.Minute,
		},
	}
}

// Handlers contains every mounted handler. Nil fields are skipped.
type Handlers struct {
	System  *handlers.SystemHandler
	Catalog *handlers.CatalogHandler
	Web     *web.Handler
}

// NewRouter creates a new chi router with all routes configured.
func NewRouter(config RouterConfig, h *Handlers) chi.Router {
	r := chi.NewRouter()

	// =========================================================================
	// Global Middleware (applied to all routes)
	// =========================================================================

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	if config.Tracing != nil && config.Tracing.Enabled() {
		r.Use(config.Tracing.TraceMiddleware())
	}
	if config.Metrics != nil {
		r.Use(config.Metrics.Middleware)
	}

	if config.Logger != nil {
		r.Use(middleware.Logging(middleware.LoggingConfig{
			Logger:    config.Logger,
			SkipPaths: []string{"/healthz", "/ready", config.MetricsPath},
			Debug:     config.EnableDebugLogging,
		}))
	}

	r.Use(middleware.Recovery(middleware.RecoveryConfig{
		Logger:     config.Logger,
		PrintStack: true,
	}))

	// =========================================================================
	// Health and metrics
	// =========================================================================

	if h.System != nil {
		r.Get("/health", h.System.Health)
		r.Get("/healthz", h.System.Liveness)
		r.Get("/ready", h.System.Readiness)
	}
	if config.Metrics != nil && config.MetricsPath != "" {
		r.Method(http.MethodGet, config.MetricsPath, config.Metrics.Handler())
	}

	// =========================================================================
	// API Routes
	// =========================================================================

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS(config.CORSConfig))
		if config.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(config.RequestTimeout))
		}

		if h.System != nil {
			r.Get("/version", h.System.Version)
		}

		if h.Catalog != nil {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimitByIP(config.RateLimitPerMinute, time.Minute))
				h.Catalog.RegisterRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimitByIP(config.SubmissionsPerMinute, time.Minute))
				h.Catalog.RegisterSubmissionRoutes(r)
			})
		}

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			httputil.HandleError(w, apperrors.NotFound("route"))
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			httputil.HandleError(w, apperrors.NewWithStatus(apperrors.CodeBadRequest, "method not allowed", http.StatusMethodNotAllowed))
		})
	})

	// =========================================================================
	// Storefront and admin pages
	// =========================================================================

	if h.Web != nil {
		r.Mount(h.Web.MountPath(), h.Web.Routes(config.Web))
	}

	return r
}
