// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
)

// RequestLogger is the subset of the logger the access log needs.
type RequestLogger interface {
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
}

var _ RequestLogger = (*logger.Logger)(nil)

// LoggingConfig configures the access log.
type LoggingConfig struct {
	Logger RequestLogger

	// SkipPaths are not logged (health probes, metrics scrapes).
	SkipPaths []string

	// Debug adds the query string and user agent.
	Debug bool
}

// Logging writes one access log line per request. 5xx responses log at
// error level and 4xx at warn.
func Logging(config LoggingConfig) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Logger == nil {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", r.RemoteAddr,
				"request_id", GetRequestID(r.Context()),
			}
			if r.Header.Get("HX-Request") == "true" {
				fields = append(fields, "htmx", true)
			}
			if config.Debug {
				fields = append(fields, "query", r.URL.RawQuery, "user_agent", r.UserAgent())
			}

			switch {
			case status >= http.StatusInternalServerError:
				config.Logger.Error("http request", fields...)
			case status >= http.StatusBadRequest:
				config.Logger.Warn("http request", fields...)
			case config.Debug:
				config.Logger.Debug("http request", fields...)
			default:
				config.Logger.Info("http request", fields...)
			}
		})
	}
}
