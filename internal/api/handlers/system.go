// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package handlers

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
)

// Component health values.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusUnknown   = "unknown"
)

// SystemHandler handles health and version endpoints.
type SystemHandler struct {
	BaseHandler
	version        string
	commit         string
	buildTime      string
	startedAt      time.Time
	healthCheckers map[string]HealthChecker
	mu             sync.RWMutex
}

// HealthChecker is a function that checks the health of a component.
type HealthChecker func(ctx context.Context) *HealthStatus

// NewSystemHandler creates a new system handler.
func NewSystemHandler(version, commit, buildTime string, log *logger.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler:    NewBaseHandler(log),
		version:        version,
		commit:         commit,
		buildTime:      buildTime,
		startedAt:      time.Now(),
		healthCheckers: make(map[string]HealthChecker),
	}
}

// RegisterHealthChecker registers a health checker for a component.
func (h *SystemHandler) RegisterHealthChecker(name string, checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.healthCheckers[name] = checker
}

// ============================================================================
// Response types
// ============================================================================

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status     string                   `json:"status"`
	Version    string                   `json:"version"`
	Uptime     int64                    `json:"uptime_seconds"`
	Components map[string]*HealthStatus `json:"components,omitempty"`
}

// HealthStatus represents the health status of a component.
type HealthStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Latency   int64  `json:"latency_ms,omitempty"`
	CheckedAt string `json:"checked_at,omitempty"`
}

// ReadinessResponse represents the readiness check response.
type ReadinessResponse struct {
	Status     string                   `json:"status"`
	Components map[string]*HealthStatus `json:"components,omitempty"`
}

// VersionResponse represents version information.
type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
}

// ============================================================================
// Handlers
// ============================================================================

// Health handles GET /health: every component with an overall status.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := h.check(r.Context(), 5*time.Second)
	health := &HealthResponse{
		Status:     StatusHealthy,
		Version:    h.version,
		Uptime:     int64(time.Since(h.startedAt).Seconds()),
		Components: components,
	}
	for _, status := range components {
		if status.Status == StatusUnhealthy {
			health.Status = StatusUnhealthy
		}
	}

	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	h.JSON(w, statusCode, health)
}

// Liveness handles GET /healthz.
func (h *SystemHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	h.OK(w, map[string]string{"status": "alive"})
}

// Readiness handles GET /ready. Any unhealthy component means not ready.
func (h *SystemHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := &ReadinessResponse{
		Status:     "ready",
		Components: h.check(r.Context(), 3*time.Second),
	}
	for name, status := range resp.Components {
		if status.Status == StatusUnhealthy {
			resp.Status = "not_ready"
			h.logger.Warn("readiness check failed", "component", name, "message", status.Message)
		}
	}

	if resp.Status == "ready" {
		h.OK(w, resp)
		return
	}
	h.JSON(w, http.StatusServiceUnavailable, resp)
}

// Version handles GET /api/v1/version.
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	h.OK(w, VersionResponse{
		Version:   h.version,
		Commit:    h.commit,
		BuildTime: h.buildTime,
		GoVersion: runtime.Version(),
	})
}

// check runs all registered checkers in parallel within timeout.
func (h *SystemHandler) check(ctx context.Context, timeout time.Duration) map[string]*HealthStatus {
	h.mu.RLock()
	checkers := make(map[string]HealthChecker, len(h.healthCheckers))
	for name, checker := range h.healthCheckers {
		checkers[name] = checker
	}
	h.mu.RUnlock()

	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		out = make(map[string]*HealthStatus, len(checkers))
	)
	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()

			start := time.Now()
			status := checker(checkCtx)
			if status == nil {
				status = &HealthStatus{Status: StatusUnknown}
			}
			status.Latency = time.Since(start).Milliseconds()
			status.CheckedAt = time.Now().UTC().Format(time.RFC3339)

			mu.Lock()
			out[name] = status
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()
	return out
}

// ============================================================================
// Health checker helpers
// ============================================================================

// PingHealthChecker reports a component healthy when pingFn succeeds.
func PingHealthChecker(pingFn func(ctx context.Context) error) HealthChecker {
	return func(ctx context.Context) *HealthStatus {
		if err := pingFn(ctx); err != nil {
			return &HealthStatus{Status: StatusUnhealthy, Message: err.Error()}
		}
		return &HealthStatus{Status: StatusHealthy}
	}
}
