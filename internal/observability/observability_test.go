// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSQLOperation(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"SELECT 1", "select"},
		{"\n\t  UPDATE products SET view_count = 1", "update"},
		{"insert into x values (1)", "insert"},
		{"   ", "unknown"},
	}
	for _, tt := range tests {
		if got := SQLOperation(tt.sql); got != tt.want {
			t.Errorf("SQLOperation(%q) = %q, want %q", tt.sql, got, tt.want)
		}
	}
}

func TestMetrics_Middleware(t *testing.T) {
	m := NewMetrics()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/products/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/mese", nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
		}
	}

	got := testutil.CollectAndCount(m.httpDuration, "ozanparquet_http_request_duration_seconds")
	if got != 1 {
		t.Errorf("series = %d, want 1 (route pattern, not raw path)", got)
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.ObserveGate("denied")
	m.ObserveGate("denied")
	m.ObserveGate("granted")
	m.ObserveRender("Home")
	m.ObserveNavigation("push")
	m.ObserveSubmission("quote", nil)
	m.ObserveSubmission("quote", errors.New("invalid"))
	m.ObserveQuery("select", 3*time.Millisecond, nil)

	if got := testutil.ToFloat64(m.gateDecisions.WithLabelValues("denied")); got != 2 {
		t.Errorf("denied = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.viewRenders.WithLabelValues("Home")); got != 1 {
		t.Errorf("Home renders = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.submissions.WithLabelValues("quote", "rejected")); got != 1 {
		t.Errorf("rejected quotes = %v, want 1", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveRender("Gallery")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `ozanparquet_view_renders_total{view="Gallery"} 1`) {
		t.Errorf("metrics output missing render counter:\n%s", body)
	}
}

func TestProvider_Disabled(t *testing.T) {
	p, err := NewProvider(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if p.Enabled() {
		t.Error("Enabled() = true for default config")
	}
	called := false
	h := p.TraceMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("disabled middleware did not call next")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if id := TraceIDFromContext(context.Background()); id != "" {
		t.Errorf("TraceIDFromContext() = %q, want empty", id)
	}
}
