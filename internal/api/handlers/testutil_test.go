// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/api"
	"github.com/skursatToklucu/ozanparquet/internal/api/handlers"
	"github.com/skursatToklucu/ozanparquet/internal/api/middleware"
	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/services/catalog"
)

// testSuite provides shared test infrastructure for handler tests.
type testSuite struct {
	router  chi.Router
	handler *api.Handlers
	catalog *fakeCatalog
}

// setupTestSuite creates a router with the system and catalog handlers.
func setupTestSuite(t *testing.T) *testSuite {
	t.Helper()

	fc := newFakeCatalog()
	h := &api.Handlers{
		System:  handlers.NewSystemHandler("test-version", "test-commit", "2026-01-01T00:00:00Z", nil),
		Catalog: handlers.NewCatalogHandler(fc, nil),
	}

	config := api.RouterConfig{
		CORSConfig:           middleware.DefaultCORSConfig(),
		RateLimitPerMinute:   1000,
		SubmissionsPerMinute: 1000,
		RequestTimeout:       5 * time.Second,
	}

	return &testSuite{
		router:  api.NewRouter(config, h),
		handler: h,
		catalog: fc,
	}
}

// ============================================================================
// Fake catalog service
// ============================================================================

type fakeCatalog struct {
	mu         sync.Mutex
	categories []*models.Category
	products   []*models.Product
	lastFilter models.ProductFilter
	quotes     []*models.QuoteRequest
	contacts   []*models.ContactSubmission
	err        error
}

func newFakeCatalog() *fakeCatalog {
	catID := uuid.New()
	return &fakeCatalog{
		categories: []*models.Category{
			{ID: catID, Name: "Laminat Parke", Slug: "laminat-parke"},
		},
		products: []*models.Product{
			{ID: uuid.New(), CategoryID: &catID, Name: "Meşe Lamine", Slug: "mese-lamine"},
			{ID: uuid.New(), CategoryID: &catID, Name: "Ceviz Klasik", Slug: "ceviz-klasik"},
		},
	}
}

func (f *fakeCatalog) Categories(ctx context.Context) ([]*models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeCatalog) Products(ctx context.Context, filter models.ProductFilter) (*catalog.ProductListPage, error) {
	f.mu.Lock()
	f.lastFilter = filter
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &catalog.ProductListPage{Filter: filter, Products: f.products, Categories: f.categories}, nil
}

func (f *fakeCatalog) ProductDetail(ctx context.Context, slug string) (*catalog.ProductDetailPage, error) {
	for i, p := range f.products {
		if p.Slug == slug {
			related := append([]*models.Product{}, f.products[:i]...)
			related = append(related, f.products[i+1:]...)
			return &catalog.ProductDetailPage{Product: p, Related: related}, nil
		}
	}
	return nil, apperrors.NotFound("product")
}

func (f *fakeCatalog) SubmitQuote(ctx context.Context, q *models.QuoteRequest) error {
	if q.CustomerName == "" {
		return apperrors.ValidationFailed(map[string]string{"customer_name": "is required"})
	}
	q.ID = uuid.New()
	q.Status = models.QuoteNew
	f.mu.Lock()
	f.quotes = append(f.quotes, q)
	f.mu.Unlock()
	return nil
}

func (f *fakeCatalog) SubmitContact(ctx context.Context, c *models.ContactSubmission) error {
	if f.err != nil {
		return f.err
	}
	c.ID = uuid.New()
	f.mu.Lock()
	f.contacts = append(f.contacts, c)
	f.mu.Unlock()
	return nil
}

// ============================================================================
// Request helpers
// ============================================================================

// doRequest performs an HTTP request against the test router.
func doRequest(t *testing.T, router http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Accept", "application/json")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// assertJSON checks that the response is valid JSON and returns the parsed body.
func assertJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	contentType := w.Header().Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var result map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Errorf("failed to parse JSON response: %v. Body: %s", err, w.Body.String())
	}
	return result
}

// assertErrorCode checks the error code in the JSON response.
func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) {
	t.Helper()
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Errorf("failed to parse error response: %v. Body: %s", err, w.Body.String())
		return
	}
	if errResp.Code != expectedCode {
		t.Errorf("expected error code %q, got %q", expectedCode, errResp.Code)
	}
}
