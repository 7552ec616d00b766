// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/auth"
	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	redisrepo "github.com/skursatToklucu/ozanparquet/internal/repository/redis"
	"github.com/skursatToklucu/ozanparquet/internal/router"
	"github.com/skursatToklucu/ozanparquet/internal/services/catalog"
)

// ============================================================================
// fakeCatalog: canned storefront data
// ============================================================================

type fakeCatalog struct {
	mu          sync.Mutex
	lastFilter  models.ProductFilter
	lastGallery string
	quotes      []*models.QuoteRequest
	contacts    []*models.ContactSubmission
	contactErr  error
}

func (f *fakeCatalog) Layout(context.Context) (*catalog.Layout, error) {
	return &catalog.Layout{
		Categories: []*models.Category{{ID: uuid.New(), Name: "Laminat Parke", Slug: "laminat-parke"}},
		Settings:   models.SiteSettings{models.SettingCompanyName: json.RawMessage(`"Ozan Parke"`)},
	}, nil
}

func (f *fakeCatalog) Home(context.Context) (*catalog.HomePage, error) {
	return &catalog.HomePage{HeroTitle: "Doğal Zeminler"}, nil
}

func (f *fakeCatalog) Products(_ context.Context, filter models.ProductFilter) (*catalog.ProductListPage, error) {
	f.mu.Lock()
	f.lastFilter = filter
	f.mu.Unlock()
	return &catalog.ProductListPage{
		Filter:   filter,
		Products: []*models.Product{{ID: uuid.New(), Name: "Meşe Lamine", Slug: "mese-lamine", InStock: true}},
	}, nil
}

func (f *fakeCatalog) ProductDetail(_ context.Context, slug string) (*catalog.ProductDetailPage, error) {
	if slug != "mese-lamine" {
		return nil, apperrors.NotFound("product")
	}
	return &catalog.ProductDetailPage{Product: &models.Product{ID: uuid.New(), Name: "Meşe Lamine", Slug: slug}}, nil
}

func (f *fakeCatalog) Blog(context.Context) ([]*models.BlogPost, error) {
	return nil, nil
}

func (f *fakeCatalog) BlogPost(_ context.Context, slug string) (*catalog.BlogDetailPage, error) {
	if slug != "parke-bakimi" && slug != "ahşap-parke" {
		return nil, apperrors.NotFound("post")
	}
	return &catalog.BlogDetailPage{Post: &models.BlogPost{Title: "Parke Bakımı", Slug: slug, Content: "Birinci.\n\nİkinci."}}, nil
}

func (f *fakeCatalog) Gallery(_ context.Context, category string) (*catalog.GalleryPage, error) {
	f.mu.Lock()
	f.lastGallery = category
	f.mu.Unlock()
	return &catalog.GalleryPage{Selected: category}, nil
}

func (f *fakeCatalog) FAQ(context.Context) ([]models.FAQGroup, error) {
	return nil, nil
}

func (f *fakeCatalog) QuoteProducts(context.Context) ([]*models.Product, error) {
	return []*models.Product{{Name: "Meşe Lamine"}}, nil
}

func (f *fakeCatalog) SubmitQuote(_ context.Context, q *models.QuoteRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes = append(f.quotes, q)
	return nil
}

func (f *fakeCatalog) SubmitContact(_ context.Context, c *models.ContactSubmission) error {
	if f.contactErr != nil {
		return f.contactErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, c)
	return nil
}

func (f *fakeCatalog) filter() models.ProductFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastFilter
}

// ============================================================================
// fakeAdmin: admin back end with in-memory quotes
// ============================================================================

type fakeAdmin struct {
	mu       sync.Mutex
	statuses map[uuid.UUID]models.QuoteStatus
	saved    []*models.Product
}

func (f *fakeAdmin) Dashboard(context.Context) (*models.DashboardStats, error) {
	return &models.DashboardStats{Products: 12, NewQuotes: 3}, nil
}
func (f *fakeAdmin) Products(context.Context) ([]*models.Product, error) { return nil, nil }
func (f *fakeAdmin) Product(_ context.Context, id uuid.UUID) (*models.Product, error) {
	return nil, apperrors.NotFound("product")
}
func (f *fakeAdmin) SaveProduct(_ context.Context, p *models.Product) error {
	if p.Name == "" {
		return apperrors.ValidationFailed(map[string]string{"name": "is required"})
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, p)
	return nil
}
func (f *fakeAdmin) DeleteProduct(context.Context, uuid.UUID) error         { return nil }
func (f *fakeAdmin) Categories(context.Context) ([]*models.Category, error) { return nil, nil }
func (f *fakeAdmin) Category(context.Context, uuid.UUID) (*models.Category, error) {
	return nil, apperrors.NotFound("category")
}
func (f *fakeAdmin) SaveCategory(context.Context, *models.Category) error { return nil }
func (f *fakeAdmin) DeleteCategory(context.Context, uuid.UUID) error      { return nil }
func (f *fakeAdmin) Quotes(context.Context, models.QuoteFilter) ([]*models.QuoteRequest, error) {
	return nil, nil
}
func (f *fakeAdmin) SetQuoteStatus(_ context.Context, id uuid.UUID, status models.QuoteStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses == nil {
		f.statuses = make(map[uuid.UUID]models.QuoteStatus)
	}
	f.statuses[id] = status
	return nil
}
func (f *fakeAdmin) DeleteQuote(context.Context, uuid.UUID) error { return nil }
func (f *fakeAdmin) Settings(context.Context) ([]*models.SiteSetting, error) {
	return []*models.SiteSetting{
		{Key: models.SettingCompanyName, Value: json.RawMessage(`"Ozan Parke"`), Type: "text"},
		{Key: models.SettingCarouselImages, Value: json.RawMessage(`[]`), Type: "images"},
	}, nil
}
func (f *fakeAdmin) UpdateSettings(context.Context, map[string]json.RawMessage) error { return nil }

// ============================================================================
// fakeSessions / fakeAuthn: session storage and token checks
// ============================================================================

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*redisrepo.Session
	hold     chan struct{}
	next     int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*redisrepo.Session)}
}

func (s *fakeSessions) Create(_ context.Context, adminID, email, accessToken, _, _ string) (*redisrepo.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := fmt.Sprintf("sess-%d", s.next)
	sess := &redisrepo.Session{ID: id, AdminID: adminID, Email: email, AccessToken: accessToken, CSRFToken: "csrf-" + id}
	s.sessions[id] = sess
	return sess, nil
}

func (s *fakeSessions) Get(ctx context.Context, id string) (*redisrepo.Session, error) {
	if s.hold != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.hold:
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, redisrepo.ErrSessionNotFound
	}
	return sess, nil
}

func (s *fakeSessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *fakeSessions) TTL() time.Duration { return time.Hour }

func (s *fakeSessions) put(sess *redisrepo.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

type fakeAuthn struct {
	user     *models.AdminUser
	password string
	revoked  int
	parsed   atomic.Int32
}

func newFakeAuthn() *fakeAuthn {
	return &fakeAuthn{
		user:     &models.AdminUser{ID: uuid.New(), Email: "admin@example.com", FullName: "Ozan", Role: models.RoleAdmin},
		password: "correct horse",
	}
}

func (a *fakeAuthn) token() string { return "tok-" + a.user.ID.String() }

func (a *fakeAuthn) Authenticate(_ context.Context, cred auth.Credential) (*models.AdminUser, error) {
	if cred.Email != a.user.Email || cred.Password != a.password {
		return nil, apperrors.InvalidCredentials()
	}
	return a.user, nil
}

func (a *fakeAuthn) IssueToken(u *models.AdminUser) (string, *auth.Claims, error) {
	return a.token(), &auth.Claims{Email: u.Email}, nil
}

func (a *fakeAuthn) ParseToken(_ context.Context, token string) (*auth.Claims, error) {
	a.parsed.Add(1)
	if token != a.token() {
		return nil, apperrors.Unauthorized("invalid token")
	}
	return &auth.Claims{Email: a.user.Email}, nil
}

func (a *fakeAuthn) RevokeToken(context.Context, *auth.Claims) error {
	a.revoked++
	return nil
}

func (a *fakeAuthn) AdminFromClaims(context.Context, *auth.Claims) (*auth.Admin, error) {
	return auth.ToAdmin(a.user), nil
}

// ============================================================================
// test harness
// ============================================================================

const testCSRF = "0123456789abcdef0123456789abcdef0123456789ab"

type harness struct {
	handler  *Handler
	routes   http.Handler
	catalog  *fakeCatalog
	admin    *fakeAdmin
	sessions *fakeSessions
	authn    *fakeAuthn
}

func newHarness(t *testing.T, base string) *harness {
	t.Helper()
	h := &harness{
		catalog:  &fakeCatalog{},
		admin:    &fakeAdmin{},
		sessions: newFakeSessions(),
		authn:    newFakeAuthn(),
	}
	sessions := NewSessions(h.sessions, h.authn, CookieConfig{}, nil)
	mw := NewMiddleware(sessions, MiddlewareConfig{BasePath: router.BasePath(base), CheckTimeout: 200 * time.Millisecond}, nil)
	handler, err := New(h.catalog, h.admin, mw, nil, Config{BasePath: router.BasePath(base), Version: "test"}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.handler = handler
	mux := chi.NewRouter()
	mux.Mount(handler.MountPath(), handler.Routes(RoutesConfig{FormRequests: 1000}))
	h.routes = mux
	return h
}

// signedIn stores a session for the fake admin and returns its cookie.
func (h *harness) signedIn() *http.Cookie {
	h.sessions.put(&redisrepo.Session{
		ID:          "sess-admin",
		AdminID:     h.authn.user.ID.String(),
		Email:       h.authn.user.Email,
		AccessToken: h.authn.token(),
		CSRFToken:   "csrf-admin",
	})
	return &http.Cookie{Name: CookieSession, Value: "sess-admin"}
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.routes.ServeHTTP(rec, req)
	return rec
}

func boosted(req *http.Request) *http.Request {
	req.Header.Set(headerHXRequest, "true")
	req.Header.Set(headerHXBoosted, "true")
	return req
}

// publicPost builds a form post carrying the double-submit CSRF pair.
func publicPost(target string, form url.Values) *http.Request {
	form.Set(csrfField, testCSRF)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CookieCSRF, Value: testCSRF})
	return req
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
