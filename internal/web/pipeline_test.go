// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skursatToklucu/ozanparquet/internal/router"
)

// ============================================================================
// Renderer coverage
// ============================================================================

func TestViewFunc_EveryViewHasRenderer(t *testing.T) {
	h := newHarness(t, "")
	for _, v := range router.Views() {
		if h.handler.viewFunc(v) == nil {
			t.Errorf("viewFunc(%s) = nil", v)
		}
	}
}

func TestParseTemplates_AllPages(t *testing.T) {
	h := newHarness(t, "")
	for _, name := range PageTemplateNames() {
		if !h.handler.templates.Has(name) {
			t.Errorf("template %q not parsed", name)
		}
	}
}

// ============================================================================
// Public pages
// ============================================================================

func TestServePage_FullLoadPassesFilter(t *testing.T) {
	h := newHarness(t, "")
	rec := h.do(httptest.NewRequest(http.MethodGet, "/products?color=Koyu&thickness=8mm&in_stock=on", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	f := h.catalog.filter()
	if f.Color != "Koyu" || f.Thickness != "8mm" || !f.InStockOnly {
		t.Errorf("filter = %+v, want color Koyu, thickness 8mm, in stock", f)
	}
	if got := rec.Header().Get(headerHXPushURL); got != "" {
		t.Errorf("HX-Push-Url = %q, want empty on full load", got)
	}
	if strings.Contains(rec.Body.String(), "pushState") {
		t.Error("full load should not rewrite history")
	}
	if !strings.Contains(rec.Body.String(), "Meşe Lamine") {
		t.Error("product list should contain the product")
	}
}

func TestServePage_Boosted(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		target string
		want   string
	}{
		{"root", "", "/about", "/about"},
		{"root with query", "", "/gallery?category=Salon", "/gallery?category=Salon"},
		{"base path", "/shop/", "/shop/about", "/shop/about"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.base)
			rec := h.do(boosted(httptest.NewRequest(http.MethodGet, tt.target, nil)))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if got := rec.Header().Get(headerHXPushURL); got != tt.want {
				t.Errorf("HX-Push-Url = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServePage_HistoryRestoreScrollsTop(t *testing.T) {
	h := newHarness(t, "")
	req := httptest.NewRequest(http.MethodGet, "/faq", nil)
	req.Header.Set(headerHXRequest, "true")
	req.Header.Set(headerHXHistoryRestore, "true")
	rec := h.do(req)

	if got := rec.Header().Get(headerHXTrigger); got != eventScrollTop {
		t.Errorf("HX-Trigger = %q, want %q", got, eventScrollTop)
	}
	if got := rec.Header().Get(headerHXPushURL); got != "" {
		t.Errorf("HX-Push-Url = %q, want empty on restore", got)
	}
}

func TestServePage_EncodedSlugSameOnEveryEvent(t *testing.T) {
	const target = "/blog/ah%C5%9Fap-parke"
	tests := []struct {
		name  string
		setup func(r *http.Request) *http.Request
	}{
		{"full load", func(r *http.Request) *http.Request { return r }},
		{"boosted", boosted},
		{"history restore", func(r *http.Request) *http.Request {
			r.Header.Set(headerHXRequest, "true")
			r.Header.Set(headerHXHistoryRestore, "true")
			return r
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			rec := h.do(tt.setup(httptest.NewRequest(http.MethodGet, target, nil)))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if !strings.Contains(rec.Body.String(), "Parke Bakımı") {
				t.Error("blog detail should render the post")
			}
			if got := rec.Header().Get(headerHXPushURL); got != "" && got != target {
				t.Errorf("HX-Push-Url = %q, want %q", got, target)
			}
		})
	}
}

func TestServePage_NotFound(t *testing.T) {
	h := newHarness(t, "")
	for _, target := range []string{"/products/missing", "/blog/missing"} {
		rec := h.do(httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want %d", target, rec.Code, http.StatusNotFound)
		}
	}
}

func TestServePage_UnknownPathRendersHome(t *testing.T) {
	h := newHarness(t, "")
	rec := h.do(httptest.NewRequest(http.MethodGet, "/no/such/page", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Doğal Zeminler") {
		t.Error("unknown path should render the home view")
	}
}

// ============================================================================
// Admin gate
// ============================================================================

func TestServePage_DeniedFullLoad(t *testing.T) {
	h := newHarness(t, "")
	rec := h.do(httptest.NewRequest(http.MethodGet, "/admin/products", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "history.pushState") {
		t.Error("denied full load should push the login URL")
	}
	if !strings.Contains(body, "Yönetim paneline giriş yapın") {
		t.Error("denied full load should render the login view")
	}
	if !strings.Contains(body, `name="return" value="/admin/products"`) {
		t.Error("login form should carry the denied path")
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}

func TestServePage_DeniedBoosted(t *testing.T) {
	h := newHarness(t, "")
	rec := h.do(boosted(httptest.NewRequest(http.MethodGet, "/admin/products", nil)))

	want := "/admin/login?return=%2Fadmin%2Fproducts"
	if got := rec.Header().Get(headerHXPushURL); got != want {
		t.Errorf("HX-Push-Url = %q, want %q", got, want)
	}
}

func TestServePage_DeniedDashboardHasNoReturn(t *testing.T) {
	h := newHarness(t, "")
	rec := h.do(boosted(httptest.NewRequest(http.MethodGet, "/admin", nil)))

	if got := rec.Header().Get(headerHXPushURL); got != "/admin/login" {
		t.Errorf("HX-Push-Url = %q, want %q", got, "/admin/login")
	}
}

func TestServePage_SessionCheckOnlyForAdminPaths(t *testing.T) {
	h := newHarness(t, "")
	for _, target := range []string{"/", "/about", "/products/mese-lamine", "/blog/parke-bakimi"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.AddCookie(h.signedIn())
		if rec := h.do(req); rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", target, rec.Code, http.StatusOK)
		}
	}
	if n := h.authn.parsed.Load(); n != 0 {
		t.Fatalf("public pages checked the session %d times, want 0", n)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(h.signedIn())
	if rec := h.do(req); rec.Code != http.StatusOK {
		t.Fatalf("GET /admin status = %d, want %d", rec.Code, http.StatusOK)
	}
	if n := h.authn.parsed.Load(); n != 1 {
		t.Errorf("admin page checked the session %d times, want 1", n)
	}
}

func TestServePage_GrantedDashboard(t *testing.T) {
	h := newHarness(t, "")
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(h.signedIn())
	rec := h.do(req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Yeni Teklifler") {
		t.Error("granted request should render the dashboard")
	}
	if !strings.Contains(body, "csrf-admin") {
		t.Error("admin pages should carry the session CSRF token")
	}
}

func TestServePage_CheckingWhileSessionPending(t *testing.T) {
	h := newHarness(t, "")
	hold := make(chan struct{})
	h.sessions.hold = hold
	t.Cleanup(func() { close(hold) })
	req := httptest.NewRequest(http.MethodGet, "/admin/quotes", nil)
	req.AddCookie(&http.Cookie{Name: CookieSession, Value: "slow"})
	rec := h.do(req)

	body := rec.Body.String()
	if !strings.Contains(body, `http-equiv="refresh" content="1"`) {
		t.Error("checking page should refresh itself")
	}
	if !strings.Contains(body, "Oturum kontrol ediliyor") {
		t.Error("checking page should render the placeholder")
	}
	if strings.Contains(body, "Yönetim paneline giriş yapın") {
		t.Error("pending session must not render the login view")
	}
}

func TestServePage_LoginWhenSignedInGoesToReturn(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"no return", "/admin/login", "/admin"},
		{"safe return", "/admin/login?return=%2Fadmin%2Fquotes", "/admin/quotes"},
		{"unsafe return", "/admin/login?return=%2F%2Fevil.example", "/admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			req := boosted(httptest.NewRequest(http.MethodGet, tt.target, nil))
			req.AddCookie(h.signedIn())
			rec := h.do(req)

			if got := rec.Header().Get(headerHXPushURL); got != tt.want {
				t.Errorf("HX-Push-Url = %q, want %q", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Deep-link marker
// ============================================================================

func TestRedirectMarker(t *testing.T) {
	tests := []struct {
		name       string
		base       string
		target     string
		wantCookie string
		wantLoc    string
	}{
		{"root", "", "/404.html?p=%2Fproducts%3Fcolor%3DKoyu", "%2Fproducts%3Fcolor%3DKoyu", "/"},
		{"adds base", "/shop/", "/shop/404.html?p=%2Fabout", "%2Fshop%2Fabout", "/shop/"},
		{"keeps base", "/shop/", "/shop/404.html?p=%2Fshop%2Ffaq", "%2Fshop%2Ffaq", "/shop/"},
		{"absolute url", "", "/404.html?p=https%3A%2F%2Fevil.example%2F", "", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.base)
			rec := h.do(httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != http.StatusFound {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLoc {
				t.Errorf("Location = %q, want %q", got, tt.wantLoc)
			}
			c := cookieNamed(rec, CookieRedirect)
			switch {
			case tt.wantCookie == "" && c != nil:
				t.Errorf("marker cookie = %q, want none", c.Value)
			case tt.wantCookie != "" && c == nil:
				t.Errorf("marker cookie missing, want %q", tt.wantCookie)
			case c != nil && c.Value != tt.wantCookie:
				t.Errorf("marker cookie = %q, want %q", c.Value, tt.wantCookie)
			}
		})
	}
}

func TestServePage_ConsumesMarker(t *testing.T) {
	h := newHarness(t, "")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieRedirect, Value: "%2Fproducts%3Fcolor%3DGri"})
	rec := h.do(req)

	body := rec.Body.String()
	if !strings.Contains(body, "history.replaceState") {
		t.Error("marker load should replace the history entry")
	}
	if got := h.catalog.filter().Color; got != "Gri" {
		t.Errorf("filter color = %q, want %q", got, "Gri")
	}
	c := cookieNamed(rec, CookieRedirect)
	if c == nil || c.MaxAge >= 0 {
		t.Error("marker cookie should be cleared")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func TestLoginTarget(t *testing.T) {
	tests := []struct {
		path  string
		query string
		want  string
	}{
		{"/admin", "", "/admin/login"},
		{"/admin/products", "", "/admin/login?return=%2Fadmin%2Fproducts"},
		{"/admin/quotes", "status=new", "/admin/login?return=%2Fadmin%2Fquotes%3Fstatus%3Dnew"},
	}
	for _, tt := range tests {
		if got := loginTarget(router.PathAdminLogin, tt.path, tt.query); got != tt.want {
			t.Errorf("loginTarget(%q, %q) = %q, want %q", tt.path, tt.query, got, tt.want)
		}
	}
}

func TestEventOf(t *testing.T) {
	load := httptest.NewRequest(http.MethodGet, "/", nil)
	nav := boosted(httptest.NewRequest(http.MethodGet, "/", nil))
	pop := httptest.NewRequest(http.MethodGet, "/", nil)
	pop.Header.Set(headerHXRequest, "true")
	pop.Header.Set(headerHXHistoryRestore, "true")

	for _, tt := range []struct {
		req  *http.Request
		want navEvent
	}{{load, eventLoad}, {nav, eventNavigate}, {pop, eventPop}} {
		if got := eventOf(tt.req); got != tt.want {
			t.Errorf("eventOf() = %s, want %s", got, tt.want)
		}
	}
}
