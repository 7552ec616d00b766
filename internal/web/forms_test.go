// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
)

func TestSubmitContact(t *testing.T) {
	t.Run("stores and redirects", func(t *testing.T) {
		h := newHarness(t, "")
		rec := h.do(publicPost("/contact", url.Values{
			"name":    {"Ayşe Yılmaz"},
			"email":   {"ayse@example.com"},
			"message": {"Salon için parke bakıyoruz."},
		}))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if got := rec.Header().Get("Location"); got != "/contact?sent=1" {
			t.Errorf("Location = %q, want %q", got, "/contact?sent=1")
		}
		if len(h.catalog.contacts) != 1 || h.catalog.contacts[0].Name != "Ayşe Yılmaz" {
			t.Errorf("contacts = %+v, want one from Ayşe Yılmaz", h.catalog.contacts)
		}
	})

	t.Run("validation errors re-render", func(t *testing.T) {
		h := newHarness(t, "")
		h.catalog.contactErr = apperrors.ValidationFailed(map[string]string{"email": "must be a valid email"})
		rec := h.do(publicPost("/contact", url.Values{"name": {"Ayşe"}, "email": {"nope"}}))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "must be a valid email") {
			t.Error("form should show the field error")
		}
		if !strings.Contains(body, `value="Ayşe"`) {
			t.Error("form should keep the submitted values")
		}
	})

	t.Run("htmx redirect", func(t *testing.T) {
		h := newHarness(t, "/shop/")
		req := publicPost("/shop/contact", url.Values{"name": {"Ayşe"}, "email": {"ayse@example.com"}, "message": {"Merhaba"}})
		req.Header.Set(headerHXRequest, "true")
		rec := h.do(req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if got := rec.Header().Get(headerHXRedirect); got != "/shop/contact?sent=1" {
			t.Errorf("HX-Redirect = %q, want %q", got, "/shop/contact?sent=1")
		}
	})
}

func TestSubmitQuote(t *testing.T) {
	complete := url.Values{
		"product_name":   {"Meşe Lamine"},
		"area_sqm":       {"42,5"},
		"delivery_city":  {"İstanbul"},
		"service_type":   {models.ServiceFull},
		"customer_name":  {"Mehmet Demir"},
		"customer_phone": {"+90 532 123 45 67"},
		"customer_email": {"mehmet@example.com"},
	}
	with := func(step string) url.Values {
		v := url.Values{}
		for k, vs := range complete {
			v[k] = vs
		}
		v.Set("step", step)
		return v
	}

	t.Run("first step advances", func(t *testing.T) {
		h := newHarness(t, "")
		rec := h.do(publicPost("/get-quote", url.Values{"step": {"1"}, "product_name": {"Meşe Lamine"}, "area_sqm": {"12"}}))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), `name="step" value="2"`) {
			t.Error("form should move to step 2")
		}
		if len(h.catalog.quotes) != 0 {
			t.Error("intermediate step must not store a quote")
		}
	})

	t.Run("first step rejects bad area", func(t *testing.T) {
		h := newHarness(t, "")
		rec := h.do(publicPost("/get-quote", url.Values{"step": {"1"}, "product_name": {"Meşe Lamine"}, "area_sqm": {"çok"}}))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
		}
		if !strings.Contains(rec.Body.String(), `name="step" value="1"`) {
			t.Error("form should stay on step 1")
		}
	})

	t.Run("back keeps values", func(t *testing.T) {
		h := newHarness(t, "")
		form := with("2")
		form.Set("action", "back")
		rec := h.do(publicPost("/get-quote", form))

		body := rec.Body.String()
		if !strings.Contains(body, `name="step" value="1"`) {
			t.Error("back should return to step 1")
		}
		if !strings.Contains(body, "İstanbul") {
			t.Error("later step values should be carried along")
		}
	})

	t.Run("last step submits", func(t *testing.T) {
		h := newHarness(t, "")
		rec := h.do(publicPost("/get-quote", with("3")))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if got := rec.Header().Get("Location"); got != "/get-quote?submitted=1" {
			t.Errorf("Location = %q, want %q", got, "/get-quote?submitted=1")
		}
		if len(h.catalog.quotes) != 1 {
			t.Fatalf("quotes = %d, want 1", len(h.catalog.quotes))
		}
		if got := h.catalog.quotes[0].AreaSqm; got != 42.5 {
			t.Errorf("AreaSqm = %v, want 42.5", got)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		h := newHarness(t, "")
		rec := h.do(publicPost("/admin/login", url.Values{"email": {"admin@example.com"}, "password": {"nope"}}))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
		}
		if !strings.Contains(rec.Body.String(), "E-posta veya şifre hatalı.") {
			t.Error("login should show the credential error")
		}
		if c := cookieNamed(rec, CookieSession); c != nil {
			t.Errorf("session cookie = %q, want none", c.Value)
		}
	})

	t.Run("success honours return", func(t *testing.T) {
		h := newHarness(t, "")
		rec := h.do(publicPost("/admin/login", url.Values{
			"email":    {"admin@example.com"},
			"password": {"correct horse"},
			"return":   {"/admin/quotes?status=new"},
		}))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if got := rec.Header().Get("Location"); got != "/admin/quotes?status=new" {
			t.Errorf("Location = %q, want %q", got, "/admin/quotes?status=new")
		}
		c := cookieNamed(rec, CookieSession)
		if c == nil || c.Value == "" {
			t.Fatal("session cookie not set")
		}
		if !c.HttpOnly {
			t.Error("session cookie should be HttpOnly")
		}
	})

	t.Run("unsafe return ignored", func(t *testing.T) {
		h := newHarness(t, "")
		rec := h.do(publicPost("/admin/login", url.Values{
			"email":    {"admin@example.com"},
			"password": {"correct horse"},
			"return":   {"//evil.example"},
		}))
		if got := rec.Header().Get("Location"); got != "/admin" {
			t.Errorf("Location = %q, want %q", got, "/admin")
		}
	})
}

func TestLogout(t *testing.T) {
	h := newHarness(t, "")
	rec := h.do(adminPost(h, "/admin/logout", url.Values{}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/admin/login" {
		t.Errorf("Location = %q, want %q", got, "/admin/login")
	}
	if _, ok := h.sessions.sessions["sess-admin"]; ok {
		t.Error("session should be deleted")
	}
	if h.authn.revoked != 1 {
		t.Errorf("revoked = %d, want 1", h.authn.revoked)
	}
}

// adminPost builds an admin form post with the session cookie and its
// CSRF token.
func adminPost(h *harness, target string, form url.Values) *http.Request {
	form.Set(csrfField, "csrf-admin")
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(h.signedIn())
	return req
}

func TestSetQuoteStatus(t *testing.T) {
	h := newHarness(t, "")
	id := uuid.New()
	rec := h.do(adminPost(h, "/admin/quotes/"+id.String()+"/status", url.Values{
		"status":        {"contacted"},
		"filter_status": {"new"},
	}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := h.admin.statuses[id]; got != models.QuoteContacted {
		t.Errorf("status = %q, want %q", got, models.QuoteContacted)
	}
	if got := rec.Header().Get("Location"); !strings.HasPrefix(got, "/admin/quotes") {
		t.Errorf("Location = %q, want the quote list", got)
	}
}

func TestSaveProduct_ValidationRerenders(t *testing.T) {
	h := newHarness(t, "")
	rec := h.do(adminPost(h, "/admin/products", url.Values{"slug": {"mese"}}))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if len(h.admin.saved) != 0 {
		t.Error("invalid product must not be saved")
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12", 12, false},
		{"12.5", 12.5, false},
		{"12,5", 12.5, false},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDecimal(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDecimal(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDecimal(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
