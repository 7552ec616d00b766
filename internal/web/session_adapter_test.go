// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skursatToklucu/ozanparquet/internal/auth"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	redisrepo "github.com/skursatToklucu/ozanparquet/internal/repository/redis"
	"github.com/skursatToklucu/ozanparquet/internal/testutil"
)

func newRedisSessions(t *testing.T) (*Sessions, *fakeAuthn) {
	t.Helper()
	client, _ := testutil.NewTestRedis(t)

	store := redisrepo.NewSessionStore(client, time.Hour)
	authn := newFakeAuthn()
	return NewSessions(store, authn, CookieConfig{}, nil), authn
}

func TestVisitor_SignInRoundTrip(t *testing.T) {
	sessions, authn := newRedisSessions(t)
	ctx := context.Background()

	// Sign in on one request.
	rec := httptest.NewRecorder()
	v := sessions.Visitor(rec, httptest.NewRequest(http.MethodPost, "/admin/login", nil))
	admin, err := v.SignIn(ctx, auth.Credential{Email: authn.user.Email, Password: authn.password})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if admin.Email != authn.user.Email {
		t.Errorf("admin email = %q, want %q", admin.Email, authn.user.Email)
	}
	if v.CSRFToken() == "" {
		t.Error("CSRFToken() empty after sign-in")
	}
	cookie := cookieNamed(rec, CookieSession)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("session cookie not set")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", cookie.SameSite)
	}

	// The cookie resolves on the next request.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	next := sessions.Visitor(httptest.NewRecorder(), req)
	got, err := next.CurrentAdmin(ctx)
	if err != nil {
		t.Fatalf("CurrentAdmin() error = %v", err)
	}
	if got == nil || got.ID != authn.user.ID {
		t.Fatalf("CurrentAdmin() = %+v, want %s", got, authn.user.ID)
	}
	if next.CSRFToken() != v.CSRFToken() {
		t.Error("CSRF token should be stable for the session")
	}

	// Sign out clears the cookie and the stored session.
	outRec := httptest.NewRecorder()
	out := sessions.Visitor(outRec, req)
	if err := out.SignOut(ctx); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if c := cookieNamed(outRec, CookieSession); c == nil || c.MaxAge >= 0 {
		t.Error("SignOut should expire the cookie")
	}
	if authn.revoked != 1 {
		t.Errorf("revoked = %d, want 1", authn.revoked)
	}
	after, err := sessions.Visitor(httptest.NewRecorder(), req).CurrentAdmin(ctx)
	if err != nil || after != nil {
		t.Errorf("CurrentAdmin() after sign-out = %+v, %v; want nil, nil", after, err)
	}
}

func TestVisitor_CurrentAdmin(t *testing.T) {
	sessions, authn := newRedisSessions(t)
	ctx := context.Background()

	t.Run("no cookie", func(t *testing.T) {
		v := sessions.Visitor(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin", nil))
		admin, err := v.CurrentAdmin(ctx)
		if admin != nil || err != nil {
			t.Errorf("CurrentAdmin() = %+v, %v; want nil, nil", admin, err)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: CookieSession, Value: "missing"})
		admin, err := sessions.Visitor(httptest.NewRecorder(), req).CurrentAdmin(ctx)
		if admin != nil || err != nil {
			t.Errorf("CurrentAdmin() = %+v, %v; want nil, nil", admin, err)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		v := sessions.Visitor(rec, httptest.NewRequest(http.MethodPost, "/admin/login", nil))
		if _, err := v.SignIn(ctx, auth.Credential{Email: authn.user.Email, Password: authn.password}); err != nil {
			t.Fatalf("SignIn() error = %v", err)
		}
		// Tokens are bound to the admin ID.
		authn.user = newFakeAuthn().user

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(cookieNamed(rec, CookieSession))
		admin, err := sessions.Visitor(httptest.NewRecorder(), req).CurrentAdmin(ctx)
		if admin != nil || err != nil {
			t.Errorf("CurrentAdmin() = %+v, %v; want nil, nil", admin, err)
		}
	})
}

func TestVisitor_SignInFailure(t *testing.T) {
	sessions, authn := newRedisSessions(t)
	rec := httptest.NewRecorder()
	v := sessions.Visitor(rec, httptest.NewRequest(http.MethodPost, "/admin/login", nil))

	_, err := v.SignIn(context.Background(), auth.Credential{Email: authn.user.Email, Password: "wrong"})
	if !apperrors.IsUnauthorizedError(err) {
		t.Fatalf("SignIn() error = %v, want unauthorized", err)
	}
	if c := cookieNamed(rec, CookieSession); c != nil {
		t.Errorf("session cookie = %q, want none", c.Value)
	}
}
