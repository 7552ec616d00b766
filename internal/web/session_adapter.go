// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/skursatToklucu/ozanparquet/internal/auth"
	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
	redisrepo "github.com/skursatToklucu/ozanparquet/internal/repository/redis"
)

// CookieConfig holds session cookie settings wired from app config.
type CookieConfig struct {
	Secure   bool          // Force Secure flag (overrides TLS auto-detection)
	SameSite http.SameSite // default Lax
	Path     string        // default "/"
}

// SessionStore is the Redis-backed admin session storage.
type SessionStore interface {
	Create(ctx context.Context, adminID, email, accessToken, userAgent, ip string) (*redisrepo.Session, error)
	Get(ctx context.Context, id string) (*redisrepo.Session, error)
	Delete(ctx context.Context, id string) error
	TTL() time.Duration
}

// Authenticator checks credentials and access tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, cred auth.Credential) (*models.AdminUser, error)
	IssueToken(user *models.AdminUser) (string, *auth.Claims, error)
	ParseToken(ctx context.Context, token string) (*auth.Claims, error)
	RevokeToken(ctx context.Context, claims *auth.Claims) error
	AdminFromClaims(ctx context.Context, claims *auth.Claims) (*auth.Admin, error)
}

// Sessions binds the session cookie, the session store and the
// authenticator into per-request collaborators.
type Sessions struct {
	store  SessionStore
	authn  Authenticator
	cookie CookieConfig
	logger *logger.Logger
}

// NewSessions creates the session adapter.
func NewSessions(store SessionStore, authn Authenticator, cookie CookieConfig, log *logger.Logger) *Sessions {
	if cookie.SameSite == 0 {
		cookie.SameSite = http.SameSiteLaxMode
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Sessions{store: store, authn: authn, cookie: cookie, logger: log.Named("sessions")}
}

// Visitor returns the collaborator for one request. It must not outlive
// the request.
func (s *Sessions) Visitor(w http.ResponseWriter, r *http.Request) *Visitor {
	return &Visitor{sessions: s, w: w, r: r}
}

// Visitor implements auth.Collaborator for one request: the session comes
// from the request cookie and sign-in/out write the response cookie.
type Visitor struct {
	sessions *Sessions
	w        http.ResponseWriter
	r        *http.Request

	mu      sync.Mutex
	current *redisrepo.Session
}

var _ auth.Collaborator = (*Visitor)(nil)

// CurrentAdmin resolves the session cookie to an administrator. A missing,
// expired or revoked session is (nil, nil).
func (v *Visitor) CurrentAdmin(ctx context.Context) (*auth.Admin, error) {
	id := v.cookieValue()
	if id == "" {
		return nil, nil
	}

	sess, err := v.sessions.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, redisrepo.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	claims, err := v.sessions.authn.ParseToken(ctx, sess.AccessToken)
	if err != nil {
		if isAuthRejection(err) {
			return nil, nil
		}
		return nil, err
	}
	admin, err := v.sessions.authn.AdminFromClaims(ctx, claims)
	if err != nil {
		if isAuthRejection(err) {
			return nil, nil
		}
		return nil, err
	}

	v.mu.Lock()
	v.current = sess
	v.mu.Unlock()
	return admin, nil
}

// SignIn verifies the credential, issues a token and starts a session. Any
// session the browser already carried is dropped first.
func (v *Visitor) SignIn(ctx context.Context, cred auth.Credential) (*auth.Admin, error) {
	user, err := v.sessions.authn.Authenticate(ctx, cred)
	if err != nil {
		return nil, err
	}
	token, _, err := v.sessions.authn.IssueToken(user)
	if err != nil {
		return nil, err
	}

	if old := v.cookieValue(); old != "" {
		if err := v.sessions.store.Delete(ctx, old); err != nil {
			v.sessions.logger.Warn("failed to drop previous session", "error", err)
		}
	}

	sess, err := v.sessions.store.Create(ctx, user.ID.String(), user.Email, token, v.r.UserAgent(), clientIP(v.r))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	v.setCookie(sess.ID, int(v.sessions.store.TTL().Seconds()))

	v.mu.Lock()
	v.current = sess
	v.mu.Unlock()

	v.sessions.logger.Info("admin signed in", "admin_id", user.ID, "ip", clientIP(v.r))
	return auth.ToAdmin(user), nil
}

// SignOut revokes the access token, deletes the session and clears the
// cookie. The cookie is cleared even when Redis fails.
func (v *Visitor) SignOut(ctx context.Context) error {
	defer v.setCookie("", -1)

	v.mu.Lock()
	v.current = nil
	v.mu.Unlock()

	id := v.cookieValue()
	if id == "" {
		return nil
	}
	sess, err := v.sessions.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, redisrepo.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	if claims, err := v.sessions.authn.ParseToken(ctx, sess.AccessToken); err == nil {
		if err := v.sessions.authn.RevokeToken(ctx, claims); err != nil {
			v.sessions.logger.Warn("failed to revoke token", "error", err)
		}
	}
	if err := v.sessions.store.Delete(ctx, id); err != nil {
		return err
	}
	v.sessions.logger.Info("admin signed out", "admin_id", sess.AdminID)
	return nil
}

// CSRFToken returns the token bound to the loaded admin session, or "".
func (v *Visitor) CSRFToken() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.current == nil {
		return ""
	}
	return v.current.CSRFToken
}

func (v *Visitor) cookieValue() string {
	c, err := v.r.Cookie(CookieSession)
	if err != nil {
		return ""
	}
	return c.Value
}

func (v *Visitor) setCookie(value string, maxAge int) {
	cfg := v.sessions.cookie
	http.SetCookie(v.w, &http.Cookie{
		Name:     CookieSession,
		Value:    value,
		Path:     cfg.Path,
		HttpOnly: true,
		Secure:   cfg.Secure || v.r.TLS != nil,
		SameSite: cfg.SameSite,
		MaxAge:   maxAge,
	})
}

func isAuthRejection(err error) bool {
	return apperrors.IsUnauthorizedError(err) || apperrors.IsForbiddenError(err)
}

// clientIP returns the remote host. Proxy headers are resolved earlier by
// the RealIP middleware.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
