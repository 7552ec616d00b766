// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/httprate"

	"github.com/skursatToklucu/ozanparquet/internal/auth"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/crypto"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
	"github.com/skursatToklucu/ozanparquet/internal/router"
)

// Middleware contains middleware dependencies.
type Middleware struct {
	sessions     *Sessions
	base         router.BasePath
	checkTimeout time.Duration
	secure       bool
	logger       *logger.Logger
}

// MiddlewareConfig contains middleware configuration.
type MiddlewareConfig struct {
	BasePath router.BasePath
	// CheckTimeout bounds how long a request waits for the session check
	// before rendering with a pending state.
	CheckTimeout time.Duration
	CookieSecure bool
}

// NewMiddleware creates a new Middleware instance.
func NewMiddleware(sessions *Sessions, cfg MiddlewareConfig, log *logger.Logger) *Middleware {
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = 2 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Middleware{
		sessions:     sessions,
		base:         router.NewBasePath(string(cfg.BasePath)),
		checkTimeout: cfg.CheckTimeout,
		secure:       cfg.CookieSecure,
		logger:       log.Named("web"),
	}
}

// Session attaches a pending auth.Session to the request. The check is
// only started by awaitSession, so public pages never touch the session
// store.
func (m *Middleware) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visitor := m.sessions.Visitor(w, r)
		sess := auth.NewSession(visitor, m.logger)

		ctx := context.WithValue(r.Context(), ContextKeySession, sess)
		ctx = context.WithValue(ctx, ContextKeyVisitor, visitor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// awaitSession starts the session check, waits up to the check budget and
// returns the state.
func (m *Middleware) awaitSession(r *http.Request) auth.State {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		return auth.StateAnonymous
	}
	sess.Start(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), m.checkTimeout)
	defer cancel()
	return sess.Wait(ctx)
}

// PublicCSRF issues the double-submit cookie used by public forms and the
// login form.
func (m *Middleware) PublicCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(CookieCSRF); err == nil && len(c.Value) >= 32 {
			token = c.Value
		} else {
			var err error
			token, err = crypto.RandomToken(32)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CookieCSRF,
				Value:    token,
				Path:     m.base.String(),
				HttpOnly: true,
				Secure:   m.secure || r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}

		if isUnsafeMethod(r.Method) && !crypto.ConstantTimeEqual(submittedCSRF(r), token) {
			m.logger.Warn("CSRF validation failed", "path", r.URL.Path, "method", r.Method)
			http.Error(w, "CSRF validation failed", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyCSRFToken, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminRequired rejects requests without a settled admin session and
// validates the session-bound CSRF token on state-changing methods.
func (m *Middleware) AdminRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.awaitSession(r) != auth.StateAuthenticated {
			m.redirectToLogin(w, r)
			return
		}

		if isUnsafeMethod(r.Method) {
			expected := ""
			if v := GetVisitorFromContext(r.Context()); v != nil {
				expected = v.CSRFToken()
			}
			if expected == "" || !crypto.ConstantTimeEqual(submittedCSRF(r), expected) {
				m.logger.Warn("admin CSRF validation failed", "path", r.URL.Path, "method", r.Method)
				http.Error(w, "CSRF validation failed", http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// redirectToLogin sends the visitor to the login view with a return URL.
func (m *Middleware) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	login := m.base.Join(router.PathAdminLogin)

	// For HTMX requests, send HX-Redirect header
	if isHTMX(r) {
		w.Header().Set(headerHXRedirect, login)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	returnURL := m.base.Strip(r.URL.Path)
	if r.Method == http.MethodGet && returnURL != router.PathAdminLogin && isSafeReturnURL(returnURL) {
		login += "?return=" + url.QueryEscape(returnURL)
	}
	http.Redirect(w, r, login, http.StatusSeeOther)
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

func submittedCSRF(r *http.Request) string {
	if token := r.Header.Get("X-CSRF-Token"); token != "" {
		return token
	}
	return r.PostFormValue(csrfField)
}

// FormRateLimit limits public form and login submissions per client IP.
func FormRateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		requests = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Too many requests. Please wait a minute and try again.", http.StatusTooManyRequests)
		})),
	)
}

// MaxRequestBody limits the size of request bodies.
func MaxRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NoCache middleware adds headers to prevent caching.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// SecureHeaders adds security headers to response.
// Inline scripts carry the history rewrite on full document loads.
func SecureHeaders(next http.Handler) http.Handler {
	const csp = "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline' https://unpkg.com; " +
		"style-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data: https:; font-src 'self'; connect-src 'self'; " +
		"frame-ancestors 'none'; base-uri 'self'; form-action 'self'"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", csp)
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}
		w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=(), usb=()")
		next.ServeHTTP(w, r)
	})
}

// RecoverPanic middleware recovers from panics and shows error page.
func RecoverPanic(h *Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					h.logger.Error("panic recovered in web handler",
						"error", err,
						"path", r.URL.Path,
						"method", r.Method,
					)
					h.RenderError(w, r, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
