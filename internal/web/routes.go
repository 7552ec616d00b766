// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// RoutesConfig tunes the form endpoints.
type RoutesConfig struct {
	FormRequests int
	FormWindow   time.Duration
	MaxFormBytes int64
}

// MountPath is where Routes must be mounted: the base path without its
// trailing slash, or "/".
func (h *Handler) MountPath() string {
	if p := strings.TrimSuffix(h.base.String(), "/"); p != "" {
		return p
	}
	return "/"
}

// Routes returns the router for every page, form and asset. Paths are
// relative to MountPath.
func (h *Handler) Routes(cfg RoutesConfig) chi.Router {
	if cfg.MaxFormBytes <= 0 {
		cfg.MaxFormBytes = 1 << 20
	}

	r := chi.NewRouter()
	r.Use(SecureHeaders)
	r.Use(RecoverPanic(h))

	static := http.StripPrefix(h.base.Join("/static/"), http.FileServer(http.FS(StaticFS())))
	r.Handle("/static/*", static)
	r.Get("/404.html", h.RedirectMarker)

	r.Group(func(r chi.Router) {
		r.Use(h.mw.Session)
		r.Use(MaxRequestBody(cfg.MaxFormBytes))

		// Public pages and forms: double-submit CSRF cookie.
		r.Group(func(r chi.Router) {
			r.Use(h.mw.PublicCSRF)

			r.Group(func(r chi.Router) {
				r.Use(FormRateLimit(cfg.FormRequests, cfg.FormWindow))
				r.Post("/contact", h.SubmitContact)
				r.Post("/get-quote", h.SubmitQuote)
				r.Post("/admin/login", h.Login)
			})

			r.Get("/*", h.ServePage)
		})

		// Admin actions: settled session and session-bound CSRF token.
		r.Group(func(r chi.Router) {
			r.Use(h.mw.AdminRequired)
			r.Use(NoCache)

			r.Post("/admin/logout", h.Logout)
			r.Post("/admin/products", h.SaveProduct)
			r.Post("/admin/products/{id}/delete", h.DeleteProduct)
			r.Post("/admin/categories", h.SaveCategory)
			r.Post("/admin/categories/{id}/delete", h.DeleteCategory)
			r.Post("/admin/quotes/{id}/status", h.SetQuoteStatus)
			r.Post("/admin/quotes/{id}/delete", h.DeleteQuote)
			r.Post("/admin/settings", h.UpdateSettings)
		})
	})

	return r
}
