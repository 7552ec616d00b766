// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"fmt"

	"github.com/skursatToklucu/ozanparquet/internal/router"
	"github.com/skursatToklucu/ozanparquet/internal/web"
)

// initWeb builds the session adapter, the page middleware and the web
// handler. Requires initAuth and initServices.
func (app *Application) initWeb(ic *initContext) error {
	base := router.NewBasePath(app.Config.Server.BasePath)

	// The session cookie is scoped to the base path so two sites under one
	// host keep separate sessions.
	sessions := web.NewSessions(ic.sessionStore, ic.authService, web.CookieConfig{
		Secure:   app.Config.Auth.CookieSecure,
		SameSite: parseSameSite(app.Config.Auth.CookieSameSite),
		Path:     base.String(),
	}, app.Logger)

	mw := web.NewMiddleware(sessions, web.MiddlewareConfig{
		BasePath:     base,
		CheckTimeout: app.Config.Auth.CheckTimeout,
		CookieSecure: app.Config.Auth.CookieSecure,
	}, app.Logger)

	var observer web.Observer
	if ic.metrics != nil {
		observer = ic.metrics
	}

	h, err := web.New(ic.catalogService, ic.adminService, mw, observer, web.Config{
		BasePath:  base,
		PublicURL: app.Config.Server.PublicURL,
		Version:   Version,
	}, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}
	ic.webHandler = h

	app.Logger.Info("Web UI initialized",
		"base_path", base.String(),
		"mount", h.MountPath(),
	)
	return nil
}
