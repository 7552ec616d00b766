// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"github.com/skursatToklucu/ozanparquet/internal/api"
	apimiddleware "github.com/skursatToklucu/ozanparquet/internal/api/middleware"
	"github.com/skursatToklucu/ozanparquet/internal/web"
)

// initServer builds the API server configuration and creates the server
// instance. Populates ic.serverCfg and sets app.Server.
func (app *Application) initServer(ic *initContext) {
	routerCfg := api.DefaultRouterConfig()
	routerCfg.RateLimitPerMinute = app.Config.RateLimit.APIPerMinute
	routerCfg.SubmissionsPerMinute = app.Config.RateLimit.SubmissionsPerMinute
	if app.Config.Server.RequestTimeout > 0 {
		routerCfg.RequestTimeout = app.Config.Server.RequestTimeout
	}
	routerCfg.EnableDebugLogging = app.Logger.GetLevel() == "debug"
	routerCfg.Web = web.RoutesConfig{
		FormRequests: app.Config.RateLimit.FormRequests,
		FormWindow:   app.Config.RateLimit.FormWindow,
		MaxFormBytes: parseSize(app.Config.Server.MaxRequestSize, 1<<20),
	}

	if len(app.Config.Server.CORSOrigins) > 0 {
		routerCfg.CORSConfig = apimiddleware.CORSFromOrigins(app.Config.Server.CORSOrigins, false)
		app.Logger.Info("CORS configured for the JSON API", "origins", app.Config.Server.CORSOrigins)
	}

	if ic.metrics != nil {
		routerCfg.Metrics = ic.metrics
		if app.Config.Observability.MetricsPath != "" {
			routerCfg.MetricsPath = app.Config.Observability.MetricsPath
		}
	}
	routerCfg.Tracing = app.Tracing

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = app.Config.Server.Host
	serverCfg.Port = app.Config.Server.Port
	serverCfg.TLSCert = app.Config.Server.TLSCertFile
	serverCfg.TLSKey = app.Config.Server.TLSKeyFile
	if app.Config.Server.ReadTimeout > 0 {
		serverCfg.ReadTimeout = app.Config.Server.ReadTimeout
	}
	if app.Config.Server.WriteTimeout > 0 {
		serverCfg.WriteTimeout = app.Config.Server.WriteTimeout
	}
	if app.Config.Server.IdleTimeout > 0 {
		serverCfg.IdleTimeout = app.Config.Server.IdleTimeout
	}
	if app.Config.Server.ShutdownTimeout > 0 {
		serverCfg.ShutdownTimeout = app.Config.Server.ShutdownTimeout
	}
	serverCfg.RouterConfig = routerCfg
	serverCfg.Version = Version
	serverCfg.Commit = Commit
	serverCfg.BuildTime = BuildTime
	serverCfg.Logger = app.Logger

	app.Server = api.NewServer(serverCfg)
	// Setup() runs in initAPI, after the handlers are injected.

	ic.serverCfg = serverCfg
}
