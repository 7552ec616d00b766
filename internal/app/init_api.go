// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"github.com/skursatToklucu/ozanparquet/internal/api/handlers"
)

// initAPI injects the handlers into the server, registers the readiness
// checks and builds the router. Requires initServer and initWeb.
func (app *Application) initAPI(ic *initContext) {
	h := app.Server.Handlers()
	h.Catalog = handlers.NewCatalogHandler(ic.catalogService, app.Logger)
	h.Web = ic.webHandler

	app.Server.RegisterDatabaseHealth(app.DB.HealthCheck)
	app.Server.RegisterRedisHealth(app.Redis.HealthCheck)

	app.Server.Setup()
	app.Logger.Info("API router initialized",
		"api_per_minute", ic.serverCfg.RouterConfig.RateLimitPerMinute,
		"submissions_per_minute", ic.serverCfg.RouterConfig.SubmissionsPerMinute,
		"metrics", ic.serverCfg.RouterConfig.Metrics != nil,
	)
}
