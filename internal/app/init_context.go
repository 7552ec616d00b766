// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"github.com/skursatToklucu/ozanparquet/internal/api"
	"github.com/skursatToklucu/ozanparquet/internal/auth"
	"github.com/skursatToklucu/ozanparquet/internal/observability"
	"github.com/skursatToklucu/ozanparquet/internal/repository/postgres"
	redisrepo "github.com/skursatToklucu/ozanparquet/internal/repository/redis"
	"github.com/skursatToklucu/ozanparquet/internal/services/admin"
	"github.com/skursatToklucu/ozanparquet/internal/services/catalog"
	"github.com/skursatToklucu/ozanparquet/internal/web"
)

// initContext carries shared state between the init phases of start.
// Each phase fills the fields later phases depend on.
type initContext struct {
	metrics *observability.Metrics

	// Repositories (initRepositories)
	adminUsers *postgres.AdminUserRepository
	products   *postgres.ProductRepository
	categories *postgres.CategoryRepository
	blog       *postgres.BlogRepository
	content    *postgres.ContentRepository
	settings   *postgres.SettingsRepository
	quotes     *postgres.QuoteRepository
	contacts   *postgres.ContactRepository
	stats      *postgres.StatsRepository

	// Redis stores (initRepositories)
	sessionStore *redisrepo.SessionStore
	blacklist    *redisrepo.TokenBlacklist
	productViews *redisrepo.ViewCounter

	// Services (initAuth, initServices)
	authService    *auth.Service
	catalogService *catalog.Service
	adminService   *admin.Service

	// Web (initWeb)
	webHandler *web.Handler

	// Server (initServer)
	serverCfg api.ServerConfig
}

// initRepositories creates every PostgreSQL repository and Redis store.
func (app *Application) initRepositories(ic *initContext) {
	ic.adminUsers = postgres.NewAdminUserRepository(app.DB)
	ic.products = postgres.NewProductRepository(app.DB)
	ic.categories = postgres.NewCategoryRepository(app.DB)
	ic.blog = postgres.NewBlogRepository(app.DB)
	ic.content = postgres.NewContentRepository(app.DB)
	ic.settings = postgres.NewSettingsRepository(app.DB)
	ic.quotes = postgres.NewQuoteRepository(app.DB)
	ic.contacts = postgres.NewContactRepository(app.DB)
	ic.stats = postgres.NewStatsRepository(app.DB)

	ic.sessionStore = redisrepo.NewSessionStore(app.Redis, app.Config.Auth.SessionTTL)
	ic.blacklist = redisrepo.NewTokenBlacklist(app.Redis)
	ic.productViews = redisrepo.NewViewCounter(app.Redis, "product")
}
