// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"github.com/skursatToklucu/ozanparquet/internal/services/admin"
	"github.com/skursatToklucu/ozanparquet/internal/services/catalog"
)

// initServices creates the catalog and admin services. Admin edits purge
// the catalog's read cache. Requires initRepositories.
func (app *Application) initServices(ic *initContext) {
	ic.catalogService = catalog.NewService(catalog.Stores{
		Products:   ic.products,
		Categories: ic.categories,
		Blog:       ic.blog,
		Content:    ic.content,
		Settings:   ic.settings,
		Quotes:     ic.quotes,
		Contacts:   ic.contacts,
		Views:      ic.productViews,
	}, catalog.Config{
		CacheTTL:  app.Config.Catalog.CacheTTL,
		CacheSize: app.Config.Catalog.CacheSize,
	}, app.Logger)

	ic.adminService = admin.NewService(admin.Stores{
		Products:   ic.products,
		Categories: ic.categories,
		Quotes:     ic.quotes,
		Settings:   ic.settings,
		Stats:      ic.stats,
	}, ic.catalogService, app.Logger)

	app.Logger.Info("Catalog services initialized",
		"cache_size", app.Config.Catalog.CacheSize,
		"cache_ttl", app.Config.Catalog.CacheTTL,
	)
}
