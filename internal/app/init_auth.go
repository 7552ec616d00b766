// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"context"
	"fmt"

	"github.com/skursatToklucu/ozanparquet/internal/auth"
)

// initAuth creates the auth service over the admin accounts and the Redis
// token blacklist, then bootstraps the first admin if configured.
// Requires initRepositories.
func (app *Application) initAuth(ctx context.Context, ic *initContext) error {
	svc, err := auth.NewService(ic.adminUsers, ic.blacklist, auth.Config{
		JWTSecret: app.Config.Auth.JWTSecret,
		TokenTTL:  app.Config.Auth.TokenTTL,
		Issuer:    "ozanparquet",
	}, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}
	ic.authService = svc

	if err := app.bootstrapAdminUser(ctx, ic.adminUsers); err != nil {
		app.Logger.Error("Failed to bootstrap admin user", "error", err)
	}

	app.Logger.Info("Auth service initialized",
		"token_ttl", app.Config.Auth.TokenTTL,
		"session_ttl", app.Config.Auth.SessionTTL,
	)
	return nil
}
