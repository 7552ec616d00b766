// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"context"
	"fmt"
	"os"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/crypto"
)

// adminAccounts is the account storage used by bootstrap and the admin
// commands.
type adminAccounts interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, u *models.AdminUser) error
}

// bootstrapAdminUser creates the first admin account when none exist and
// auth.bootstrap_email is set. The generated password is printed once.
func (app *Application) bootstrapAdminUser(ctx context.Context, users adminAccounts) error {
	total, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("check existing admins: %w", err)
	}
	if total > 0 {
		app.Logger.Debug("Admin accounts exist, skipping bootstrap", "count", total)
		return nil
	}

	email := app.Config.Auth.BootstrapEmail
	if email == "" {
		app.Logger.Warn("No admin account exists; run 'ozanparquet admin create' to add one")
		return nil
	}

	password, err := crypto.RandomToken(12)
	if err != nil {
		return fmt.Errorf("generate admin password: %w", err)
	}
	if err := createAdmin(ctx, users, email, "Yönetici", password); err != nil {
		return err
	}

	app.Logger.Warn("Bootstrap admin account created; change the password after first login",
		"email", email,
	)
	fmt.Fprintf(os.Stderr, "\n============================================================\n")
	fmt.Fprintf(os.Stderr, "  BOOTSTRAP ADMIN CREDENTIALS\n")
	fmt.Fprintf(os.Stderr, "  E-mail:   %s\n", email)
	fmt.Fprintf(os.Stderr, "  Password: %s\n", password)
	fmt.Fprintf(os.Stderr, "  Change this password after first login!\n")
	fmt.Fprintf(os.Stderr, "============================================================\n\n")
	return nil
}

// createAdmin hashes password and stores an active admin account.
func createAdmin(ctx context.Context, users adminAccounts, email, name, password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	u := &models.AdminUser{
		Email:        email,
		FullName:     name,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, u); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}
