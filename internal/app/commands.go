// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/skursatToklucu/ozanparquet/internal/pkg/crypto"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/repository/postgres"
)

const minPasswordLen = 8

// Migration actions accepted by RunMigrations.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// openDB loads the configuration and opens a small pool for a one-shot
// command. Only database.url is required.
func openDB(ctx context.Context, cfgFile string) (*postgres.DB, error) {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database.url is required")
	}
	opts := dbOptions(cfg.Database)
	opts.MaxOpenConns = 2
	opts.MaxIdleConns = 1
	db, err := postgres.New(ctx, cfg.Database.URL, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// RunMigrations applies, rolls back or lists database migrations. steps is
// only used by MigrateDown.
func RunMigrations(cfgFile, action string, steps int, out io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := openDB(ctx, cfgFile)
	if err != nil {
		return err
	}
	defer db.Close()

	switch action {
	case MigrateUp:
		n, err := db.Migrate(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Applied %d migration(s)\n", n)
		return nil
	case MigrateDown:
		if steps < 1 {
			return fmt.Errorf("steps must be at least 1")
		}
		n, err := db.Rollback(ctx, steps)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Rolled back %d migration(s)\n", n)
		return nil
	case MigrateStatus:
		status, err := db.MigrationStatus(ctx)
		if err != nil {
			return err
		}
		return writeMigrationStatus(out, status)
	default:
		return fmt.Errorf("unknown migration action: %s", action)
	}
}

func writeMigrationStatus(out io.Writer, status []postgres.MigrationStatus) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tNAME\tAPPLIED")
	for _, s := range status {
		applied := "pending"
		if s.AppliedAt != nil {
			applied = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%03d\t%s\t%s\n", s.Version, s.Name, applied)
	}
	return tw.Flush()
}

// CreateAdmin adds an admin account. An empty password is generated and
// printed to out.
func CreateAdmin(cfgFile, email, name, password string, out io.Writer) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := openDB(ctx, cfgFile)
	if err != nil {
		return err
	}
	defer db.Close()

	generated := password == ""
	if generated {
		if password, err = crypto.RandomToken(12); err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
	}
	if err := createAdmin(ctx, postgres.NewAdminUserRepository(db), email, name, password); err != nil {
		if apperrors.IsConflictError(err) {
			return fmt.Errorf("an admin with e-mail %s already exists; use 'admin reset-password'", email)
		}
		return err
	}

	fmt.Fprintf(out, "Admin account %s created.\n", email)
	if generated {
		fmt.Fprintf(out, "Generated password: %s\n", password)
		fmt.Fprintf(out, "Save this password; it will not be shown again.\n")
	}
	return nil
}

// ResetAdminPassword sets a new password for an existing admin and unlocks
// the account.
func ResetAdminPassword(cfgFile, email, password string, out io.Writer) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := openDB(ctx, cfgFile)
	if err != nil {
		return err
	}
	defer db.Close()

	users := postgres.NewAdminUserRepository(db)
	admin, err := users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return fmt.Errorf("no admin with e-mail %s; use 'admin create'", email)
		}
		return err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := users.UpdatePassword(ctx, admin.ID, hash); err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}

	fmt.Fprintln(out, "Admin password reset successfully. Account unlocked.")
	return nil
}
