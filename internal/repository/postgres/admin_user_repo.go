// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
)

const adminUserSelect = `
	SELECT id, email, full_name, password_hash, role, is_active,
		   failed_login_attempts, locked_until, last_login_at, created_at, updated_at
	FROM admin_users`

// AdminUserRepository handles admin account database operations.
type AdminUserRepository struct {
	db *DB
}

// NewAdminUserRepository creates a new admin user repository.
func NewAdminUserRepository(db *DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// Create inserts a new admin account. Email is stored lowercased.
func (r *AdminUserRepository) Create(ctx context.Context, u *models.AdminUser) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = models.RoleAdmin
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.db.Exec(ctx, `
		INSERT INTO admin_users (
			id, email, full_name, password_hash, role, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.FullName, u.PasswordHash, string(u.Role), u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return apperrors.AlreadyExists("admin user")
		}
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}

// GetByEmail retrieves an account by e-mail, case-insensitively.
func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return r.getOne(ctx, adminUserSelect+` WHERE LOWER(email) = LOWER($1)`, email)
}

// GetByID retrieves an account by ID.
func (r *AdminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	return r.getOne(ctx, adminUserSelect+` WHERE id = $1`, id)
}

func (r *AdminUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.AdminUser, error) {
	u := &models.AdminUser{}
	var role string
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &role, &u.IsActive,
		&u.FailedLoginAttempts, &u.LockedUntil, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("admin user")
		}
		return nil, fmt.Errorf("get admin user: %w", err)
	}
	u.Role = models.AdminRole(role)
	return u, nil
}

// RecordLoginSuccess stamps the login time and clears any lockout.
func (r *AdminUserRepository) RecordLoginSuccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE admin_users SET
			last_login_at = $2,
			failed_login_attempts = 0,
			locked_until = NULL
		WHERE id = $1`, id, at.UTC())
	if err != nil {
		return fmt.Errorf("record login success: %w", err)
	}
	return nil
}

// RecordLoginFailure bumps the failure counter. A non-nil lockedUntil locks
// the account and resets the counter for the next window.
func (r *AdminUserRepository) RecordLoginFailure(ctx context.Context, id uuid.UUID, lockedUntil *time.Time) error {
	query := `
		UPDATE admin_users SET
			failed_login_attempts = failed_login_attempts + 1,
			updated_at = $2
		WHERE id = $1`
	args := []interface{}{id, time.Now().UTC()}
	if lockedUntil != nil {
		query = `
			UPDATE admin_users SET
				failed_login_attempts = 0,
				locked_until = $3,
				updated_at = $2
			WHERE id = $1`
		args = append(args, lockedUntil.UTC())
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}

// UpdatePassword sets a new password hash and unlocks the account.
func (r *AdminUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE admin_users SET
			password_hash = $2,
			failed_login_attempts = 0,
			locked_until = NULL,
			updated_at = $3
		WHERE id = $1`, id, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("admin user")
	}
	return nil
}

// Count returns the number of admin accounts.
func (r *AdminUserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count admin users: %w", err)
	}
	return n, nil
}
