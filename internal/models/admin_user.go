// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminRole is the permission level of a console account.
type AdminRole string

const (
	RoleAdmin  AdminRole = "admin"
	RoleEditor AdminRole = "editor"
)

// IsValid reports whether r is a known role.
func (r AdminRole) IsValid() bool {
	return r == RoleAdmin || r == RoleEditor
}

// MaxFailedLogins is the number of consecutive failures that locks an account.
const MaxFailedLogins = 5

// LockoutDuration is how long a locked account stays locked.
const LockoutDuration = 15 * time.Minute

// AdminUser is an account allowed to sign in to the admin console.
type AdminUser struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	Email               string     `json:"email" db:"email"`
	FullName            string     `json:"full_name" db:"full_name"`
	PasswordHash        string     `json:"-" db:"password_hash"`
	Role                AdminRole  `json:"role" db:"role"`
	IsActive            bool       `json:"is_active" db:"is_active"`
	FailedLoginAttempts int        `json:"-" db:"failed_login_attempts"`
	LockedUntil         *time.Time `json:"-" db:"locked_until"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// IsLocked reports whether the account is locked at time now.
func (u *AdminUser) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// IsAdmin reports whether the account may use the admin console.
func (u *AdminUser) IsAdmin() bool {
	return u.IsActive && u.Role == RoleAdmin
}
