// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package testutil provides shared test helpers and fixtures: loggers, a
// miniredis-backed Redis client and catalog models. Import it from test
// files only.
package testutil

import (
	"io"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/crypto"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
	redisrepo "github.com/skursatToklucu/ozanparquet/internal/repository/redis"
)

// ---------------------------------------------------------------------------
// Logger helpers
// ---------------------------------------------------------------------------

// NewTestLogger returns a logger that discards all output. It never fails.
func NewTestLogger(t testing.TB) *logger.Logger {
	t.Helper()
	log, err := logger.NewWithOutput("error", "console", io.Discard)
	if err != nil {
		t.Fatalf("testutil.NewTestLogger: %v", err)
	}
	return log
}

// ---------------------------------------------------------------------------
// Redis
// ---------------------------------------------------------------------------

// NewTestRedis starts a miniredis server for the test and returns a client
// over it with the key prefix "test". Both are closed on cleanup.
func NewTestRedis(t testing.TB) (*redisrepo.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redisrepo.NewFromRedis(rdb, "test"), mr
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// TestAdminID is a stable UUID used across admin fixtures.
var TestAdminID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// TestAdminPassword is the plain password of TestAdmin.
const TestAdminPassword = "dogru-sifre"

// TestJWTSecret returns a signing secret long enough for the auth service.
func TestJWTSecret() string {
	return strings.Repeat("s", 32)
}

// TestAdmin returns an active admin whose password is TestAdminPassword.
// The hash uses the minimum bcrypt cost.
func TestAdmin(t testing.TB) *models.AdminUser {
	t.Helper()
	hash, err := crypto.HashPasswordWithCost(TestAdminPassword, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("testutil.TestAdmin: %v", err)
	}
	return &models.AdminUser{
		ID:           TestAdminID,
		Email:        "admin@ozanparke.com",
		FullName:     "Ozan Yönetici",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
}

// TestCategory returns a category with a fresh ID.
func TestCategory(name, slug string) *models.Category {
	return &models.Category{ID: uuid.New(), Name: name, Slug: slug}
}

// TestProduct returns an in-stock product in category c. c may be nil.
func TestProduct(name, slug string, c *models.Category) *models.Product {
	p := &models.Product{
		ID:      uuid.New(),
		Name:    name,
		Slug:    slug,
		Images:  []string{"https://cdn.example.com/" + slug + ".jpg"},
		InStock: true,
	}
	if c != nil {
		p.CategoryID = &c.ID
		p.CategoryName = c.Name
		p.CategorySlug = c.Slug
	}
	return p
}
