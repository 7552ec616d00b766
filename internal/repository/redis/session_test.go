// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSessionCreate(t *testing.T) {
	client := newTestClient(t)
	store := NewSessionStore(client, 30*time.Minute)
	ctx := context.Background()

	session, err := store.Create(ctx, "admin-1", "owner@example.com", "tok", "Mozilla/5.0", "192.168.1.1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if session.ID == "" || session.CSRFToken == "" {
		t.Fatal("expected ID and CSRF token")
	}
	if session.ID == session.CSRFToken {
		t.Fatal("ID and CSRF token must differ")
	}
	if session.AdminID != "admin-1" {
		t.Fatalf("expected AdminID 'admin-1', got %q", session.AdminID)
	}
	if !session.ExpiresAt.After(session.CreatedAt) {
		t.Fatal("ExpiresAt should be after CreatedAt")
	}
}

func TestSessionGet(t *testing.T) {
	client := newTestClient(t)
	store := NewSessionStore(client, 30*time.Minute)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin-1", "owner@example.com", "tok", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.AccessToken != "tok" || got.CSRFToken != created.CSRFToken {
		t.Fatalf("Get returned %+v", got)
	}
}

func TestSessionGet_NotFound(t *testing.T) {
	store := NewSessionStore(newTestClient(t), time.Minute)

	for _, id := range []string{"", "missing"} {
		if _, err := store.Get(context.Background(), id); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrSessionNotFound", id, err)
		}
	}
}

func TestSessionExpires(t *testing.T) {
	client, mr := newTestClientWithMR(t)
	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()

	created, err := store.Create(ctx, "admin-1", "e", "tok", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, created.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after TTL, got %v", err)
	}
}

func TestSessionDelete(t *testing.T) {
	client := newTestClient(t)
	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()

	created, _ := store.Create(ctx, "admin-1", "e", "tok", "", "")
	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, created.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestSessionDeleteAllForAdmin(t *testing.T) {
	client := newTestClient(t)
	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()

	a, _ := store.Create(ctx, "admin-1", "e", "t1", "", "")
	b, _ := store.Create(ctx, "admin-1", "e", "t2", "", "")
	other, _ := store.Create(ctx, "admin-2", "f", "t3", "", "")

	n, err := store.DeleteAllForAdmin(ctx, "admin-1")
	if err != nil {
		t.Fatalf("DeleteAllForAdmin: %v", err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}
	for _, id := range []string{a.ID, b.ID} {
		if _, err := store.Get(ctx, id); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("session %s still present", id)
		}
	}
	if _, err := store.Get(ctx, other.ID); err != nil {
		t.Errorf("other admin's session removed: %v", err)
	}
}
