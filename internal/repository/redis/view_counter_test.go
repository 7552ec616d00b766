// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package redis

import (
	"context"
	"testing"
	"time"
)

func TestViewCounter_IncrAndDrain(t *testing.T) {
	client := newTestClient(t)
	vc := NewViewCounter(client, "product")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := vc.Incr(ctx, "p1"); err != nil {
			t.Fatalf("Incr: %v", err)
		}
	}
	_ = vc.Incr(ctx, "p2")

	if n, _ := vc.Pending(ctx, "p1"); n != 3 {
		t.Errorf("Pending(p1) = %d, want 3", n)
	}

	got, err := vc.Drain(ctx)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if got["p1"] != 3 || got["p2"] != 1 || len(got) != 2 {
		t.Errorf("Drain() = %v, want p1:3 p2:1", got)
	}

	again, err := vc.Drain(ctx)
	if err != nil {
		t.Fatalf("second Drain: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second Drain() = %v, want empty", again)
	}
}

func TestViewCounter_Restore(t *testing.T) {
	client := newTestClient(t)
	vc := NewViewCounter(client, "product")
	ctx := context.Background()

	_ = vc.Incr(ctx, "p1")
	if err := vc.Restore(ctx, map[string]int64{"p1": 4, "p3": 2}); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if n, _ := vc.Pending(ctx, "p1"); n != 5 {
		t.Errorf("Pending(p1) = %d, want 5", n)
	}
	if n, _ := vc.Pending(ctx, "p3"); n != 2 {
		t.Errorf("Pending(p3) = %d, want 2", n)
	}
}

func TestLock(t *testing.T) {
	client, mr := newTestClientWithMR(t)
	ctx := context.Background()

	l, err := client.AcquireLock(ctx, "flush", time.Minute)
	if err != nil || l == nil {
		t.Fatalf("AcquireLock = (%v, %v), want lock", l, err)
	}
	if other, err := client.AcquireLock(ctx, "flush", time.Minute); err != nil || other != nil {
		t.Fatalf("second AcquireLock = (%v, %v), want nil, nil", other, err)
	}

	if err := l.Release(ctx); err != nil {
		t.Fatalf("Release: %v", err)
	}
	l2, _ := client.AcquireLock(ctx, "flush", time.Minute)
	if l2 == nil {
		t.Fatal("lock not free after release")
	}

	mr.FastForward(2 * time.Minute)
	if l3, _ := client.AcquireLock(ctx, "flush", time.Minute); l3 == nil {
		t.Fatal("lock not free after TTL")
	}
	// A stale holder must not free someone else's lock.
	if err := l2.Release(ctx); err != nil {
		t.Fatalf("stale Release: %v", err)
	}
	if l4, _ := client.AcquireLock(ctx, "flush", time.Minute); l4 != nil {
		t.Fatal("stale release freed the current holder's lock")
	}
}
