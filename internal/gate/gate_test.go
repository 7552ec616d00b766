// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package gate

import (
	"testing"

	"github.com/skursatToklucu/ozanparquet/internal/auth"
	"github.com/skursatToklucu/ozanparquet/internal/router"
)

func TestDecide_PendingAdminIsChecking(t *testing.T) {
	d := Decide("/admin", auth.StatePending)
	if d.Status != StatusChecking {
		t.Errorf("Status = %v, want checking", d.Status)
	}
	if d.Redirect != "" {
		t.Errorf("Redirect = %q, want none", d.Redirect)
	}
}

func TestDecide_AnonymousIsDenied(t *testing.T) {
	d := Decide("/admin/products", auth.StateAnonymous)
	if d.Status != StatusDenied {
		t.Errorf("Status = %v, want denied", d.Status)
	}
	if d.Redirect != "/admin/login" {
		t.Errorf("Redirect = %q, want /admin/login", d.Redirect)
	}
	if d.Route.View != router.ViewAdminLogin {
		t.Errorf("View = %v, want admin-login", d.Route.View)
	}
}

func TestDecide_Granted(t *testing.T) {
	tests := []struct {
		path string
		want router.View
	}{
		{"/admin", router.ViewAdminDashboard},
		{"/admin/", router.ViewAdminDashboard},
		{"/admin/categories", router.ViewAdminCategories},
		{"/admin/products", router.ViewAdminProducts},
		{"/admin/quotes", router.ViewAdminQuotes},
		{"/admin/settings", router.ViewAdminSettings},
		{"/admin/unknown", router.ViewAdminDashboard},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			d := Decide(tt.path, auth.StateAuthenticated)
			if d.Status != StatusGranted {
				t.Errorf("Status = %v, want granted", d.Status)
			}
			if d.Route.View != tt.want {
				t.Errorf("View = %v, want %v", d.Route.View, tt.want)
			}
		})
	}
}

func TestDecide_Unprotected(t *testing.T) {
	states := []auth.State{auth.StatePending, auth.StateAnonymous, auth.StateAuthenticated}
	tests := []struct {
		path string
		want router.View
	}{
		{"/admin/login", router.ViewAdminLogin},
		{"/", router.ViewHome},
		{"/products/mese", router.ViewProductDetail},
		{"/nope", router.ViewHome},
	}
	for _, tt := range tests {
		for _, st := range states {
			d := Decide(tt.path, st)
			if d.Status != StatusUnprotected {
				t.Errorf("Decide(%q, %v).Status = %v, want unprotected", tt.path, st, d.Status)
			}
			if d.Route.View != tt.want {
				t.Errorf("Decide(%q, %v).View = %v, want %v", tt.path, st, d.Route.View, tt.want)
			}
			if d.Redirect != "" {
				t.Errorf("Decide(%q, %v).Redirect = %q", tt.path, st, d.Redirect)
			}
		}
	}
}

func TestDecide_LoginNeverGatedByState(t *testing.T) {
	if d := Decide("/admin/login", auth.StatePending); d.Status == StatusChecking {
		t.Error("login path must not wait for the auth check")
	}
}

func TestNeedsAuth(t *testing.T) {
	if !NeedsAuth("/admin/quotes") || NeedsAuth("/blog") {
		t.Error("NeedsAuth() mismatch")
	}
}
