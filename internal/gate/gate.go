// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package gate decides access to the admin console from the current path
// and the visitor's authentication state. It never authenticates anyone.
package gate

import (
	"github.com/skursatToklucu/ozanparquet/internal/auth"
	"github.com/skursatToklucu/ozanparquet/internal/router"
)

// Status is the gate state for one render pass.
type Status int

const (
	// StatusUnprotected applies outside the admin prefix and on the login path.
	StatusUnprotected Status = iota
	// StatusChecking means an admin path while authentication is pending.
	StatusChecking
	// StatusDenied means an admin path for an anonymous visitor.
	StatusDenied
	// StatusGranted means an admin path for an authenticated administrator.
	StatusGranted
)

func (s Status) String() string {
	switch s {
	case StatusUnprotected:
		return "unprotected"
	case StatusChecking:
		return "checking"
	case StatusDenied:
		return "denied"
	case StatusGranted:
		return "granted"
	}
	return "unknown"
}

// Decision is what the gate selected. Route is meaningless while checking.
// Redirect is set only when denied and holds the app path to move to.
type Decision struct {
	Status   Status
	Route    router.Route
	Redirect string
}

// Decide evaluates path against state.
func Decide(path string, state auth.State) Decision {
	if !router.IsAdminScoped(path) || router.IsLogin(path) {
		return Decision{Status: StatusUnprotected, Route: router.Resolve(path)}
	}

	switch state {
	case auth.StateAuthenticated:
		return Decision{
			Status: StatusGranted,
			Route:  router.Route{View: router.ResolveAdmin(path)},
		}
	case auth.StateAnonymous:
		return Decision{
			Status:   StatusDenied,
			Route:    router.Route{View: router.ViewAdminLogin},
			Redirect: router.PathAdminLogin,
		}
	default:
		return Decision{Status: StatusChecking}
	}
}

// NeedsAuth reports whether deciding path depends on the auth state, so
// callers can skip the session check for public pages.
func NeedsAuth(path string) bool {
	return router.IsAdminScoped(path)
}
