// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"context"

	"github.com/skursatToklucu/ozanparquet/internal/auth"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	ContextKeySession   ContextKey = "auth_session"
	ContextKeyVisitor   ContextKey = "visitor"
	ContextKeyCSRFToken ContextKey = "csrf_token"
)

// GetSessionFromContext returns the per-request auth session.
func GetSessionFromContext(ctx context.Context) *auth.Session {
	s, _ := ctx.Value(ContextKeySession).(*auth.Session)
	return s
}

// GetVisitorFromContext returns the collaborator bound to the request.
func GetVisitorFromContext(ctx context.Context) *Visitor {
	v, _ := ctx.Value(ContextKeyVisitor).(*Visitor)
	return v
}

// GetCSRFTokenFromContext returns the public form token.
func GetCSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ContextKeyCSRFToken).(string)
	return token
}
