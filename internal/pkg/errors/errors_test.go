// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package errors

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

// ============================================================================
// AppError basics
// ============================================================================

func TestAppError_Error_WithWrapped(t *testing.T) {
	inner := fmt.Errorf("db connection failed")
	ae := Wrap(inner, CodeDatabaseError, "failed to list products")

	got := ae.Error()
	for _, part := range []string{CodeDatabaseError, "failed to list products", "db connection failed"} {
		if !strings.Contains(got, part) {
			t.Errorf("Error() = %q, missing %q", got, part)
		}
	}
	if ae.Unwrap() != inner {
		t.Error("Unwrap() did not return the wrapped error")
	}
}

func TestAppError_Error_WithoutWrapped(t *testing.T) {
	ae := New(CodeNotFound, "product not found")
	if got := ae.Error(); got != "NOT_FOUND: product not found" {
		t.Errorf("Error() = %q", got)
	}
	if ae.Unwrap() != nil {
		t.Error("Unwrap() should be nil")
	}
}

func TestNew_DefaultsTo500(t *testing.T) {
	if got := New(CodeBadRequest, "bad").HTTPStatus; got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus = %d, want 500", got)
	}
	if got := Newf(CodeBadRequest, "field %s", "email").Message; got != "field email" {
		t.Errorf("Newf message = %q", got)
	}
}

func TestWithDetail_InitializesMap(t *testing.T) {
	ae := New(CodeBadRequest, "bad").WithDetail("field", "slug")
	if ae.Details["field"] != "slug" {
		t.Errorf("Details[field] = %v, want slug", ae.Details["field"])
	}
}

// ============================================================================
// Convenience constructors
// ============================================================================

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"NotFound", NotFound("category"), CodeNotFound, http.StatusNotFound},
		{"AlreadyExists", AlreadyExists("slug"), CodeConflict, http.StatusConflict},
		{"InvalidInput", InvalidInput("bad area"), CodeBadRequest, http.StatusBadRequest},
		{"Unauthorized", Unauthorized("no session"), CodeUnauthorized, http.StatusUnauthorized},
		{"Forbidden", Forbidden("not admin"), CodeForbidden, http.StatusForbidden},
		{"Conflict", Conflict("stale"), CodeConflict, http.StatusConflict},
		{"Internal", Internal("boom"), CodeInternal, http.StatusInternalServerError},
		{"InvalidCredentials", InvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", tt.err.HTTPStatus, tt.status)
			}
		})
	}
}

func TestValidationFailed(t *testing.T) {
	ae := ValidationFailed(map[string]string{"customer_email": "must be a valid email"})
	if ae.HTTPStatus != http.StatusBadRequest {
		t.Errorf("HTTPStatus = %d, want 400", ae.HTTPStatus)
	}
	if ae.Details["customer_email"] != "must be a valid email" {
		t.Errorf("Details = %v", ae.Details)
	}
	if !IsValidationError(ae) {
		t.Error("IsValidationError() = false for ValidationFailed")
	}
}

// ============================================================================
// Lookup and classification
// ============================================================================

func TestGetAppError_FromWrapped(t *testing.T) {
	wrapped := fmt.Errorf("layer: %w", NotFound("post"))
	got, ok := GetAppError(wrapped)
	if !ok {
		t.Fatal("GetAppError() should find AppError in chain")
	}
	if got.Code != CodeNotFound {
		t.Errorf("Code = %q, want %q", got.Code, CodeNotFound)
	}
	if _, ok := GetAppError(fmt.Errorf("plain")); ok {
		t.Error("GetAppError() = true for plain error")
	}
}

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("product"), http.StatusNotFound},
		{"not found sentinel", ErrNotFound, http.StatusNotFound},
		{"wrapped sentinel", fmt.Errorf("wrap: %w", ErrForbidden), http.StatusForbidden},
		{"conflict", ErrAlreadyExists, http.StatusConflict},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"timeout", ErrTimeout, http.StatusGatewayTimeout},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests},
		{"unknown", fmt.Errorf("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusCode(tt.err); got != tt.want {
				t.Errorf("HTTPStatusCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsPredicates(t *testing.T) {
	if !IsNotFoundError(fmt.Errorf("x: %w", NotFound("quote"))) {
		t.Error("IsNotFoundError() = false for wrapped NotFound")
	}
	if IsNotFoundError(fmt.Errorf("something else")) {
		t.Error("IsNotFoundError() = true for unrelated error")
	}
	if !IsConflictError(AlreadyExists("slug")) {
		t.Error("IsConflictError() = false for AlreadyExists")
	}
	if !IsUnauthorizedError(InvalidCredentials()) {
		t.Error("IsUnauthorizedError() = false for InvalidCredentials")
	}
	if !IsForbiddenError(ErrForbidden) {
		t.Error("IsForbiddenError() = false for sentinel")
	}
}
