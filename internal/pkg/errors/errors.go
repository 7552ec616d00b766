// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package errors defines the application error type shared by repositories,
// services and HTTP handlers.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes.
const (
	CodeInternal           = "INTERNAL_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeBadRequest         = "BAD_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeDatabaseError      = "DATABASE_ERROR"
	CodeTimeout            = "TIMEOUT"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeSessionExpired     = "SESSION_EXPIRED"
)

// Sentinel errors for errors.Is checks on plain (non-AppError) failures.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrTimeout            = errors.New("timeout")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrRateLimited        = errors.New("rate limited")
)

// AppError is an error with a stable code and an HTTP status.
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	HTTPStatus int                    `json:"-"`
	Err        error                  `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails replaces the details map.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithDetail sets one detail entry.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithHTTPStatus overrides the HTTP status.
func (e *AppError) WithHTTPStatus(status int) *AppError {
	e.HTTPStatus = status
	return e
}

// New creates an AppError with status 500.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// NewWithStatus creates an AppError with an explicit status.
func NewWithStatus(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// Newf creates an AppError with a formatted message.
func Newf(code, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. The status is 500.
func Wrap(err error, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// WrapWithStatus wraps err with a code, message and status.
func WrapWithStatus(err error, code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

func NotFound(resource string) *AppError {
	return NewWithStatus(CodeNotFound, resource+" not found", http.StatusNotFound)
}

func AlreadyExists(resource string) *AppError {
	return NewWithStatus(CodeConflict, resource+" already exists", http.StatusConflict)
}

func InvalidInput(message string) *AppError {
	return NewWithStatus(CodeBadRequest, message, http.StatusBadRequest)
}

func Unauthorized(message string) *AppError {
	return NewWithStatus(CodeUnauthorized, message, http.StatusUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewWithStatus(CodeForbidden, message, http.StatusForbidden)
}

func Conflict(message string) *AppError {
	return NewWithStatus(CodeConflict, message, http.StatusConflict)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

// InvalidCredentials is returned by sign-in when the email or password is wrong.
func InvalidCredentials() *AppError {
	return NewWithStatus(CodeInvalidCredentials, "invalid email or password", http.StatusUnauthorized)
}

// ValidationFailed carries per-field messages in Details.
func ValidationFailed(fields map[string]string) *AppError {
	ae := NewWithStatus(CodeValidationFailed, "validation failed", http.StatusBadRequest)
	for k, v := range fields {
		ae.WithDetail(k, v)
	}
	return ae
}

// GetAppError finds an AppError in err's chain.
func GetAppError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// HTTPStatusCode maps err to an HTTP status. Unknown errors map to 500.
func HTTPStatusCode(err error) int {
	if ae, ok := GetAppError(err); ok && ae.HTTPStatus != 0 {
		return ae.HTTPStatus
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func hasCode(err error, codes ...string) bool {
	ae, ok := GetAppError(err)
	if !ok {
		return false
	}
	for _, c := range codes {
		if ae.Code == c {
			return true
		}
	}
	return false
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || hasCode(err, CodeNotFound)
}

func IsConflictError(err error) bool {
	return errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrConflict) || hasCode(err, CodeConflict)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidInput) ||
		hasCode(err, CodeBadRequest, CodeValidationFailed)
}

func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || hasCode(err, CodeUnauthorized, CodeInvalidCredentials, CodeSessionExpired)
}

func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden) || hasCode(err, CodeForbidden)
}
