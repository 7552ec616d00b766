// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/httputil"
)

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	// RequestLimit is the maximum number of requests allowed per window.
	RequestLimit int

	// WindowLength is the duration of the rate limit window.
	WindowLength time.Duration

	// KeyFunc extracts the rate limit key. Nil limits by client IP.
	KeyFunc func(r *http.Request) (string, error)
}

// DefaultRateLimitConfig allows 100 requests per minute per IP.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestLimit: 100,
		WindowLength: time.Minute,
	}
}

// RateLimit returns a rate limiting middleware with the given configuration.
// A non-positive limit disables limiting.
func RateLimit(config RateLimitConfig) func(http.Handler) http.Handler {
	if config.RequestLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if config.WindowLength <= 0 {
		config.WindowLength = time.Minute
	}

	keyFunc := config.KeyFunc
	if keyFunc == nil {
		keyFunc = func(r *http.Request) (string, error) {
			return "ip:" + getRealIP(r), nil
		}
	}
	return httprate.Limit(config.RequestLimit, config.WindowLength,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(rateLimitHandler(config.WindowLength)),
	)
}

// RateLimitByIP limits by client IP.
func RateLimitByIP(requestLimit int, window time.Duration) func(http.Handler) http.Handler {
	return RateLimit(RateLimitConfig{RequestLimit: requestLimit, WindowLength: window})
}

// rateLimitHandler answers a limited request. Form posts from the
// storefront get plain text; API clients get the JSON error body.
func rateLimitHandler(window time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		retryAfter := int(window.Seconds())
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

		if !wantsJSON(r) {
			http.Error(w, "Çok fazla istek. Lütfen biraz sonra tekrar deneyin.", http.StatusTooManyRequests)
			return
		}
		httputil.HandleError(w, apperrors.NewWithStatus(apperrors.CodeRateLimited, "rate limit exceeded", http.StatusTooManyRequests).
			WithDetail("retry_after", retryAfter).
			WithDetail("request_id", GetRequestID(r.Context())))
	}
}

// ============================================================================
// Specialized rate limiters
// ============================================================================

// SubmissionRateLimit limits public quote and contact submissions.
// 10 per minute per IP.
func SubmissionRateLimit() func(http.Handler) http.Handler {
	return RateLimitByIP(10, time.Minute)
}

// LoginRateLimit limits admin sign-in attempts. 5 per minute per IP.
func LoginRateLimit() func(http.Handler) http.Handler {
	return RateLimitByIP(5, time.Minute)
}

// APIRateLimit is the standard limit for API reads. 100 per minute per IP.
func APIRateLimit() func(http.Handler) http.Handler {
	return RateLimitByIP(100, time.Minute)
}
