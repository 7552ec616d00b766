// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package middleware

import (
	"net/http"
	"runtime/debug"

	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/httputil"
)

// RecoveryConfig configures panic recovery.
type RecoveryConfig struct {
	Logger     RequestLogger
	PrintStack bool
}

// Recovery turns a handler panic into a 500 response. Browser requests get
// plain text, everything else the JSON error body.
func Recovery(config RecoveryConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				if config.Logger != nil {
					fields := []any{
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", GetRequestID(r.Context()),
					}
					if config.PrintStack {
						fields = append(fields, "stack", string(debug.Stack()))
					}
					config.Logger.Error("panic recovered", fields...)
				}

				if !wantsJSON(r) {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				httputil.HandleError(w, apperrors.Internal("internal server error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
