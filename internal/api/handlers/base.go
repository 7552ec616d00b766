// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package handlers provides HTTP handlers for the JSON API.
package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/httputil"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
)

// BaseHandler provides common functionality for all handlers.
type BaseHandler struct {
	logger *logger.Logger
}

// NewBaseHandler creates a new base handler.
func NewBaseHandler(log *logger.Logger) BaseHandler {
	if log == nil {
		log = logger.Nop()
	}
	return BaseHandler{logger: log}
}

// ============================================================================
// Response helpers
// ============================================================================

// JSON writes a JSON response with the given status code.
func (h *BaseHandler) JSON(w http.ResponseWriter, status int, data any) {
	httputil.JSONResponse(w, status, data)
}

// OK writes a 200 OK response with the given data.
func (h *BaseHandler) OK(w http.ResponseWriter, data any) {
	h.JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response with the given data.
func (h *BaseHandler) Created(w http.ResponseWriter, data any) {
	httputil.Created(w, "", data)
}

// ============================================================================
// Error helpers
// ============================================================================

// HandleError converts a service error to an API error response. Server
// errors are logged; their details never reach the client.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	if apperrors.HTTPStatusCode(err) >= http.StatusInternalServerError {
		h.logger.Error("api request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	httputil.HandleError(w, err)
}

// BadRequest writes a 400 Bad Request error.
func (h *BaseHandler) BadRequest(w http.ResponseWriter, message string) {
	httputil.HandleError(w, apperrors.InvalidInput(message))
}

// ============================================================================
// Request parsing helpers
// ============================================================================

// ParseJSON decodes the request body as JSON into v.
func (h *BaseHandler) ParseJSON(r *http.Request, v any) error {
	return httputil.BindJSON(r, v)
}

// URLParam returns a URL parameter value.
func (h *BaseHandler) URLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// QueryParam returns a trimmed query parameter value.
func (h *BaseHandler) QueryParam(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryParamBool returns a query parameter as bool.
func (h *BaseHandler) QueryParamBool(r *http.Request, key string) bool {
	return httputil.QueryBool(r, key)
}

// QueryParamInt returns a query parameter as int.
func (h *BaseHandler) QueryParamInt(r *http.Request, key string, defaultValue int) int {
	return httputil.QueryInt(r, key, defaultValue)
}

// Logger returns the handler's logger.
func (h *BaseHandler) Logger() *logger.Logger {
	return h.logger
}
