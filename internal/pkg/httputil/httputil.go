// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package httputil has JSON response helpers for the /api surface.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
)

// maxJSONBody caps request bodies decoded by BindJSON.
const maxJSONBody = 1 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   bool                   `json:"error"`
	Status  int                    `json:"status"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// JSONResponse writes data as JSON. Nil data writes only the status.
func JSONResponse(w http.ResponseWriter, status int, data interface{}) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// ErrorResponse writes a plain error envelope.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, ErrorBody{Error: true, Status: status, Message: message})
}

// HandleError maps err to a status and writes the envelope. Internal errors
// are reported with a generic message. Nil is a no-op.
func HandleError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	status := apperrors.HTTPStatusCode(err)
	body := ErrorBody{Error: true, Status: status, Message: http.StatusText(status)}
	if ae, ok := apperrors.GetAppError(err); ok && status < http.StatusInternalServerError {
		body.Code = ae.Code
		body.Message = ae.Message
		body.Details = ae.Details
	}
	JSONResponse(w, status, body)
}

// BindJSON decodes the request body into v, rejecting unknown fields.
func BindJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return apperrors.InvalidInput("request body is empty")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.NewWithStatus(apperrors.CodeBadRequest, "request body too large", http.StatusRequestEntityTooLarge)
		}
		return apperrors.WrapWithStatus(err, apperrors.CodeBadRequest, "invalid JSON body", http.StatusBadRequest)
	}
	return nil
}

// QueryInt reads an integer query parameter, returning def when absent or invalid.
func QueryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// QueryBool reads a boolean query parameter: true, 1 and yes are true.
func QueryBool(r *http.Request, key string) bool {
	switch strings.ToLower(r.URL.Query().Get(key)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

// Created writes 201 with an optional Location header.
func Created(w http.ResponseWriter, location string, data interface{}) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	JSONResponse(w, http.StatusCreated, data)
}

// NoContent writes 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
