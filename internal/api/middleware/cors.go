// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORSConfig contains CORS configuration options for /api/v1.
type CORSConfig struct {
	// AllowedOrigins may contain "*" or one wildcard per origin
	// (https://*.example.com). Empty means same-origin only.
	AllowedOrigins []string

	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string

	// AllowCredentials cannot be combined with a "*" origin.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

// DefaultCORSConfig allows no cross-origin callers. The public API is read
// mostly, so only GET and POST are listed.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			HeaderRequestID,
		},
		ExposedHeaders: []string{HeaderRequestID, "Retry-After"},
		MaxAge:         300,
	}
}

// CORS returns a CORS middleware handler with the given configuration.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	allowCredentials := config.AllowCredentials
	for _, o := range config.AllowedOrigins {
		if o == "*" {
			allowCredentials = false
		}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   config.AllowedMethods,
		AllowedHeaders:   config.AllowedHeaders,
		ExposedHeaders:   config.ExposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           config.MaxAge,
	})
}

// CORSFromOrigins builds a configuration from a comma separated origin
// list such as "https://ozanparke.com,https://www.ozanparke.com".
func CORSFromOrigins(origins []string, credentials bool) CORSConfig {
	config := DefaultCORSConfig()

	trimmed := make([]string, 0, len(origins))
	for _, entry := range origins {
		for _, o := range strings.Split(entry, ",") {
			if o = strings.TrimSpace(o); o != "" {
				trimmed = append(trimmed, o)
			}
		}
	}
	if len(trimmed) > 0 {
		config.AllowedOrigins = trimmed
	}
	config.AllowCredentials = credentials
	return config
}
