// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package logger

import (
	"net/url"
	"strings"
)

// sensitiveKeys are field names whose values never reach log output.
// Matching is case-insensitive.
var sensitiveKeys = map[string]bool{
	"password":      true,
	"new_password":  true,
	"secret":        true,
	"token":         true,
	"access_token":  true,
	"jwt":           true,
	"jwt_secret":    true,
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"csrf_token":    true,
	"x-csrf-token":  true,
	"session":       true,
	"session_id":    true,
}

const redactedValue = "[REDACTED]"

// IsSensitiveKey reports whether values under key must be redacted.
func IsSensitiveKey(key string) bool {
	return sensitiveKeys[strings.ToLower(key)]
}

// SanitizeField returns value, or the redaction marker when key is sensitive.
func SanitizeField(key string, value interface{}) interface{} {
	if IsSensitiveKey(key) {
		return redactedValue
	}
	return value
}

// SanitizeForm flattens submitted form values into a loggable map with
// sensitive fields redacted. Multi-value fields keep their first value.
func SanitizeForm(form url.Values) map[string]string {
	out := make(map[string]string, len(form))
	for k, vs := range form {
		if IsSensitiveKey(k) {
			out[k] = redactedValue
			continue
		}
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
