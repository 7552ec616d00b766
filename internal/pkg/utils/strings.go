// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package utils contains small string helpers shared by services and views.
package utils

import (
	"strings"
	"unicode/utf8"
)

var turkishFold = strings.NewReplacer(
	"İ", "i", "I", "i",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ş", "s", "Ş", "s",
	"ı", "i",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

// Slugify lowercases s, folds Turkish letters to ASCII and collapses every
// run of other characters into a single hyphen, trimmed at both ends.
//
//	Slugify("Meşe Lamine Parke 8mm") == "mese-lamine-parke-8mm"
func Slugify(s string) string {
	s = strings.ToLower(turkishFold.Replace(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// Truncate shortens s to at most n runes, ending with "..." when cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// DefaultString returns s, or def when s is blank.
func DefaultString(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// SplitAndTrim splits s on sep and drops empty, whitespace-only parts.
func SplitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MaskEmail hides the middle of the local part, for log lines.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return maskMiddle(email)
	}
	return maskMiddle(email[:at]) + email[at:]
}

func maskMiddle(s string) string {
	r := []rune(s)
	if len(r) <= 2 {
		return s
	}
	return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
}
