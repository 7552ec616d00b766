// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package utils

import (
	"reflect"
	"testing"
)

// ============================================================================
// Slugify
// ============================================================================

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want string
	}{
		{"simple", "Hello World", "hello-world"},
		{"turkish lowercase", "şeftali ağacı göçü", "seftali-agaci-gocu"},
		{"turkish uppercase", "MEŞE İTHAL ÇAM", "mese-ithal-cam"},
		{"dotless i", "Kırmızı", "kirmizi"},
		{"special chars", "Laminat! (8mm)?", "laminat-8mm"},
		{"leading trailing", "  --parke--  ", "parke"},
		{"consecutive separators", "a___b   c", "a-b-c"},
		{"numbers", "AC4 12mm", "ac4-12mm"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.s); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.s, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is long", 7, "this..."},
		{"çğüşöı", 5, "çğ..."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.s, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("Ahmet Yılmaz", "ahmet") {
		t.Error("ContainsFold() = false for case-insensitive match")
	}
	if ContainsFold("Ahmet", "mehmet") {
		t.Error("ContainsFold() = true for non-match")
	}
}

func TestDefaultString(t *testing.T) {
	if got := DefaultString("  ", "x"); got != "x" {
		t.Errorf("DefaultString(blank) = %q, want x", got)
	}
	if got := DefaultString("v", "x"); got != "v" {
		t.Errorf("DefaultString(v) = %q, want v", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := SplitAndTrim(" a, ,b ,c,", ",")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitAndTrim() = %v, want %v", got, want)
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"john@example.com", "j**n@example.com"},
		{"ab@test.com", "ab@test.com"},
		{"no-at-sign", "n********n"},
	}

	for _, tt := range tests {
		if got := MaskEmail(tt.email); got != tt.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
