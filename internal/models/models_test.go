// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package models

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestQuoteStatus_IsValid(t *testing.T) {
	for _, s := range QuoteStatuses {
		if !s.IsValid() {
			t.Errorf("%q.IsValid() = false", s)
		}
	}
	if QuoteStatus("archived").IsValid() {
		t.Error(`"archived".IsValid() = true`)
	}
}

func TestQuoteFilter_Matches(t *testing.T) {
	q := &QuoteRequest{
		CustomerName:  "Mehmet Demir",
		CustomerEmail: "mehmet@firma.com",
		CompanyName:   "Demir İnşaat",
		ProductName:   "Meşe Laminat",
		Status:        QuoteContacted,
	}

	tests := []struct {
		name   string
		filter QuoteFilter
		want   bool
	}{
		{"empty filter", QuoteFilter{}, true},
		{"name case-insensitive", QuoteFilter{Search: "MEHMET"}, true},
		{"email", QuoteFilter{Search: "firma.com"}, true},
		{"product", QuoteFilter{Search: "laminat"}, true},
		{"no match", QuoteFilter{Search: "ceviz"}, false},
		{"status match", QuoteFilter{Status: QuoteContacted}, true},
		{"status mismatch", QuoteFilter{Status: QuoteNew}, false},
		{"both", QuoteFilter{Search: "demir", Status: QuoteContacted}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(q); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSiteSettings(t *testing.T) {
	s := NewSiteSettings([]*SiteSetting{
		{Key: SettingHeroTitle, Value: json.RawMessage(`"Doğal Parke"`)},
		{Key: SettingCarouselImages, Value: json.RawMessage(`["a.jpg",""," ","b.jpg"]`)},
		{Key: SettingLogoURL, Value: json.RawMessage(`42`)},
	})

	if got := s.String(SettingHeroTitle); got != "Doğal Parke" {
		t.Errorf("String(hero_title) = %q", got)
	}
	if got := s.String(SettingLogoURL); got != "" {
		t.Errorf("String(logo_url) = %q, want empty for non-string", got)
	}
	if got := s.String("missing"); got != "" {
		t.Errorf("String(missing) = %q", got)
	}
	if got, want := s.Strings(SettingCarouselImages), []string{"a.jpg", "b.jpg"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Strings(carousel_images) = %v, want %v", got, want)
	}
}

func TestGroupFAQ(t *testing.T) {
	items := []*FAQItem{
		{Question: "q1", Category: "Montaj"},
		{Question: "q2", Category: "Bakım"},
		{Question: "q3", Category: "Montaj"},
	}
	groups := GroupFAQ(items)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if groups[0].Category != "Montaj" || len(groups[0].Items) != 2 {
		t.Errorf("groups[0] = %+v", groups[0])
	}
	if groups[1].Category != "Bakım" || len(groups[1].Items) != 1 {
		t.Errorf("groups[1] = %+v", groups[1])
	}
}

func TestAdminUser_IsLocked(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Minute)
	earlier := now.Add(-time.Minute)

	if (&AdminUser{}).IsLocked(now) {
		t.Error("IsLocked() = true with no lock")
	}
	if !(&AdminUser{LockedUntil: &later}).IsLocked(now) {
		t.Error("IsLocked() = false before lock expiry")
	}
	if (&AdminUser{LockedUntil: &earlier}).IsLocked(now) {
		t.Error("IsLocked() = true after lock expiry")
	}
	if (&AdminUser{Role: RoleAdmin}).IsAdmin() {
		t.Error("inactive account should not be admin")
	}
	if !(&AdminUser{Role: RoleAdmin, IsActive: true}).IsAdmin() {
		t.Error("active admin should be admin")
	}
}

func TestProduct_CoverImage(t *testing.T) {
	if (&Product{}).CoverImage() != "" {
		t.Error("CoverImage() on empty images should be empty")
	}
	if got := (&Product{Images: []string{"a", "b"}}).CoverImage(); got != "a" {
		t.Errorf("CoverImage() = %q", got)
	}
}
