// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Setting keys.
const (
	SettingCompanyName    = "company_name"
	SettingCompanyTagline = "company_tagline"
	SettingLogoURL        = "logo_url"
	SettingHeroTitle      = "hero_title"
	SettingHeroSubtitle   = "hero_subtitle"
	SettingCarouselImages = "carousel_images"
	SettingContactEmail   = "contact_email"
	SettingContactPhone   = "contact_phone"
	SettingContactAddress = "contact_address"
	SettingFacebook       = "social_facebook"
	SettingInstagram      = "social_instagram"
	SettingLinkedIn       = "social_linkedin"
)

// MaxCarouselImages caps the home page carousel.
const MaxCarouselImages = 5

// HeroSettingKeys are the settings the home page loads.
var HeroSettingKeys = []string{SettingCarouselImages, SettingHeroTitle, SettingHeroSubtitle}

// SiteSetting is one editable key. Value holds raw JSON: a string for text
// settings, an array of strings for carousel_images.
type SiteSetting struct {
	Key         string          `json:"setting_key" db:"setting_key"`
	Value       json.RawMessage `json:"setting_value" db:"setting_value"`
	Type        string          `json:"setting_type" db:"setting_type"`
	Description string          `json:"description" db:"description"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// SiteSettings indexes settings by key.
type SiteSettings map[string]json.RawMessage

// NewSiteSettings builds the index from a list.
func NewSiteSettings(list []*SiteSetting) SiteSettings {
	s := make(SiteSettings, len(list))
	for _, it := range list {
		s[it.Key] = it.Value
	}
	return s
}

// String returns a text setting. Non-string JSON values yield "".
func (s SiteSettings) String(key string) string {
	raw, ok := s[key]
	if !ok {
		return ""
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

// Strings returns a list setting with blank entries dropped.
func (s SiteSettings) Strings(key string) []string {
	raw, ok := s[key]
	if !ok {
		return nil
	}
	var v []string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	out := v[:0]
	for _, it := range v {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	return out
}

// DashboardStats are the row counts on the admin dashboard.
type DashboardStats struct {
	Products      int `json:"products" db:"products"`
	BlogPosts     int `json:"blog_posts" db:"blog_posts"`
	GalleryItems  int `json:"gallery_items" db:"gallery_items"`
	Testimonials  int `json:"testimonials" db:"testimonials"`
	Contacts      int `json:"contact_submissions" db:"contact_submissions"`
	QuoteRequests int `json:"quote_requests" db:"quote_requests"`
	NewQuotes     int `json:"new_quotes" db:"new_quotes"`
}
