// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost is an article. Only published posts are visible on the site.
type BlogPost struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	CoverImage  string     `json:"cover_image"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ViewCount   int64      `json:"view_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

// GalleryItem is a finished-project photo.
type GalleryItem struct {
	ID           uuid.UUID `json:"id" yaml:"-" db:"id"`
	Title        string    `json:"title" yaml:"title" db:"title"`
	ImageURL     string    `json:"image_url" yaml:"image_url" db:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url" yaml:"thumbnail_url" db:"thumbnail_url"`
	Category     string    `json:"category" yaml:"category" db:"category"`
	Location     string    `json:"location" yaml:"location" db:"location"`
	Description  string    `json:"description" yaml:"description" db:"description"`
	DisplayOrder int       `json:"display_order" yaml:"display_order" db:"display_order"`
}

// Thumb returns the thumbnail URL, falling back to the full image.
func (g *GalleryItem) Thumb() string {
	if g.ThumbnailURL != "" {
		return g.ThumbnailURL
	}
	return g.ImageURL
}

// Testimonial is a customer review. Only approved ones are shown.
type Testimonial struct {
	ID           uuid.UUID `json:"id" yaml:"-" db:"id"`
	CustomerName string    `json:"customer_name" yaml:"customer_name" db:"customer_name"`
	Rating       int       `json:"rating" yaml:"rating" db:"rating"`
	Comment      string    `json:"comment" yaml:"comment" db:"comment"`
	Location     string    `json:"location" yaml:"location" db:"location"`
	ProjectType  string    `json:"project_type" yaml:"project_type" db:"project_type"`
	Approved     bool      `json:"approved" yaml:"approved" db:"approved"`
	DisplayOrder int       `json:"display_order" yaml:"display_order" db:"display_order"`
}

// FAQItem is a question and answer pair.
type FAQItem struct {
	ID           uuid.UUID `json:"id" yaml:"-" db:"id"`
	Question     string    `json:"question" yaml:"question" db:"question"`
	Answer       string    `json:"answer" yaml:"answer" db:"answer"`
	Category     string    `json:"category" yaml:"category" db:"category"`
	DisplayOrder int       `json:"display_order" yaml:"display_order" db:"display_order"`
}

// FAQGroup is the FAQ items of one category, in display order.
type FAQGroup struct {
	Category string
	Items    []*FAQItem
}

// GroupFAQ groups items by category, keeping the first-seen category order.
func GroupFAQ(items []*FAQItem) []FAQGroup {
	var groups []FAQGroup
	index := make(map[string]int)
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(groups)
			index[it.Category] = i
			groups = append(groups, FAQGroup{Category: it.Category})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}
