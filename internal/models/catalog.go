// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package models defines the catalog, content, submission and account
// entities persisted in PostgreSQL.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products, e.g. laminate or solid wood.
type Category struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" validate:"required,max=120"`
	Slug         string    `json:"slug" db:"slug" validate:"required,slug"`
	Description  string    `json:"description" db:"description"`
	ImageURL     string    `json:"image_url" db:"image_url" validate:"omitempty,url"`
	DisplayOrder int       `json:"display_order" db:"display_order" validate:"gte=0"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Product is a flooring product.
type Product struct {
	ID               uuid.UUID         `json:"id"`
	CategoryID       *uuid.UUID        `json:"category_id,omitempty"`
	Name             string            `json:"name" validate:"required,max=200"`
	Slug             string            `json:"slug" validate:"required,slug"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description" validate:"max=300"`
	Images           []string          `json:"images" validate:"dive,url"`
	Specifications   map[string]string `json:"specifications"`
	PriceRange       string            `json:"price_range"`
	Thickness        string            `json:"thickness"`
	SurfaceFinish    string            `json:"surface_finish"`
	ColorTone        string            `json:"color_tone"`
	InStock          bool              `json:"in_stock"`
	Featured         bool              `json:"featured"`
	WarrantyYears    int               `json:"warranty_years" validate:"gte=0,lte=100"`
	BoxCoverageSqm   float64           `json:"box_coverage_sqm" validate:"gte=0"`
	ViewCount        int64             `json:"view_count"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`

	// Filled by list queries that join categories.
	CategoryName string `json:"category_name,omitempty"`
	CategorySlug string `json:"category_slug,omitempty"`
}

// CoverImage returns the first image, if any.
func (p *Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductFilter narrows a product listing. Empty fields do not filter.
type ProductFilter struct {
	CategorySlug  string `json:"category,omitempty"`
	Color         string `json:"color,omitempty"`
	Thickness     string `json:"thickness,omitempty"`
	SurfaceFinish string `json:"surface,omitempty"`
	PriceRange    string `json:"price_range,omitempty"`
	InStockOnly   bool   `json:"in_stock,omitempty"`
	FeaturedOnly  bool   `json:"featured,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

// IsZero reports whether no filter is set.
func (f ProductFilter) IsZero() bool {
	return f == ProductFilter{}
}
