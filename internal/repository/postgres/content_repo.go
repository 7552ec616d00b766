// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/models"
)

// ContentRepository reads and seeds the gallery, testimonials and FAQ.
type ContentRepository struct {
	db *DB
}

// NewContentRepository creates a new content repository.
func NewContentRepository(db *DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// ListGallery returns gallery items by display order, optionally limited
// to one category.
func (r *ContentRepository) ListGallery(ctx context.Context, category string) ([]*models.GalleryItem, error) {
	query := `
		SELECT id, title, image_url, thumbnail_url, category, location, description, display_order
		FROM gallery_items`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY display_order, created_at`

	var out []*models.GalleryItem
	if err := r.db.SQLX().SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return out, nil
}

// GalleryCategories returns the distinct non-empty gallery categories.
func (r *ContentRepository) GalleryCategories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.SQLX().SelectContext(ctx, &out, `
		SELECT DISTINCT category FROM gallery_items WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list gallery categories: %w", err)
	}
	return out, nil
}

// ListApprovedTestimonials returns up to limit approved testimonials.
func (r *ContentRepository) ListApprovedTestimonials(ctx context.Context, limit int) ([]*models.Testimonial, error) {
	var out []*models.Testimonial
	err := r.db.SQLX().SelectContext(ctx, &out, `
		SELECT id, customer_name, rating, comment, location, project_type, approved, display_order
		FROM testimonials
		WHERE approved
		ORDER BY display_order
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	return out, nil
}

// ListFAQ returns FAQ items ordered by category then display order.
func (r *ContentRepository) ListFAQ(ctx context.Context) ([]*models.FAQItem, error) {
	var out []*models.FAQItem
	err := r.db.SQLX().SelectContext(ctx, &out, `
		SELECT id, question, answer, category, display_order
		FROM faq_items
		ORDER BY display_order, category`)
	if err != nil {
		return nil, fmt.Errorf("list faq: %w", err)
	}
	return out, nil
}

// CreateGalleryItem inserts a gallery item.
func (r *ContentRepository) CreateGalleryItem(ctx context.Context, g *models.GalleryItem) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO gallery_items (id, title, image_url, thumbnail_url, category, location, description, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		g.ID, g.Title, g.ImageURL, g.ThumbnailURL, g.Category, g.Location, g.Description, g.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("create gallery item: %w", err)
	}
	return nil
}

// CreateTestimonial inserts a testimonial.
func (r *ContentRepository) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO testimonials (id, customer_name, rating, comment, location, project_type, approved, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.CustomerName, t.Rating, t.Comment, t.Location, t.ProjectType, t.Approved, t.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("create testimonial: %w", err)
	}
	return nil
}

// CreateFAQItem inserts an FAQ item.
func (r *ContentRepository) CreateFAQItem(ctx context.Context, f *models.FAQItem) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO faq_items (id, question, answer, category, display_order)
		VALUES ($1, $2, $3, $4, $5)`,
		f.ID, f.Question, f.Answer, f.Category, f.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("create faq item: %w", err)
	}
	return nil
}
