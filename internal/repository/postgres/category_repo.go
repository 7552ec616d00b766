// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
)

const categoryColumns = `id, name, slug, description, image_url, display_order, created_at`

// CategoryRepository handles category database operations.
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns every category by display order.
func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var out []*models.Category
	err := r.db.SQLX().SelectContext(ctx, &out,
		`SELECT `+categoryColumns+` FROM categories ORDER BY display_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// GetBySlug retrieves a category by slug.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.getOne(ctx, `WHERE slug = $1`, slug)
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *CategoryRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Category, error) {
	c := &models.Category{}
	err := r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories `+where, arg).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &c.DisplayOrder, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("category")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Create inserts a category.
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (id, name, slug, description, image_url, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Slug, c.Description, c.ImageURL, c.DisplayOrder, c.CreatedAt,
	)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return apperrors.AlreadyExists("category")
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// Update overwrites a category's editable fields.
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, image_url = $5, display_order = $6
		WHERE id = $1`,
		c.ID, c.Name, c.Slug, c.Description, c.ImageURL, c.DisplayOrder,
	)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return apperrors.AlreadyExists("category")
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("category")
	}
	return nil
}

// Delete removes a category. Products in it keep existing uncategorized.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("category")
	}
	return nil
}
