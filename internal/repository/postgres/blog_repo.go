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

const blogSelect = `
	SELECT id, title, slug, cover_image, summary, content, author, tags,
		   published, published_at, view_count, created_at
	FROM blog_posts`

// BlogRepository handles blog post database operations.
type BlogRepository struct {
	db *DB
}

// NewBlogRepository creates a new blog repository.
func NewBlogRepository(db *DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// ListPublished returns published posts, newest first. limit <= 0 means all.
func (r *BlogRepository) ListPublished(ctx context.Context, limit int) ([]*models.BlogPost, error) {
	query := blogSelect + ` WHERE published ORDER BY published_at DESC NULLS LAST`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	return r.query(ctx, "list published posts", query, args...)
}

// ListOthers returns up to limit published posts other than the given slug.
func (r *BlogRepository) ListOthers(ctx context.Context, slug string, limit int) ([]*models.BlogPost, error) {
	return r.query(ctx, "list other posts",
		blogSelect+` WHERE published AND slug <> $1 ORDER BY published_at DESC NULLS LAST LIMIT $2`,
		slug, limit)
}

// GetPublishedBySlug retrieves a published post. Drafts are not found.
func (r *BlogRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	p, err := scanBlogPost(r.db.QueryRow(ctx, blogSelect+` WHERE slug = $1 AND published`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("blog post")
		}
		return nil, fmt.Errorf("get blog post: %w", err)
	}
	return p, nil
}

// Create inserts a post. Published posts without a date are stamped now.
func (r *BlogRepository) Create(ctx context.Context, p *models.BlogPost) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.CreatedAt = time.Now().UTC()
	if p.Published && p.PublishedAt == nil {
		at := p.CreatedAt
		p.PublishedAt = &at
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO blog_posts (
			id, title, slug, cover_image, summary, content, author, tags,
			published, published_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Title, p.Slug, p.CoverImage, p.Summary, p.Content, p.Author, p.Tags,
		p.Published, p.PublishedAt, p.CreatedAt,
	)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return apperrors.AlreadyExists("blog post")
		}
		return fmt.Errorf("create blog post: %w", err)
	}
	return nil
}

func (r *BlogRepository) query(ctx context.Context, op, query string, args ...interface{}) ([]*models.BlogPost, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*models.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanBlogPost(row pgx.Row) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.CoverImage, &p.Summary, &p.Content, &p.Author, &p.Tags,
		&p.Published, &p.PublishedAt, &p.ViewCount, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
