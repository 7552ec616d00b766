// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
)

const productSelect = `
	SELECT p.id, p.category_id, p.name, p.slug, p.description, p.short_description,
		   p.images, p.specifications, p.price_range, p.thickness, p.surface_finish,
		   p.color_tone, p.in_stock, p.featured, p.warranty_years, p.box_coverage_sqm,
		   p.view_count, p.created_at, p.updated_at,
		   COALESCE(c.name, ''), COALESCE(c.slug, '')
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// ProductRepository handles product database operations.
type ProductRepository struct {
	db *DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// buildProductWhere turns a filter into a WHERE clause and its arguments.
func buildProductWhere(f models.ProductFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.CategorySlug != "" {
		add("c.slug = $%d", f.CategorySlug)
	}
	if f.Color != "" {
		add("p.color_tone ILIKE '%%' || $%d || '%%'", f.Color)
	}
	if f.Thickness != "" {
		add("p.thickness = $%d", f.Thickness)
	}
	if f.SurfaceFinish != "" {
		add("p.surface_finish ILIKE '%%' || $%d || '%%'", f.SurfaceFinish)
	}
	if f.PriceRange != "" {
		add("p.price_range = $%d", f.PriceRange)
	}
	if f.InStockOnly {
		conds = append(conds, "p.in_stock")
	}
	if f.FeaturedOnly {
		conds = append(conds, "p.featured")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns products matching f, newest first.
func (r *ProductRepository) List(ctx context.Context, f models.ProductFilter) ([]*models.Product, error) {
	where, args := buildProductWhere(f)
	query := productSelect + where + ` ORDER BY p.created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return r.query(ctx, "list products", query, args...)
}

// ListQuotable returns in-stock products by name, for the quote form.
func (r *ProductRepository) ListQuotable(ctx context.Context) ([]*models.Product, error) {
	return r.query(ctx, "list quotable products",
		productSelect+` WHERE p.in_stock ORDER BY p.name`)
}

// Related returns up to limit other products in the same category.
func (r *ProductRepository) Related(ctx context.Context, p *models.Product, limit int) ([]*models.Product, error) {
	if p.CategoryID == nil {
		return nil, nil
	}
	return r.query(ctx, "list related products",
		productSelect+` WHERE p.category_id = $1 AND p.id <> $2 ORDER BY p.created_at DESC LIMIT $3`,
		*p.CategoryID, p.ID, limit)
}

// GetBySlug retrieves a product by slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return r.getOne(ctx, productSelect+` WHERE p.slug = $1`, slug)
}

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return r.getOne(ctx, productSelect+` WHERE p.id = $1`, id)
}

func (r *ProductRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) query(ctx context.Context, op, query string, args ...interface{}) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	p := &models.Product{}
	var specs []byte
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.ShortDescription,
		&p.Images, &specs, &p.PriceRange, &p.Thickness, &p.SurfaceFinish,
		&p.ColorTone, &p.InStock, &p.Featured, &p.WarrantyYears, &p.BoxCoverageSqm,
		&p.ViewCount, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.CategorySlug,
	)
	if err != nil {
		return nil, err
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &p.Specifications); err != nil {
			return nil, fmt.Errorf("decode specifications: %w", err)
		}
	}
	return p, nil
}

func encodeSpecs(specs map[string]string) (string, error) {
	if specs == nil {
		return "{}", nil
	}
	b, err := json.Marshal(specs)
	if err != nil {
		return "", fmt.Errorf("encode specifications: %w", err)
	}
	return string(b), nil
}

// Create inserts a product.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	specs, err := encodeSpecs(p.Specifications)
	if err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err = r.db.Exec(ctx, `
		INSERT INTO products (
			id, category_id, name, slug, description, short_description,
			images, specifications, price_range, thickness, surface_finish,
			color_tone, in_stock, featured, warranty_years, box_coverage_sqm,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)`,
		p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.ShortDescription,
		p.Images, specs, p.PriceRange, p.Thickness, p.SurfaceFinish,
		p.ColorTone, p.InStock, p.Featured, p.WarrantyYears, p.BoxCoverageSqm,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return apperrors.AlreadyExists("product")
		}
		if IsForeignKeyError(err) {
			return apperrors.InvalidInput("unknown category")
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update overwrites a product's editable fields. The view count is kept.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	specs, err := encodeSpecs(p.Specifications)
	if err != nil {
		return err
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	p.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(ctx, `
		UPDATE products SET
			category_id = $2, name = $3, slug = $4, description = $5, short_description = $6,
			images = $7, specifications = $8::jsonb, price_range = $9, thickness = $10,
			surface_finish = $11, color_tone = $12, in_stock = $13, featured = $14,
			warranty_years = $15, box_coverage_sqm = $16, updated_at = $17
		WHERE id = $1`,
		p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.ShortDescription,
		p.Images, specs, p.PriceRange, p.Thickness,
		p.SurfaceFinish, p.ColorTone, p.InStock, p.Featured,
		p.WarrantyYears, p.BoxCoverageSqm, p.UpdatedAt,
	)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return apperrors.AlreadyExists("product")
		}
		if IsForeignKeyError(err) {
			return apperrors.InvalidInput("unknown category")
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("product")
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("product")
	}
	return nil
}

// AddViewCounts adds buffered view increments in one transaction. Unknown
// IDs are skipped.
func (r *ProductRepository) AddViewCounts(ctx context.Context, counts map[uuid.UUID]int64) error {
	if len(counts) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin view count flush: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for id, n := range counts {
		if n <= 0 {
			continue
		}
		if _, err := tx.Exec(ctx,
			`UPDATE products SET view_count = view_count + $2 WHERE id = $1`, id, n,
		); err != nil {
			return fmt.Errorf("add view count: %w", err)
		}
	}
	return tx.Commit(ctx)
}
