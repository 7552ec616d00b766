// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
)

// QuoteRepository handles quote request database operations.
type QuoteRepository struct {
	db *DB
}

// NewQuoteRepository creates a new quote repository.
func NewQuoteRepository(db *DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create stores a new quote request with status new.
func (r *QuoteRepository) Create(ctx context.Context, q *models.QuoteRequest) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	q.Status = models.QuoteNew
	q.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx, `
		INSERT INTO quote_requests (
			id, product_id, product_name, area_sqm, delivery_city, delivery_district,
			service_type, customer_name, customer_phone, customer_email, company_name,
			notes, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		q.ID, q.ProductID, q.ProductName, q.AreaSqm, q.DeliveryCity, q.DeliveryDistrict,
		q.ServiceType, q.CustomerName, q.CustomerPhone, q.CustomerEmail, q.CompanyName,
		q.Notes, string(q.Status), q.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyError(err) {
			return apperrors.InvalidInput("unknown product")
		}
		return fmt.Errorf("create quote request: %w", err)
	}
	return nil
}

// List returns quote requests matching f, newest first. The search term is
// matched case-insensitively against customer, company and product names
// and the e-mail address.
func (r *QuoteRepository) List(ctx context.Context, f models.QuoteFilter) ([]*models.QuoteRequest, error) {
	query := `
		SELECT id, product_id, product_name, area_sqm, delivery_city, delivery_district,
			   service_type, customer_name, customer_phone, customer_email, company_name,
			   notes, status, created_at
		FROM quote_requests`

	var conds []string
	var args []interface{}
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		args = append(args, "%"+term+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(customer_name ILIKE $%d OR customer_email ILIKE $%d OR company_name ILIKE $%d OR product_name ILIKE $%d)",
			n, n, n, n))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quote requests: %w", err)
	}
	defer rows.Close()

	var out []*models.QuoteRequest
	for rows.Next() {
		q := &models.QuoteRequest{}
		var status string
		if err := rows.Scan(
			&q.ID, &q.ProductID, &q.ProductName, &q.AreaSqm, &q.DeliveryCity, &q.DeliveryDistrict,
			&q.ServiceType, &q.CustomerName, &q.CustomerPhone, &q.CustomerEmail, &q.CompanyName,
			&q.Notes, &status, &q.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quote request: %w", err)
		}
		q.Status = models.QuoteStatus(status)
		out = append(out, q)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status of a quote request.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE quote_requests SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("quote request")
	}
	return nil
}

// Delete removes a quote request.
func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quote_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("quote request")
	}
	return nil
}
