// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package postgres

import (
	"context"
	"fmt"

	"github.com/skursatToklucu/ozanparquet/internal/models"
)

// StatsRepository computes dashboard counts.
type StatsRepository struct {
	db *DB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Dashboard returns row counts for the admin dashboard in one round trip.
func (r *StatsRepository) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var s models.DashboardStats
	err := r.db.SQLX().GetContext(ctx, &s, `
		SELECT
			(SELECT COUNT(*) FROM products)                        AS products,
			(SELECT COUNT(*) FROM blog_posts)                      AS blog_posts,
			(SELECT COUNT(*) FROM gallery_items)                   AS gallery_items,
			(SELECT COUNT(*) FROM testimonials)                    AS testimonials,
			(SELECT COUNT(*) FROM contact_submissions)             AS contact_submissions,
			(SELECT COUNT(*) FROM quote_requests)                  AS quote_requests,
			(SELECT COUNT(*) FROM quote_requests WHERE status = 'new') AS new_quotes`)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &s, nil
}
