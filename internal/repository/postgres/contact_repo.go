// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/models"
)

// ContactRepository stores contact form submissions.
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create stores a submission.
func (r *ContactRepository) Create(ctx context.Context, c *models.ContactSubmission) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx, `
		INSERT INTO contact_submissions (id, name, email, phone, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Email, c.Phone, c.Subject, c.Message, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create contact submission: %w", err)
	}
	return nil
}
