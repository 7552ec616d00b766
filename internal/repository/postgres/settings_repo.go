// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
)

const settingColumns = `setting_key, setting_value, setting_type, description, updated_at`

// SettingsRepository reads and writes site settings.
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// List returns every setting ordered by key.
func (r *SettingsRepository) List(ctx context.Context) ([]*models.SiteSetting, error) {
	return r.query(ctx, `SELECT `+settingColumns+` FROM site_settings ORDER BY setting_key`)
}

// GetMany returns the settings with the given keys. Missing keys are absent
// from the result.
func (r *SettingsRepository) GetMany(ctx context.Context, keys ...string) ([]*models.SiteSetting, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	return r.query(ctx,
		`SELECT `+settingColumns+` FROM site_settings WHERE setting_key = ANY($1) ORDER BY setting_key`,
		keys)
}

func (r *SettingsRepository) query(ctx context.Context, query string, args ...interface{}) ([]*models.SiteSetting, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var out []*models.SiteSetting
	for rows.Next() {
		s := &models.SiteSetting{}
		if err := rows.Scan(&s.Key, &s.Value, &s.Type, &s.Description, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update writes one setting value. Unknown keys are not created.
func (r *SettingsRepository) Update(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return apperrors.InvalidInput("setting value must be JSON")
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE site_settings SET setting_value = $2::jsonb, updated_at = $3 WHERE setting_key = $1`,
		key, string(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update setting %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("setting " + key)
	}
	return nil
}

// Upsert writes a setting, creating it when missing. Used by seeding.
func (r *SettingsRepository) Upsert(ctx context.Context, s *models.SiteSetting) error {
	if s.Type == "" {
		s.Type = "text"
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO site_settings (setting_key, setting_value, setting_type, description, updated_at)
		VALUES ($1, $2::jsonb, $3, $4, $5)
		ON CONFLICT (setting_key) DO UPDATE
		SET setting_value = EXCLUDED.setting_value, updated_at = EXCLUDED.updated_at`,
		s.Key, string(s.Value), s.Type, s.Description, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert setting %s: %w", s.Key, err)
	}
	return nil
}
