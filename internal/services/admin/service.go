// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package admin implements the back office operations behind the admin
// console: dashboard counts, catalog CRUD, quote handling and settings.
package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/utils"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/validator"
)

// ProductStore is product persistence.
type ProductStore interface {
	List(ctx context.Context, f models.ProductFilter) ([]*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryStore is category persistence.
type CategoryStore interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuoteStore is quote request persistence.
type QuoteStore interface {
	List(ctx context.Context, f models.QuoteFilter) ([]*models.QuoteRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsStore is site settings persistence.
type SettingsStore interface {
	List(ctx context.Context) ([]*models.SiteSetting, error)
	Update(ctx context.Context, key string, value json.RawMessage) error
}

// StatsStore computes dashboard counts.
type StatsStore interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

// Invalidator drops cached public data after an edit.
type Invalidator interface {
	Invalidate()
}

// Stores groups the service's collaborators.
type Stores struct {
	Products   ProductStore
	Categories CategoryStore
	Quotes     QuoteStore
	Settings   SettingsStore
	Stats      StatsStore
}

// Service runs admin operations.
type Service struct {
	stores Stores
	cache  Invalidator
	logger *logger.Logger
}

// NewService creates an admin service. cache may be nil.
func NewService(stores Stores, cache Invalidator, log *logger.Logger) *Service {
	return &Service{stores: stores, cache: cache, logger: log.Named("admin")}
}

func (s *Service) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

// Dashboard returns the dashboard counts.
func (s *Service) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := s.stores.Stats.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return stats, nil
}

// ============================================================================
// Products
// ============================================================================

// Products lists every product, newest first.
func (s *Service) Products(ctx context.Context) ([]*models.Product, error) {
	list, err := s.stores.Products.List(ctx, models.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// Product loads one product for editing.
func (s *Service) Product(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.stores.Products.GetByID(ctx, id)
}

// SaveProduct creates p when it has no ID and updates it otherwise. An
// empty slug is derived from the name and blank image entries are dropped.
func (s *Service) SaveProduct(ctx context.Context, p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = utils.Slugify(p.Name)
	}
	p.Images = cleanList(p.Images)
	p.Specifications = cleanSpecs(p.Specifications)

	if err := validator.Validate(p); err != nil {
		return apperrors.ValidationFailed(validator.GetValidationErrors(err))
	}

	if p.ID == uuid.Nil {
		if err := s.stores.Products.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		s.logger.Info("created product", "id", p.ID, "slug", p.Slug)
		return nil
	}
	if err := s.stores.Products.Update(ctx, p); err != nil {
		return fmt.Errorf("update product %s: %w", p.ID, err)
	}
	s.logger.Info("updated product", "id", p.ID, "slug", p.Slug)
	return nil
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.stores.Products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	s.logger.Info("deleted product", "id", id)
	return nil
}

// ============================================================================
// Categories
// ============================================================================

// Categories lists categories by display order.
func (s *Service) Categories(ctx context.Context) ([]*models.Category, error) {
	list, err := s.stores.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

// Category loads one category for editing.
func (s *Service) Category(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.stores.Categories.GetByID(ctx, id)
}

// SaveCategory creates or updates c, deriving an empty slug from the name.
func (s *Service) SaveCategory(ctx context.Context, c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Slug = strings.TrimSpace(c.Slug)
	c.ImageURL = strings.TrimSpace(c.ImageURL)
	if c.Slug == "" {
		c.Slug = utils.Slugify(c.Name)
	}
	if err := validator.Validate(c); err != nil {
		return apperrors.ValidationFailed(validator.GetValidationErrors(err))
	}

	var err error
	if c.ID == uuid.Nil {
		err = s.stores.Categories.Create(ctx, c)
	} else {
		err = s.stores.Categories.Update(ctx, c)
	}
	if err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	s.invalidate()
	s.logger.Info("saved category", "id", c.ID, "slug", c.Slug)
	return nil
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.stores.Categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	s.invalidate()
	s.logger.Info("deleted category", "id", id)
	return nil
}

// ============================================================================
// Quotes
// ============================================================================

// ParseQuoteStatusFilter maps the status filter control to a status.
// "" and "all" mean no filter.
func ParseQuoteStatusFilter(v string) (models.QuoteStatus, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || v == "all" {
		return "", nil
	}
	st := models.QuoteStatus(v)
	if !st.IsValid() {
		return "", apperrors.InvalidInput("unknown quote status " + v)
	}
	return st, nil
}

// Quotes lists quote requests matching f, newest first.
func (s *Service) Quotes(ctx context.Context, f models.QuoteFilter) ([]*models.QuoteRequest, error) {
	if f.Status != "" && !f.Status.IsValid() {
		return nil, apperrors.InvalidInput("unknown quote status " + string(f.Status))
	}
	list, err := s.stores.Quotes.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return list, nil
}

// SetQuoteStatus moves a quote request to status.
func (s *Service) SetQuoteStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus) error {
	if !status.IsValid() {
		return apperrors.InvalidInput("unknown quote status " + string(status))
	}
	if err := s.stores.Quotes.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set quote %s status: %w", id, err)
	}
	s.logger.Info("quote status changed", "id", id, "status", status)
	return nil
}

// DeleteQuote removes a quote request.
func (s *Service) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	if err := s.stores.Quotes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete quote %s: %w", id, err)
	}
	s.logger.Info("deleted quote", "id", id)
	return nil
}

// ============================================================================
// Settings
// ============================================================================

// Settings lists every site setting.
func (s *Service) Settings(ctx context.Context) ([]*models.SiteSetting, error) {
	list, err := s.stores.Settings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return list, nil
}

// UpdateSettings writes each changed value. Carousel images are trimmed of
// blanks and capped at models.MaxCarouselImages.
func (s *Service) UpdateSettings(ctx context.Context, values map[string]json.RawMessage) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value, err := normalizeSetting(key, values[key])
		if err != nil {
			return err
		}
		if err := s.stores.Settings.Update(ctx, key, value); err != nil {
			return fmt.Errorf("update setting %s: %w", key, err)
		}
	}
	s.invalidate()
	s.logger.Info("updated settings", "keys", keys)
	return nil
}

func normalizeSetting(key string, value json.RawMessage) (json.RawMessage, error) {
	if key != models.SettingCarouselImages {
		return value, nil
	}
	var images []string
	if err := json.Unmarshal(value, &images); err != nil {
		return nil, apperrors.ValidationFailed(map[string]string{key: "must be a list of image URLs"})
	}
	images = cleanList(images)
	if len(images) > models.MaxCarouselImages {
		images = images[:models.MaxCarouselImages]
	}
	out, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	return out, nil
}

// cleanList trims entries and drops blanks. It never returns nil.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func cleanSpecs(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}
