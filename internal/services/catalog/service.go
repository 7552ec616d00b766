// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package catalog loads the data behind the public pages and stores
// visitor submissions.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
)

// Limits on the home and detail pages.
const (
	HomeFeaturedLimit    = 6
	HomePostLimit        = 3
	HomeTestimonialLimit = 6
	RelatedProductLimit  = 3
	RelatedPostLimit     = 3
	defaultCacheTTL      = 5 * time.Minute
	defaultCacheSize     = 16
	cacheKeyCategories   = "categories"
	cacheKeySiteSettings = "settings"
)

// ProductStore reads products.
type ProductStore interface {
	List(ctx context.Context, f models.ProductFilter) ([]*models.Product, error)
	ListQuotable(ctx context.Context) ([]*models.Product, error)
	Related(ctx context.Context, p *models.Product, limit int) ([]*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// CategoryStore reads categories.
type CategoryStore interface {
	List(ctx context.Context) ([]*models.Category, error)
}

// BlogStore reads published posts.
type BlogStore interface {
	ListPublished(ctx context.Context, limit int) ([]*models.BlogPost, error)
	ListOthers(ctx context.Context, slug string, limit int) ([]*models.BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
}

// ContentStore reads the gallery, testimonials and FAQ.
type ContentStore interface {
	ListGallery(ctx context.Context, category string) ([]*models.GalleryItem, error)
	GalleryCategories(ctx context.Context) ([]string, error)
	ListApprovedTestimonials(ctx context.Context, limit int) ([]*models.Testimonial, error)
	ListFAQ(ctx context.Context) ([]*models.FAQItem, error)
}

// SettingsStore reads site settings.
type SettingsStore interface {
	List(ctx context.Context) ([]*models.SiteSetting, error)
}

// QuoteStore stores quote requests.
type QuoteStore interface {
	Create(ctx context.Context, q *models.QuoteRequest) error
}

// ContactStore stores contact submissions.
type ContactStore interface {
	Create(ctx context.Context, c *models.ContactSubmission) error
}

// ViewRecorder buffers a product view.
type ViewRecorder interface {
	Incr(ctx context.Context, id string) error
}

// Stores groups the service's collaborators.
type Stores struct {
	Products   ProductStore
	Categories CategoryStore
	Blog       BlogStore
	Content    ContentStore
	Settings   SettingsStore
	Quotes     QuoteStore
	Contacts   ContactStore
	Views      ViewRecorder // optional
}

// Config tunes the read cache.
type Config struct {
	CacheTTL  time.Duration
	CacheSize int
}

// Service serves the public catalog.
type Service struct {
	stores Stores
	logger *logger.Logger

	categories *expirable.LRU[string, []*models.Category]
	settings   *expirable.LRU[string, models.SiteSettings]
}

// NewService creates a catalog service.
func NewService(stores Stores, cfg Config, log *logger.Logger) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	return &Service{
		stores:     stores,
		logger:     log.Named("catalog"),
		categories: expirable.NewLRU[string, []*models.Category](cfg.CacheSize, nil, cfg.CacheTTL),
		settings:   expirable.NewLRU[string, models.SiteSettings](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// Invalidate drops cached categories and settings. Admin edits call it.
func (s *Service) Invalidate() {
	s.categories.Purge()
	s.settings.Purge()
}

// Categories returns all categories, cached.
func (s *Service) Categories(ctx context.Context) ([]*models.Category, error) {
	if v, ok := s.categories.Get(cacheKeyCategories); ok {
		return v, nil
	}
	list, err := s.stores.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	s.categories.Add(cacheKeyCategories, list)
	return list, nil
}

// Settings returns all site settings, cached.
func (s *Service) Settings(ctx context.Context) (models.SiteSettings, error) {
	if v, ok := s.settings.Get(cacheKeySiteSettings); ok {
		return v, nil
	}
	list, err := s.stores.Settings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings := models.NewSiteSettings(list)
	s.settings.Add(cacheKeySiteSettings, settings)
	return settings, nil
}

// Layout is the data shared by the header and footer.
type Layout struct {
	Categories []*models.Category
	Settings   models.SiteSettings
}

// Layout loads header and footer data.
func (s *Service) Layout(ctx context.Context) (*Layout, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return &Layout{Categories: cats, Settings: settings}, nil
}

// HomePage is everything the home view shows.
type HomePage struct {
	Featured     []*models.Product
	Categories   []*models.Category
	Posts        []*models.BlogPost
	Testimonials []*models.Testimonial
	HeroTitle    string
	HeroSubtitle string
	Carousel     []string
}

// Home loads the home page, querying in parallel.
func (s *Service) Home(ctx context.Context) (*HomePage, error) {
	page := &HomePage{}
	var settings models.SiteSettings

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page.Featured, err = s.stores.Products.List(gctx, models.ProductFilter{FeaturedOnly: true, Limit: HomeFeaturedLimit})
		return err
	})
	g.Go(func() error {
		var err error
		page.Categories, err = s.Categories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		page.Posts, err = s.stores.Blog.ListPublished(gctx, HomePostLimit)
		return err
	})
	g.Go(func() error {
		var err error
		page.Testimonials, err = s.stores.Content.ListApprovedTestimonials(gctx, HomeTestimonialLimit)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.Settings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load home page: %w", err)
	}

	page.HeroTitle = settings.String(models.SettingHeroTitle)
	page.HeroSubtitle = settings.String(models.SettingHeroSubtitle)
	page.Carousel = settings.Strings(models.SettingCarouselImages)
	if len(page.Carousel) > models.MaxCarouselImages {
		page.Carousel = page.Carousel[:models.MaxCarouselImages]
	}
	return page, nil
}

// ProductListPage is the product list with its filter sidebar.
type ProductListPage struct {
	Filter     models.ProductFilter
	Products   []*models.Product
	Categories []*models.Category
}

// Products lists products matching f.
func (s *Service) Products(ctx context.Context, f models.ProductFilter) (*ProductListPage, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.stores.Products.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &ProductListPage{Filter: f, Products: products, Categories: cats}, nil
}

// ProductDetailPage is one product with related items.
type ProductDetailPage struct {
	Product *models.Product
	Related []*models.Product
}

// ProductDetail loads a product by slug and records a view. A failed view
// write is logged and does not fail the page.
func (s *Service) ProductDetail(ctx context.Context, slug string) (*ProductDetailPage, error) {
	p, err := s.stores.Products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", slug, err)
	}
	related, err := s.stores.Products.Related(ctx, p, RelatedProductLimit)
	if err != nil {
		return nil, fmt.Errorf("related products for %q: %w", slug, err)
	}

	if s.stores.Views != nil {
		if err := s.stores.Views.Incr(ctx, p.ID.String()); err != nil {
			s.logger.Warn("failed to record product view", "product_id", p.ID, "error", err)
		}
	}
	return &ProductDetailPage{Product: p, Related: related}, nil
}

// Blog lists published posts.
func (s *Service) Blog(ctx context.Context) ([]*models.BlogPost, error) {
	posts, err := s.stores.Blog.ListPublished(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// BlogDetailPage is one post with others to read next.
type BlogDetailPage struct {
	Post    *models.BlogPost
	Related []*models.BlogPost
}

// BlogPost loads a published post. Related posts are only looked up for
// tagged posts.
func (s *Service) BlogPost(ctx context.Context, slug string) (*BlogDetailPage, error) {
	post, err := s.stores.Blog.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post %q: %w", slug, err)
	}
	page := &BlogDetailPage{Post: post}
	if len(post.Tags) > 0 {
		page.Related, err = s.stores.Blog.ListOthers(ctx, slug, RelatedPostLimit)
		if err != nil {
			return nil, fmt.Errorf("related posts for %q: %w", slug, err)
		}
	}
	return page, nil
}

// GalleryPage is the gallery grid and its category tabs.
type GalleryPage struct {
	Selected   string
	Categories []string
	Items      []*models.GalleryItem
}

// Gallery lists gallery items, optionally for one category.
func (s *Service) Gallery(ctx context.Context, category string) (*GalleryPage, error) {
	if category == "all" {
		category = ""
	}
	cats, err := s.stores.Content.GalleryCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("gallery categories: %w", err)
	}
	items, err := s.stores.Content.ListGallery(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return &GalleryPage{Selected: category, Categories: cats, Items: items}, nil
}

// FAQ returns FAQ items grouped by category.
func (s *Service) FAQ(ctx context.Context) ([]models.FAQGroup, error) {
	items, err := s.stores.Content.ListFAQ(ctx)
	if err != nil {
		return nil, fmt.Errorf("list faq: %w", err)
	}
	return models.GroupFAQ(items), nil
}

// QuoteProducts lists the products offered on the quote form.
func (s *Service) QuoteProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.stores.Products.ListQuotable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotable products: %w", err)
	}
	return products, nil
}
