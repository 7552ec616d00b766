// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/utils"
	"github.com/skursatToklucu/ozanparquet/internal/repository/postgres"
)

// SeedData is the layout of a seed file.
type SeedData struct {
	Categories   []SeedCategory       `yaml:"categories"`
	Products     []SeedProduct        `yaml:"products"`
	BlogPosts    []SeedBlogPost       `yaml:"blog_posts"`
	Gallery      []models.GalleryItem `yaml:"gallery"`
	Testimonials []models.Testimonial `yaml:"testimonials"`
	FAQ          []models.FAQItem     `yaml:"faq"`
	// Settings values may be strings or lists; they are stored as JSON.
	Settings map[string]interface{} `yaml:"settings"`
}

// SeedCategory is a category in a seed file.
type SeedCategory struct {
	Name         string `yaml:"name"`
	Slug         string `yaml:"slug"`
	Description  string `yaml:"description"`
	ImageURL     string `yaml:"image_url"`
	DisplayOrder int    `yaml:"display_order"`
}

// SeedProduct is a product in a seed file. Category is a category slug.
type SeedProduct struct {
	Category         string            `yaml:"category"`
	Name             string            `yaml:"name"`
	Slug             string            `yaml:"slug"`
	Description      string            `yaml:"description"`
	ShortDescription string            `yaml:"short_description"`
	Images           []string          `yaml:"images"`
	Specifications   map[string]string `yaml:"specifications"`
	PriceRange       string            `yaml:"price_range"`
	Thickness        string            `yaml:"thickness"`
	SurfaceFinish    string            `yaml:"surface_finish"`
	ColorTone        string            `yaml:"color_tone"`
	InStock          bool              `yaml:"in_stock"`
	Featured         bool              `yaml:"featured"`
	WarrantyYears    int               `yaml:"warranty_years"`
	BoxCoverageSqm   float64           `yaml:"box_coverage_sqm"`
}

// SeedBlogPost is a blog post in a seed file.
type SeedBlogPost struct {
	Title      string   `yaml:"title"`
	Slug       string   `yaml:"slug"`
	CoverImage string   `yaml:"cover_image"`
	Summary    string   `yaml:"summary"`
	Content    string   `yaml:"content"`
	Author     string   `yaml:"author"`
	Tags       []string `yaml:"tags"`
	Published  bool     `yaml:"published"`
}

// SeedResult counts the rows a seed run wrote.
type SeedResult struct {
	Categories   int
	Products     int
	BlogPosts    int
	Gallery      int
	Testimonials int
	FAQ          int
	Settings     int
	Skipped      int
}

// ParseSeed decodes a seed file. Unknown keys are rejected.
func ParseSeed(r io.Reader) (*SeedData, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var data SeedData
	if err := dec.Decode(&data); err != nil {
		if err == io.EOF {
			return &data, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &data, nil
}

// seedStores is the persistence a seed run writes to.
type seedStores struct {
	categories interface {
		Create(ctx context.Context, c *models.Category) error
		GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	}
	products interface {
		Create(ctx context.Context, p *models.Product) error
	}
	blog interface {
		Create(ctx context.Context, p *models.BlogPost) error
	}
	content interface {
		CreateGalleryItem(ctx context.Context, g *models.GalleryItem) error
		CreateTestimonial(ctx context.Context, t *models.Testimonial) error
		CreateFAQItem(ctx context.Context, f *models.FAQItem) error
	}
	settings interface {
		Upsert(ctx context.Context, s *models.SiteSetting) error
	}
}

// apply writes data. Categories, products and posts whose slug already
// exists are skipped; settings are overwritten.
func (s seedStores) apply(ctx context.Context, data *SeedData) (*SeedResult, error) {
	res := &SeedResult{}

	for i := range data.Categories {
		sc := data.Categories[i]
		c := &models.Category{
			Name:         sc.Name,
			Slug:         utils.DefaultString(sc.Slug, utils.Slugify(sc.Name)),
			Description:  sc.Description,
			ImageURL:     sc.ImageURL,
			DisplayOrder: sc.DisplayOrder,
		}
		if err := s.categories.Create(ctx, c); err != nil {
			if !apperrors.IsConflictError(err) {
				return res, fmt.Errorf("category %q: %w", c.Slug, err)
			}
			res.Skipped++
			continue
		}
		res.Categories++
	}

	for i := range data.Products {
		sp := data.Products[i]
		p := &models.Product{
			Name:             sp.Name,
			Slug:             utils.DefaultString(sp.Slug, utils.Slugify(sp.Name)),
			Description:      sp.Description,
			ShortDescription: sp.ShortDescription,
			Images:           sp.Images,
			Specifications:   sp.Specifications,
			PriceRange:       sp.PriceRange,
			Thickness:        sp.Thickness,
			SurfaceFinish:    sp.SurfaceFinish,
			ColorTone:        sp.ColorTone,
			InStock:          sp.InStock,
			Featured:         sp.Featured,
			WarrantyYears:    sp.WarrantyYears,
			BoxCoverageSqm:   sp.BoxCoverageSqm,
		}
		if sp.Category != "" {
			cat, err := s.categories.GetBySlug(ctx, sp.Category)
			if err != nil {
				return res, fmt.Errorf("product %q: category %q: %w", p.Slug, sp.Category, err)
			}
			p.CategoryID = &cat.ID
		}
		if err := s.products.Create(ctx, p); err != nil {
			if !apperrors.IsConflictError(err) {
				return res, fmt.Errorf("product %q: %w", p.Slug, err)
			}
			res.Skipped++
			continue
		}
		res.Products++
	}

	for i := range data.BlogPosts {
		sb := data.BlogPosts[i]
		p := &models.BlogPost{
			Title:      sb.Title,
			Slug:       utils.DefaultString(sb.Slug, utils.Slugify(sb.Title)),
			CoverImage: sb.CoverImage,
			Summary:    sb.Summary,
			Content:    sb.Content,
			Author:     sb.Author,
			Tags:       sb.Tags,
			Published:  sb.Published,
		}
		if err := s.blog.Create(ctx, p); err != nil {
			if !apperrors.IsConflictError(err) {
				return res, fmt.Errorf("blog post %q: %w", p.Slug, err)
			}
			res.Skipped++
			continue
		}
		res.BlogPosts++
	}

	for i := range data.Gallery {
		if err := s.content.CreateGalleryItem(ctx, &data.Gallery[i]); err != nil {
			return res, err
		}
		res.Gallery++
	}
	for i := range data.Testimonials {
		if err := s.content.CreateTestimonial(ctx, &data.Testimonials[i]); err != nil {
			return res, err
		}
		res.Testimonials++
	}
	for i := range data.FAQ {
		if err := s.content.CreateFAQItem(ctx, &data.FAQ[i]); err != nil {
			return res, err
		}
		res.FAQ++
	}

	for key, value := range data.Settings {
		setting, err := seedSetting(key, value)
		if err != nil {
			return res, err
		}
		if err := s.settings.Upsert(ctx, setting); err != nil {
			return res, err
		}
		res.Settings++
	}
	return res, nil
}

// seedSetting converts a YAML value into a stored setting. Lists become
// JSON arrays; carousel_images keeps at most MaxCarouselImages entries.
func seedSetting(key string, value interface{}) (*models.SiteSetting, error) {
	typ := "text"
	if list, ok := value.([]interface{}); ok {
		typ = "json"
		if key == models.SettingCarouselImages && len(list) > models.MaxCarouselImages {
			value = list[:models.MaxCarouselImages]
		}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("setting %q: %w", key, err)
	}
	return &models.SiteSetting{Key: key, Value: raw, Type: typ}, nil
}

// Seed loads a YAML seed file into the database.
func Seed(cfgFile, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	data, err := ParseSeed(f)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := openDB(ctx, cfgFile)
	if err != nil {
		return err
	}
	defer db.Close()

	stores := seedStores{
		categories: postgres.NewCategoryRepository(db),
		products:   postgres.NewProductRepository(db),
		blog:       postgres.NewBlogRepository(db),
		content:    postgres.NewContentRepository(db),
		settings:   postgres.NewSettingsRepository(db),
	}
	res, err := stores.apply(ctx, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seeded %d categories, %d products, %d posts, %d gallery items, %d testimonials, %d FAQ items, %d settings (%d skipped)\n",
		res.Categories, res.Products, res.BlogPosts, res.Gallery, res.Testimonials, res.FAQ, res.Settings, res.Skipped)
	return nil
}
