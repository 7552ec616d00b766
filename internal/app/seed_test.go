// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
)

const seedYAML = `
categories:
  - name: Laminat Parke
    display_order: 1
  - name: Masif Parke
    slug: masif
products:
  - name: Meşe Lamine
    category: laminat-parke
    images: [https://cdn.example.com/mese.jpg]
    in_stock: true
  - name: Ceviz Klasik
blog_posts:
  - title: Parke Bakımı
    published: true
gallery:
  - title: Kadıköy Daire
    image_url: https://cdn.example.com/g1.jpg
testimonials:
  - customer_name: Ayşe
    rating: 5
    approved: true
faq:
  - question: Montaj ne kadar sürer?
    answer: Genellikle bir gün.
    category: Montaj
settings:
  company_name: Ozan Parke
  carousel_images: [a.jpg, b.jpg, c.jpg, d.jpg, e.jpg, f.jpg]
`

// ============================================================================
// Fakes
// ============================================================================

type fakeSeedDB struct {
	categories map[string]*models.Category
	products   []*models.Product
	posts      []*models.BlogPost
	gallery    int
	reviews    int
	faq        int
	settings   map[string]*models.SiteSetting
}

func newFakeSeedDB() *fakeSeedDB {
	return &fakeSeedDB{
		categories: make(map[string]*models.Category),
		settings:   make(map[string]*models.SiteSetting),
	}
}

func (f *fakeSeedDB) stores() seedStores {
	return seedStores{
		categories: fakeSeedCategories{f},
		products:   fakeSeedProducts{f},
		blog:       fakeSeedBlog{f},
		content:    fakeSeedContent{f},
		settings:   fakeSeedSettings{f},
	}
}

type fakeSeedCategories struct{ db *fakeSeedDB }

func (c fakeSeedCategories) Create(_ context.Context, cat *models.Category) error {
	if _, ok := c.db.categories[cat.Slug]; ok {
		return apperrors.AlreadyExists("category")
	}
	cat.ID = uuid.New()
	c.db.categories[cat.Slug] = cat
	return nil
}

func (c fakeSeedCategories) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	if cat, ok := c.db.categories[slug]; ok {
		return cat, nil
	}
	return nil, apperrors.NotFound("category")
}

type fakeSeedProducts struct{ db *fakeSeedDB }

func (p fakeSeedProducts) Create(_ context.Context, prod *models.Product) error {
	for _, existing := range p.db.products {
		if existing.Slug == prod.Slug {
			return apperrors.AlreadyExists("product")
		}
	}
	p.db.products = append(p.db.products, prod)
	return nil
}

type fakeSeedBlog struct{ db *fakeSeedDB }

func (b fakeSeedBlog) Create(_ context.Context, post *models.BlogPost) error {
	b.db.posts = append(b.db.posts, post)
	return nil
}

type fakeSeedContent struct{ db *fakeSeedDB }

func (c fakeSeedContent) CreateGalleryItem(context.Context, *models.GalleryItem) error {
	c.db.gallery++
	return nil
}

func (c fakeSeedContent) CreateTestimonial(context.Context, *models.Testimonial) error {
	c.db.reviews++
	return nil
}

func (c fakeSeedContent) CreateFAQItem(context.Context, *models.FAQItem) error {
	c.db.faq++
	return nil
}

type fakeSeedSettings struct{ db *fakeSeedDB }

func (s fakeSeedSettings) Upsert(_ context.Context, setting *models.SiteSetting) error {
	s.db.settings[setting.Key] = setting
	return nil
}

// ============================================================================
// Tests
// ============================================================================

func TestParseSeed_RejectsUnknownKeys(t *testing.T) {
	_, err := ParseSeed(strings.NewReader("categoriez:\n  - name: x\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestParseSeed_Empty(t *testing.T) {
	data, err := ParseSeed(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseSeed(\"\") error = %v", err)
	}
	if len(data.Categories) != 0 {
		t.Errorf("categories = %d, want 0", len(data.Categories))
	}
}

func TestSeed_Apply(t *testing.T) {
	data, err := ParseSeed(strings.NewReader(seedYAML))
	if err != nil {
		t.Fatalf("ParseSeed() error = %v", err)
	}

	db := newFakeSeedDB()
	res, err := db.stores().apply(context.Background(), data)
	if err != nil {
		t.Fatalf("apply() error = %v", err)
	}

	if res.Categories != 2 || res.Products != 2 || res.BlogPosts != 1 {
		t.Errorf("result = %+v", res)
	}
	if res.Gallery != 1 || res.Testimonials != 1 || res.FAQ != 1 || res.Settings != 2 {
		t.Errorf("result = %+v", res)
	}

	if _, ok := db.categories["laminat-parke"]; !ok {
		t.Error("category slug should be generated from the name")
	}
	if _, ok := db.categories["masif"]; !ok {
		t.Error("explicit category slug should be kept")
	}

	mese := db.products[0]
	if mese.Slug != "mese-lamine" {
		t.Errorf("product slug = %q, want mese-lamine", mese.Slug)
	}
	if mese.CategoryID == nil || *mese.CategoryID != db.categories["laminat-parke"].ID {
		t.Error("product should reference its category")
	}
	if db.products[1].CategoryID != nil {
		t.Error("product without category should have no category id")
	}

	var carousel []string
	if err := json.Unmarshal(db.settings[models.SettingCarouselImages].Value, &carousel); err != nil {
		t.Fatalf("carousel_images is not a JSON list: %v", err)
	}
	if len(carousel) != models.MaxCarouselImages {
		t.Errorf("carousel images = %d, want %d", len(carousel), models.MaxCarouselImages)
	}
	if got := string(db.settings["company_name"].Value); got != `"Ozan Parke"` {
		t.Errorf("company_name = %s, want a JSON string", got)
	}
}

func TestSeed_ApplyTwiceSkipsExisting(t *testing.T) {
	data, err := ParseSeed(strings.NewReader(seedYAML))
	if err != nil {
		t.Fatal(err)
	}
	db := newFakeSeedDB()
	if _, err := db.stores().apply(context.Background(), data); err != nil {
		t.Fatal(err)
	}

	res, err := db.stores().apply(context.Background(), data)
	if err != nil {
		t.Fatalf("second apply() error = %v", err)
	}
	if res.Categories != 0 || res.Products != 0 {
		t.Errorf("second run created rows: %+v", res)
	}
	if res.Skipped != 4 {
		t.Errorf("skipped = %d, want 4", res.Skipped)
	}
}

func TestSeed_UnknownCategory(t *testing.T) {
	data := &SeedData{Products: []SeedProduct{{Name: "Yetim", Category: "yok"}}}
	_, err := newFakeSeedDB().stores().apply(context.Background(), data)
	if err == nil || !strings.Contains(err.Error(), `category "yok"`) {
		t.Errorf("apply() = %v, want unknown category error", err)
	}
}

// ============================================================================
// Bootstrap
// ============================================================================

type fakeAccounts struct {
	count   int
	created []*models.AdminUser
}

func (f *fakeAccounts) Count(context.Context) (int, error) { return f.count, nil }

func (f *fakeAccounts) Create(_ context.Context, u *models.AdminUser) error {
	f.created = append(f.created, u)
	return nil
}

func testApplication(t *testing.T, bootstrapEmail string) (*Application, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log, err := logger.NewWithOutput("debug", "json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	cfg := validConfig()
	cfg.Auth.BootstrapEmail = bootstrapEmail
	return &Application{Config: cfg, Logger: log}, &buf
}

func TestBootstrapAdminUser(t *testing.T) {
	t.Run("creates first admin", func(t *testing.T) {
		app, _ := testApplication(t, "admin@ozanparke.com")
		users := &fakeAccounts{}
		if err := app.bootstrapAdminUser(context.Background(), users); err != nil {
			t.Fatalf("bootstrapAdminUser() error = %v", err)
		}
		if len(users.created) != 1 {
			t.Fatalf("created = %d, want 1", len(users.created))
		}
		u := users.created[0]
		if u.Email != "admin@ozanparke.com" || u.Role != models.RoleAdmin || !u.IsActive {
			t.Errorf("created admin = %+v", u)
		}
		if u.PasswordHash == "" || !strings.HasPrefix(u.PasswordHash, "$2") {
			t.Error("password should be stored as a bcrypt hash")
		}
	})

	t.Run("skips when admins exist", func(t *testing.T) {
		app, _ := testApplication(t, "admin@ozanparke.com")
		users := &fakeAccounts{count: 1}
		if err := app.bootstrapAdminUser(context.Background(), users); err != nil {
			t.Fatal(err)
		}
		if len(users.created) != 0 {
			t.Error("must not create an admin when one exists")
		}
	})

	t.Run("warns without bootstrap email", func(t *testing.T) {
		app, buf := testApplication(t, "")
		users := &fakeAccounts{}
		if err := app.bootstrapAdminUser(context.Background(), users); err != nil {
			t.Fatal(err)
		}
		if len(users.created) != 0 {
			t.Error("must not create an admin without bootstrap_email")
		}
		if !strings.Contains(buf.String(), "admin create") {
			t.Errorf("expected a hint in the log, got %s", buf.String())
		}
	})
}

func TestCreateAdmin_ShortPassword(t *testing.T) {
	err := createAdmin(context.Background(), &fakeAccounts{}, "a@b.com", "A", "kisa")
	if err == nil || !strings.Contains(err.Error(), "at least 8") {
		t.Errorf("createAdmin() = %v, want short password error", err)
	}
}
