// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"net/url"
	"strings"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	"github.com/skursatToklucu/ozanparquet/internal/services/catalog"
)

// Option is one entry of a select box.
type Option struct {
	Value string
	Label string
}

// Filter choices on the product list.
var (
	colorOptions = []Option{
		{"Açık", "Açık Tonlar"},
		{"Kahve", "Kahve Tonları"},
		{"Koyu", "Koyu Tonlar"},
		{"Gri", "Gri Tonları"},
		{"Doğal", "Doğal"},
	}
	thicknessOptions = []string{"5mm", "8mm", "10mm", "12mm", "14mm", "15mm"}
	surfaceOptions   = []string{"Mat", "Dokulu", "Cilalı", "Lake", "Yağlı"}
)

// ProductListView is the product list with its filter choices.
type ProductListView struct {
	*catalog.ProductListPage
	Colors      []Option
	Thicknesses []string
	Surfaces    []string
}

// ContactForm is the contact page's form state.
type ContactForm struct {
	Values models.ContactSubmission
	Errors map[string]string
	Sent   bool
}

// QuoteForm is the multi-step quote form's state.
type QuoteForm struct {
	Step      int
	Steps     int
	Values    models.QuoteRequest
	Products  []*models.Product
	Errors    map[string]string
	Submitted bool
}

func (h *Handler) viewHome(req *pageRequest) (*Page, error) {
	home, err := h.catalog.Home(req.ctx())
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Ana Sayfa", Data: home}, nil
}

func productFilterFrom(q url.Values) models.ProductFilter {
	return models.ProductFilter{
		CategorySlug:  strings.TrimSpace(q.Get("category")),
		Color:         strings.TrimSpace(q.Get("color")),
		Thickness:     strings.TrimSpace(q.Get("thickness")),
		SurfaceFinish: strings.TrimSpace(q.Get("surface")),
		PriceRange:    strings.TrimSpace(q.Get("price_range")),
		InStockOnly:   isChecked(q.Get("in_stock")),
	}
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func (h *Handler) viewProductList(req *pageRequest) (*Page, error) {
	list, err := h.catalog.Products(req.ctx(), productFilterFrom(req.query))
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Ürünler", Data: &ProductListView{
		ProductListPage: list,
		Colors:          colorOptions,
		Thicknesses:     thicknessOptions,
		Surfaces:        surfaceOptions,
	}}, nil
}

func (h *Handler) viewProductDetail(req *pageRequest) (*Page, error) {
	detail, err := h.catalog.ProductDetail(req.ctx(), req.route.Params.Slug)
	if err != nil {
		return nil, err
	}
	return &Page{Title: detail.Product.Name, Data: detail}, nil
}

func (h *Handler) viewAbout(*pageRequest) (*Page, error) {
	return &Page{Title: "Hakkımızda"}, nil
}

func (h *Handler) viewServices(*pageRequest) (*Page, error) {
	return &Page{Title: "Hizmetler"}, nil
}

func (h *Handler) viewGallery(req *pageRequest) (*Page, error) {
	gallery, err := h.catalog.Gallery(req.ctx(), strings.TrimSpace(req.query.Get("category")))
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Galeri", Data: gallery}, nil
}

func (h *Handler) viewBlogList(req *pageRequest) (*Page, error) {
	posts, err := h.catalog.Blog(req.ctx())
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Blog", Data: posts}, nil
}

func (h *Handler) viewBlogDetail(req *pageRequest) (*Page, error) {
	post, err := h.catalog.BlogPost(req.ctx(), req.route.Params.Slug)
	if err != nil {
		return nil, err
	}
	return &Page{Title: post.Post.Title, Data: post}, nil
}

func (h *Handler) viewFAQ(req *pageRequest) (*Page, error) {
	groups, err := h.catalog.FAQ(req.ctx())
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Sıkça Sorulan Sorular", Data: groups}, nil
}

func (h *Handler) viewContact(req *pageRequest) (*Page, error) {
	return &Page{Title: "İletişim", Data: &ContactForm{Sent: req.query.Get("sent") == "1"}}, nil
}

func (h *Handler) viewGetQuote(req *pageRequest) (*Page, error) {
	form := &QuoteForm{
		Step:      1,
		Steps:     catalog.QuoteSteps,
		Submitted: req.query.Get("submitted") == "1",
	}
	form.Values.ProductName = strings.TrimSpace(req.query.Get("product"))
	form.Values.ServiceType = models.ServiceFull
	return h.quotePage(req, form)
}

// quotePage fills the product choices and wraps form as the quote page.
func (h *Handler) quotePage(req *pageRequest, form *QuoteForm) (*Page, error) {
	products, err := h.catalog.QuoteProducts(req.ctx())
	if err != nil {
		return nil, err
	}
	form.Products = products
	return &Page{Title: "Teklif Al", Data: form}, nil
}
