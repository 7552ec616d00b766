// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
	"github.com/skursatToklucu/ozanparquet/internal/services/catalog"
)

// CatalogService is the storefront read and submission surface.
type CatalogService interface {
	Categories(ctx context.Context) ([]*models.Category, error)
	Products(ctx context.Context, f models.ProductFilter) (*catalog.ProductListPage, error)
	ProductDetail(ctx context.Context, slug string) (*catalog.ProductDetailPage, error)
	SubmitQuote(ctx context.Context, q *models.QuoteRequest) error
	SubmitContact(ctx context.Context, c *models.ContactSubmission) error
}

// CatalogHandler serves the public catalog as JSON.
type CatalogHandler struct {
	BaseHandler
	catalog CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(svc CatalogService, log *logger.Logger) *CatalogHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogHandler{
		BaseHandler: NewBaseHandler(log.Named("api.catalog")),
		catalog:     svc,
	}
}

// RegisterRoutes adds the read-only catalog routes to r.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.ListCategories)
	r.Get("/products", h.ListProducts)
	r.Get("/products/{slug}", h.GetProduct)
}

// RegisterSubmissionRoutes adds the public write routes to r. Callers rate
// limit them.
func (h *CatalogHandler) RegisterSubmissionRoutes(r chi.Router) {
	r.Post("/quotes", h.CreateQuote)
	r.Post("/contact", h.CreateContact)
}

// ============================================================================
// Request and response types
// ============================================================================

// ProductListResponse is the product list with the filter that produced it.
type ProductListResponse struct {
	Filter   models.ProductFilter `json:"filter"`
	Products []*models.Product    `json:"products"`
	Total    int                  `json:"total"`
}

// ProductResponse is one product with related items.
type ProductResponse struct {
	Product *models.Product   `json:"product"`
	Related []*models.Product `json:"related"`
}

// QuoteRequestBody is the JSON body of POST /api/v1/quotes.
type QuoteRequestBody struct {
	ProductID        *uuid.UUID `json:"product_id,omitempty"`
	ProductName      string     `json:"product_name"`
	AreaSqm          float64    `json:"area_sqm"`
	DeliveryCity     string     `json:"delivery_city"`
	DeliveryDistrict string     `json:"delivery_district,omitempty"`
	ServiceType      string     `json:"service_type"`
	CustomerName     string     `json:"customer_name"`
	CustomerPhone    string     `json:"customer_phone"`
	CustomerEmail    string     `json:"customer_email"`
	CompanyName      string     `json:"company_name,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// ContactRequestBody is the JSON body of POST /api/v1/contact.
type ContactRequestBody struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// SubmissionResponse acknowledges a stored submission.
type SubmissionResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status,omitempty"`
}

// ============================================================================
// Handlers
// ============================================================================

// ListCategories handles GET /api/v1/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	if cats == nil {
		cats = []*models.Category{}
	}
	h.OK(w, cats)
}

// ListProducts handles GET /api/v1/products. It takes the same filters as
// the product list page.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := models.ProductFilter{
		CategorySlug:  h.QueryParam(r, "category"),
		Color:         h.QueryParam(r, "color"),
		Thickness:     h.QueryParam(r, "thickness"),
		SurfaceFinish: h.QueryParam(r, "surface"),
		PriceRange:    h.QueryParam(r, "price_range"),
		InStockOnly:   h.QueryParamBool(r, "in_stock"),
		FeaturedOnly:  h.QueryParamBool(r, "featured"),
		Limit:         h.QueryParamInt(r, "limit", 0),
	}
	if filter.Limit < 0 || filter.Limit > 100 {
		h.BadRequest(w, "limit must be between 0 and 100")
		return
	}

	page, err := h.catalog.Products(r.Context(), filter)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	products := page.Products
	if products == nil {
		products = []*models.Product{}
	}
	h.OK(w, ProductListResponse{Filter: page.Filter, Products: products, Total: len(products)})
}

// GetProduct handles GET /api/v1/products/{slug}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalog.ProductDetail(r.Context(), h.URLParam(r, "slug"))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	related := detail.Related
	if related == nil {
		related = []*models.Product{}
	}
	h.OK(w, ProductResponse{Product: detail.Product, Related: related})
}

// CreateQuote handles POST /api/v1/quotes.
func (h *CatalogHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var body QuoteRequestBody
	if err := h.ParseJSON(r, &body); err != nil {
		h.HandleError(w, r, err)
		return
	}
	q := &models.QuoteRequest{
		ProductID:        body.ProductID,
		ProductName:      body.ProductName,
		AreaSqm:          body.AreaSqm,
		DeliveryCity:     body.DeliveryCity,
		DeliveryDistrict: body.DeliveryDistrict,
		ServiceType:      body.ServiceType,
		CustomerName:     body.CustomerName,
		CustomerPhone:    body.CustomerPhone,
		CustomerEmail:    body.CustomerEmail,
		CompanyName:      body.CompanyName,
		Notes:            body.Notes,
	}
	if err := h.catalog.SubmitQuote(r.Context(), q); err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.Created(w, SubmissionResponse{ID: q.ID, Status: string(q.Status)})
}

// CreateContact handles POST /api/v1/contact.
func (h *CatalogHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var body ContactRequestBody
	if err := h.ParseJSON(r, &body); err != nil {
		h.HandleError(w, r, err)
		return
	}
	c := &models.ContactSubmission{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Subject: body.Subject,
		Message: body.Message,
	}
	if err := h.catalog.SubmitContact(r.Context(), c); err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.Created(w, SubmissionResponse{ID: c.ID})
}
