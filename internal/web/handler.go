// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package web serves the storefront and the admin console as server-rendered
// HTML. In-app navigation rides on htmx boosting; the navigation controller
// and the access gate decide what each request renders.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/auth"
	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
	"github.com/skursatToklucu/ozanparquet/internal/router"
	"github.com/skursatToklucu/ozanparquet/internal/services/catalog"
)

// CatalogService is the read side of the storefront plus public submissions.
type CatalogService interface {
	Layout(ctx context.Context) (*catalog.Layout, error)
	Home(ctx context.Context) (*catalog.HomePage, error)
	Products(ctx context.Context, f models.ProductFilter) (*catalog.ProductListPage, error)
	ProductDetail(ctx context.Context, slug string) (*catalog.ProductDetailPage, error)
	Blog(ctx context.Context) ([]*models.BlogPost, error)
	BlogPost(ctx context.Context, slug string) (*catalog.BlogDetailPage, error)
	Gallery(ctx context.Context, category string) (*catalog.GalleryPage, error)
	FAQ(ctx context.Context) ([]models.FAQGroup, error)
	QuoteProducts(ctx context.Context) ([]*models.Product, error)
	SubmitQuote(ctx context.Context, q *models.QuoteRequest) error
	SubmitContact(ctx context.Context, c *models.ContactSubmission) error
}

// AdminService is the admin console's back end.
type AdminService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
	Products(ctx context.Context) ([]*models.Product, error)
	Product(ctx context.Context, id uuid.UUID) (*models.Product, error)
	SaveProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	Categories(ctx context.Context) ([]*models.Category, error)
	Category(ctx context.Context, id uuid.UUID) (*models.Category, error)
	SaveCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	Quotes(ctx context.Context, f models.QuoteFilter) ([]*models.QuoteRequest, error)
	SetQuoteStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus) error
	DeleteQuote(ctx context.Context, id uuid.UUID) error
	Settings(ctx context.Context) ([]*models.SiteSetting, error)
	UpdateSettings(ctx context.Context, values map[string]json.RawMessage) error
}

// Observer receives page and form events. *observability.Metrics
// implements it.
type Observer interface {
	ObserveGate(status string)
	ObserveRender(view string)
	ObserveNavigation(kind string)
	ObserveSubmission(form string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveGate(string)              {}
func (nopObserver) ObserveRender(string)            {}
func (nopObserver) ObserveNavigation(string)        {}
func (nopObserver) ObserveSubmission(string, error) {}

// Config configures the web handler.
type Config struct {
	BasePath router.BasePath
	// PublicURL is the site's own origin. Links resolving elsewhere are
	// left to the browser.
	PublicURL string
	Version   string
}

// Handler renders pages and handles form posts.
type Handler struct {
	catalog   CatalogService
	admin     AdminService
	mw        *Middleware
	templates *Templates
	metrics   Observer
	base      router.BasePath
	origin    *url.URL
	version   string
	logger    *logger.Logger
}

// New creates the web handler and parses its templates. metrics may be nil.
func New(cat CatalogService, adm AdminService, mw *Middleware, metrics Observer, cfg Config, log *logger.Logger) (*Handler, error) {
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = nopObserver{}
	}
	h := &Handler{
		catalog: cat,
		admin:   adm,
		mw:      mw,
		metrics: metrics,
		base:    router.NewBasePath(string(cfg.BasePath)),
		version: cfg.Version,
		logger:  log.Named("web"),
	}
	if cfg.PublicURL != "" {
		u, err := url.Parse(cfg.PublicURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("web: invalid public url %q", cfg.PublicURL)
		}
		h.origin = u
	}

	tpl, err := ParseTemplates(h.funcs())
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	h.templates = tpl
	return h, nil
}

// PageData is the root value every template executes against.
type PageData struct {
	Title     string
	View      string
	Admin     *auth.Admin
	Path      string
	Query     url.Values
	Layout    *catalog.Layout
	CSRFToken string
	History   *HistoryScript
	Refresh   int
	Version   string
	Year      int
	Data      any
}

// Console reports whether the page renders inside the admin console
// chrome. The login page does not.
func (p *PageData) Console() bool {
	return p.Admin != nil && strings.HasPrefix(p.View, "admin-") && p.View != router.ViewAdminLogin.String()
}

// preparePageData creates base PageData with context injections.
func (h *Handler) preparePageData(r *http.Request, title, view string) *PageData {
	data := &PageData{
		Title:     title,
		View:      view,
		Path:      h.base.Strip(r.URL.Path),
		Query:     r.URL.Query(),
		CSRFToken: GetCSRFTokenFromContext(r.Context()),
		Version:   h.version,
		Year:      time.Now().Year(),
	}
	if sess := GetSessionFromContext(r.Context()); sess != nil && sess.State() == auth.StateAuthenticated {
		data.Admin = sess.Admin()
		if v := GetVisitorFromContext(r.Context()); v != nil {
			data.CSRFToken = v.CSRFToken()
		}
	}

	layout, err := h.catalog.Layout(r.Context())
	if err != nil {
		h.logger.Warn("failed to load layout", "error", err)
		layout = &catalog.Layout{}
	}
	data.Layout = layout
	return data
}

// renderTempl renders a templ component.
func (h *Handler) renderTempl(w http.ResponseWriter, r *http.Request, component templ.Component) {
	h.renderTemplWithStatus(w, r, http.StatusOK, component)
}

// renderTemplWithStatus renders a templ component with a specific status code.
func (h *Handler) renderTemplWithStatus(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.Error("template render failed", "path", r.URL.Path, "error", err)
	}
}

// render executes the named page template.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	component, err := h.templates.Component(name, data)
	if err != nil {
		h.logger.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "Template rendering error", http.StatusInternalServerError)
		return
	}
	h.renderTemplWithStatus(w, r, status, component)
}

// ErrorData is the data of the error page.
type ErrorData struct {
	Code    int
	Message string
}

// RenderError renders the error page.
func (h *Handler) RenderError(w http.ResponseWriter, r *http.Request, code int, message string) {
	h.renderError(w, r, code, message, nil)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, code int, message string, hist *HistoryScript) {
	data := h.preparePageData(r, http.StatusText(code), "error")
	data.History = hist
	data.Data = ErrorData{Code: code, Message: message}
	h.render(w, r, code, "error", data)
}

// handleServiceError maps a service failure onto the error page. Internal
// failures are logged and shown with a generic message.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, hist *HistoryScript) {
	status := apperrors.HTTPStatusCode(err)
	switch {
	case status == http.StatusNotFound:
		h.renderError(w, r, status, "Aradığınız sayfa bulunamadı.", hist)
	case status >= http.StatusInternalServerError:
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
		h.renderError(w, r, status, "Beklenmeyen bir hata oluştu. Lütfen daha sonra tekrar deneyin.", hist)
	default:
		msg := http.StatusText(status)
		if ae, ok := apperrors.GetAppError(err); ok {
			msg = ae.Message
		}
		h.renderError(w, r, status, msg, hist)
	}
}

// redirect sends the browser to an app path.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, path string) {
	target := h.base.Join(path)
	// For HTMX requests, use HX-Redirect header
	if isHTMX(r) {
		w.Header().Set(headerHXRedirect, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// formErrorStatus is the status for a form re-rendered with errors. htmx
// only swaps successful responses.
func formErrorStatus(r *http.Request) int {
	if isHTMX(r) {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}
