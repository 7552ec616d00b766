// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/auth"
	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/router"
	"github.com/skursatToklucu/ozanparquet/internal/services/catalog"
)

// Form names reported to metrics.
const (
	formContact  = "contact"
	formQuote    = "quote"
	formLogin    = "login"
	formProduct  = "product"
	formCategory = "category"
	formSettings = "settings"
)

// formRequest wraps a form post as a request for view v.
func (h *Handler) formRequest(r *http.Request, v router.View) *pageRequest {
	return &pageRequest{
		r:     r,
		route: router.Route{View: v},
		path:  h.base.Strip(r.URL.Path),
		query: r.URL.Query(),
	}
}

// fieldErrors extracts per-field messages from a validation failure.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	ae, ok := apperrors.GetAppError(err)
	if !ok {
		return out
	}
	for k, v := range ae.Details {
		if msg, ok := v.(string); ok {
			out[k] = msg
		}
	}
	if len(out) == 0 && ae.Message != "" {
		out["_form"] = ae.Message
	}
	return out
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// formLines splits a textarea into its non-blank lines.
func formLines(r *http.Request, key string) []string {
	var out []string
	for _, line := range strings.Split(r.PostFormValue(key), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseDecimal accepts both "12.5" and "12,5".
func parseDecimal(v string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", "."), 64)
}

// SubmitContact handles POST /contact.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.RenderError(w, r, http.StatusBadRequest, "Geçersiz form gönderimi.")
		return
	}
	c := models.ContactSubmission{
		Name:    formValue(r, "name"),
		Email:   formValue(r, "email"),
		Phone:   formValue(r, "phone"),
		Subject: formValue(r, "subject"),
		Message: formValue(r, "message"),
	}

	err := h.catalog.SubmitContact(r.Context(), &c)
	h.metrics.ObserveSubmission(formContact, err)
	if err != nil {
		if apperrors.IsValidationError(err) {
			h.writePage(w, h.formRequest(r, router.ViewContact), nil, &Page{
				Title:  "İletişim",
				Status: formErrorStatus(r),
				Data:   &ContactForm{Values: c, Errors: fieldErrors(err)},
			})
			return
		}
		h.handleServiceError(w, r, err, nil)
		return
	}
	h.redirect(w, r, "/contact?sent=1")
}

// quoteFromForm reads every quote field; hidden inputs carry the values of
// steps not on screen.
func quoteFromForm(r *http.Request) (models.QuoteRequest, map[string]string) {
	q := models.QuoteRequest{
		ProductName:      formValue(r, "product_name"),
		DeliveryCity:     formValue(r, "delivery_city"),
		DeliveryDistrict: formValue(r, "delivery_district"),
		ServiceType:      formValue(r, "service_type"),
		CustomerName:     formValue(r, "customer_name"),
		CustomerPhone:    formValue(r, "customer_phone"),
		CustomerEmail:    formValue(r, "customer_email"),
		CompanyName:      formValue(r, "company_name"),
		Notes:            formValue(r, "notes"),
	}
	errs := make(map[string]string)
	if v := formValue(r, "product_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q.ProductID = &id
		}
	}
	if v := formValue(r, "area_sqm"); v != "" {
		area, err := parseDecimal(v)
		if err != nil {
			errs["area_sqm"] = "must be a number"
		}
		q.AreaSqm = area
	}
	return q, errs
}

// SubmitQuote handles POST /get-quote. Steps before the last only validate
// their own fields and advance; the last step stores the request.
func (h *Handler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.RenderError(w, r, http.StatusBadRequest, "Geçersiz form gönderimi.")
		return
	}
	step, err := strconv.Atoi(formValue(r, "step"))
	if err != nil || step < 1 || step > catalog.QuoteSteps {
		step = 1
	}
	q, parseErrs := quoteFromForm(r)
	form := &QuoteForm{Step: step, Steps: catalog.QuoteSteps, Values: q}
	req := h.formRequest(r, router.ViewGetQuote)

	show := func(status int) {
		page, err := h.quotePage(req, form)
		if err != nil {
			h.handleServiceError(w, r, err, nil)
			return
		}
		page.Status = status
		h.writePage(w, req, nil, page)
	}

	if r.PostFormValue("action") == "back" {
		if form.Step > 1 {
			form.Step--
		}
		show(http.StatusOK)
		return
	}

	errs := catalog.ValidateQuoteStep(step, &form.Values)
	if msg, ok := parseErrs["area_sqm"]; ok && step == 1 {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["area_sqm"] = msg
	}
	if len(errs) > 0 {
		form.Errors = errs
		show(formErrorStatus(r))
		return
	}
	if step < catalog.QuoteSteps {
		form.Step++
		show(http.StatusOK)
		return
	}

	err = h.catalog.SubmitQuote(r.Context(), &form.Values)
	h.metrics.ObserveSubmission(formQuote, err)
	if err != nil {
		if apperrors.IsValidationError(err) {
			form.Errors = fieldErrors(err)
			show(formErrorStatus(r))
			return
		}
		h.handleServiceError(w, r, err, nil)
		return
	}
	h.redirect(w, r, "/get-quote?submitted=1")
}

// Login handles POST /admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.RenderError(w, r, http.StatusBadRequest, "Geçersiz form gönderimi.")
		return
	}
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		h.RenderError(w, r, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}

	form := &LoginForm{Email: formValue(r, "email")}
	if ret := formValue(r, "return"); isSafeReturnURL(ret) && !router.IsLogin(ret) {
		form.Return = ret
	}

	_, err := sess.SignIn(r.Context(), auth.Credential{Email: form.Email, Password: r.PostFormValue("password")})
	h.metrics.ObserveSubmission(formLogin, err)
	if err != nil {
		status := formErrorStatus(r)
		switch {
		case apperrors.IsForbiddenError(err):
			form.Error = "Bu hesapla şu anda giriş yapılamıyor. Lütfen daha sonra tekrar deneyin."
		case apperrors.IsUnauthorizedError(err):
			form.Error = "E-posta veya şifre hatalı."
		default:
			h.logger.Error("admin sign-in failed", "error", err)
			form.Error = "Giriş şu anda yapılamıyor. Lütfen tekrar deneyin."
			status = http.StatusServiceUnavailable
		}
		h.writePage(w, h.formRequest(r, router.ViewAdminLogin), nil, &Page{
			Title:  "Yönetici Girişi",
			Status: status,
			Data:   form,
		})
		return
	}

	next := router.PathAdmin
	if form.Return != "" {
		next = form.Return
	}
	h.redirect(w, r, next)
}

// Logout handles POST /admin/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := GetSessionFromContext(r.Context()); sess != nil {
		if err := sess.SignOut(r.Context()); err != nil {
			h.logger.Warn("admin sign-out failed", "error", err)
		}
	}
	h.redirect(w, r, router.PathAdminLogin)
}

// idParam reads the {id} URL parameter.
func idParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperrors.InvalidInput("invalid id")
	}
	return id, nil
}

// optionalID parses an optional UUID form field.
func optionalID(v string) (*uuid.UUID, error) {
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseSpecs reads "key: value" lines.
func parseSpecs(lines []string) map[string]string {
	specs := make(map[string]string, len(lines))
	for _, line := range lines {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		specs[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return specs
}

func productFromForm(r *http.Request) (*models.Product, map[string]string) {
	errs := make(map[string]string)
	p := &models.Product{
		Name:             formValue(r, "name"),
		Slug:             formValue(r, "slug"),
		Description:      formValue(r, "description"),
		ShortDescription: formValue(r, "short_description"),
		Images:           formLines(r, "images"),
		Specifications:   parseSpecs(formLines(r, "specifications")),
		PriceRange:       formValue(r, "price_range"),
		Thickness:        formValue(r, "thickness"),
		SurfaceFinish:    formValue(r, "surface_finish"),
		ColorTone:        formValue(r, "color_tone"),
		InStock:          isChecked(r.PostFormValue("in_stock")),
		Featured:         isChecked(r.PostFormValue("featured")),
	}
	if v := formValue(r, "id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs["id"] = "invalid id"
		}
		p.ID = id
	}
	cat, err := optionalID(formValue(r, "category_id"))
	if err != nil {
		errs["category_id"] = "invalid category"
	}
	p.CategoryID = cat
	if v := formValue(r, "warranty_years"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs["warranty_years"] = "must be a whole number"
		}
		p.WarrantyYears = n
	}
	if v := formValue(r, "box_coverage_sqm"); v != "" {
		f, err := parseDecimal(v)
		if err != nil {
			errs["box_coverage_sqm"] = "must be a number"
		}
		p.BoxCoverageSqm = f
	}
	return p, errs
}

// SaveProduct handles POST /admin/products.
func (h *Handler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.RenderError(w, r, http.StatusBadRequest, "Geçersiz form gönderimi.")
		return
	}
	p, errs := productFromForm(r)
	var err error
	if len(errs) == 0 {
		err = h.admin.SaveProduct(r.Context(), p)
		h.metrics.ObserveSubmission(formProduct, err)
		if err != nil && !apperrors.IsValidationError(err) && !apperrors.IsConflictError(err) {
			h.handleServiceError(w, r, err, nil)
			return
		}
		errs = fieldErrors(err)
		if apperrors.IsConflictError(err) {
			errs["slug"] = "bu kısa ad zaten kullanılıyor"
		}
	}
	if err == nil && len(errs) == 0 {
		h.redirect(w, r, "/admin/products?saved=1")
		return
	}

	req := h.formRequest(r, router.ViewAdminProducts)
	view, verr := h.adminProductsView(req)
	if verr != nil {
		h.handleServiceError(w, r, verr, nil)
		return
	}
	view.Editing, view.Errors = p, errs
	h.writePage(w, req, nil, &Page{Title: "Ürün Yönetimi", Status: formErrorStatus(r), Data: view})
}

// DeleteProduct handles POST /admin/products/{id}/delete.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err == nil {
		err = h.admin.DeleteProduct(r.Context(), id)
	}
	if err != nil {
		h.handleServiceError(w, r, err, nil)
		return
	}
	h.redirect(w, r, "/admin/products")
}

func categoryFromForm(r *http.Request) (*models.Category, map[string]string) {
	errs := make(map[string]string)
	c := &models.Category{
		Name:        formValue(r, "name"),
		Slug:        formValue(r, "slug"),
		Description: formValue(r, "description"),
		ImageURL:    formValue(r, "image_url"),
	}
	if v := formValue(r, "id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs["id"] = "invalid id"
		}
		c.ID = id
	}
	if v := formValue(r, "display_order"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs["display_order"] = "must be a whole number"
		}
		c.DisplayOrder = n
	}
	return c, errs
}

// SaveCategory handles POST /admin/categories.
func (h *Handler) SaveCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.RenderError(w, r, http.StatusBadRequest, "Geçersiz form gönderimi.")
		return
	}
	c, errs := categoryFromForm(r)
	var err error
	if len(errs) == 0 {
		err = h.admin.SaveCategory(r.Context(), c)
		h.metrics.ObserveSubmission(formCategory, err)
		if err != nil && !apperrors.IsValidationError(err) && !apperrors.IsConflictError(err) {
			h.handleServiceError(w, r, err, nil)
			return
		}
		errs = fieldErrors(err)
		if apperrors.IsConflictError(err) {
			errs["slug"] = "bu kısa ad zaten kullanılıyor"
		}
	}
	if err == nil && len(errs) == 0 {
		h.redirect(w, r, "/admin/categories?saved=1")
		return
	}

	req := h.formRequest(r, router.ViewAdminCategories)
	view, verr := h.adminCategoriesView(req)
	if verr != nil {
		h.handleServiceError(w, r, verr, nil)
		return
	}
	view.Editing, view.Errors = c, errs
	h.writePage(w, req, nil, &Page{Title: "Kategori Yönetimi", Status: formErrorStatus(r), Data: view})
}

// DeleteCategory handles POST /admin/categories/{id}/delete.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err == nil {
		err = h.admin.DeleteCategory(r.Context(), id)
	}
	if err != nil {
		h.handleServiceError(w, r, err, nil)
		return
	}
	h.redirect(w, r, "/admin/categories")
}

// quotesReturn rebuilds the quote list location from the posted filter.
func quotesReturn(r *http.Request) string {
	q := url.Values{}
	if v := formValue(r, "filter_status"); v != "" {
		q.Set("status", v)
	}
	if v := formValue(r, "filter_q"); v != "" {
		q.Set("q", v)
	}
	if len(q) == 0 {
		return "/admin/quotes"
	}
	return "/admin/quotes?" + q.Encode()
}

// SetQuoteStatus handles POST /admin/quotes/{id}/status.
func (h *Handler) SetQuoteStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err == nil {
		err = h.admin.SetQuoteStatus(r.Context(), id, models.QuoteStatus(formValue(r, "status")))
	}
	if err != nil {
		h.handleServiceError(w, r, err, nil)
		return
	}
	h.redirect(w, r, quotesReturn(r))
}

// DeleteQuote handles POST /admin/quotes/{id}/delete.
func (h *Handler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err == nil {
		err = h.admin.DeleteQuote(r.Context(), id)
	}
	if err != nil {
		h.handleServiceError(w, r, err, nil)
		return
	}
	h.redirect(w, r, quotesReturn(r))
}

// settingFormKey is the form field of a setting.
func settingFormKey(key string) string {
	return "setting_" + key
}

// UpdateSettings handles POST /admin/settings. Only settings present in
// the form are written.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.RenderError(w, r, http.StatusBadRequest, "Geçersiz form gönderimi.")
		return
	}
	req := h.formRequest(r, router.ViewAdminSettings)
	view, err := h.adminSettingsView(req)
	if err != nil {
		h.handleServiceError(w, r, err, nil)
		return
	}

	values := make(map[string]json.RawMessage)
	for i, f := range view.Fields {
		name := settingFormKey(f.Key)
		if _, ok := r.PostForm[name]; !ok {
			continue
		}
		var raw []byte
		if f.IsList() {
			list := formLines(r, name)
			if list == nil {
				list = []string{}
			}
			raw, err = json.Marshal(list)
			view.Fields[i].List = list
		} else {
			v := formValue(r, name)
			raw, err = json.Marshal(v)
			view.Fields[i].Value = v
		}
		if err != nil {
			h.handleServiceError(w, r, err, nil)
			return
		}
		values[f.Key] = raw
	}

	err = h.admin.UpdateSettings(r.Context(), values)
	h.metrics.ObserveSubmission(formSettings, err)
	if err != nil {
		if !apperrors.IsValidationError(err) {
			h.handleServiceError(w, r, err, nil)
			return
		}
		view.Error = "Ayarlar kaydedilemedi. Lütfen değerleri kontrol edin."
		h.writePage(w, req, nil, &Page{Title: "Site Ayarları", Status: formErrorStatus(r), Data: view})
		return
	}
	h.redirect(w, r, "/admin/settings?saved=1")
}

// RedirectMarker handles GET /404.html?p=<request-uri>, the static-hosting
// fallback for deep links. It leaves a one-time marker for the next full
// load and sends the browser to the app root.
func (h *Handler) RedirectMarker(w http.ResponseWriter, r *http.Request) {
	root := h.base.String()
	u, err := url.ParseRequestURI(r.URL.Query().Get("p"))
	if err != nil || u.Host != "" {
		http.Redirect(w, r, root, http.StatusFound)
		return
	}

	target := u.EscapedPath()
	if !h.base.Contains(u.Path) {
		target = h.base.Join(u.EscapedPath())
	}
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	if isSafeReturnURL(target) {
		setRedirectMarker(w, root, target)
	}
	http.Redirect(w, r, root, http.StatusFound)
}
