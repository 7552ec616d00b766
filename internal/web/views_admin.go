// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	apperrors "github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/services/admin"
)

// LoginForm is the login page's form state.
type LoginForm struct {
	Email  string
	Return string
	Error  string
}

// AdminProductsView is the product table with an optional editor.
type AdminProductsView struct {
	Products   []*models.Product
	Categories []*models.Category
	Editing    *models.Product
	Errors     map[string]string
	Saved      bool
}

// AdminCategoriesView is the category table with an optional editor.
type AdminCategoriesView struct {
	Categories []*models.Category
	Editing    *models.Category
	Errors     map[string]string
	Saved      bool
}

// AdminQuotesView is the filtered quote list.
type AdminQuotesView struct {
	Quotes []*models.QuoteRequest
	Search string
	Status string
}

// SettingField is one editable site setting.
type SettingField struct {
	Key         string
	Description string
	Type        string
	Value       string
	List        []string
}

// IsList reports whether the setting holds a list of values.
func (f SettingField) IsList() bool {
	return f.Type == settingTypeList
}

// AdminSettingsView is the settings form.
type AdminSettingsView struct {
	Fields []SettingField
	Error  string
	Saved  bool
}

const settingTypeList = "images"

func (h *Handler) viewAdminLogin(req *pageRequest) (*Page, error) {
	form := &LoginForm{}
	if ret := req.query.Get("return"); isSafeReturnURL(ret) {
		form.Return = ret
	}
	return &Page{Title: "Yönetici Girişi", Data: form}, nil
}

func (h *Handler) viewAdminDashboard(req *pageRequest) (*Page, error) {
	stats, err := h.admin.Dashboard(req.ctx())
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Panel", Data: stats}, nil
}

// editTarget reads the "edit" query parameter: a UUID to edit an existing
// record, "new" for an empty editor, absent for none.
func editTarget(v string) (id uuid.UUID, open bool, err error) {
	switch v = strings.TrimSpace(v); v {
	case "":
		return uuid.Nil, false, nil
	case "new":
		return uuid.Nil, true, nil
	}
	id, err = uuid.Parse(v)
	if err != nil {
		return uuid.Nil, false, apperrors.InvalidInput("invalid id")
	}
	return id, true, nil
}

func (h *Handler) viewAdminProducts(req *pageRequest) (*Page, error) {
	view, err := h.adminProductsView(req)
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Ürün Yönetimi", Data: view}, nil
}

func (h *Handler) adminProductsView(req *pageRequest) (*AdminProductsView, error) {
	products, err := h.admin.Products(req.ctx())
	if err != nil {
		return nil, err
	}
	cats, err := h.admin.Categories(req.ctx())
	if err != nil {
		return nil, err
	}
	view := &AdminProductsView{Products: products, Categories: cats, Saved: req.query.Get("saved") == "1"}

	id, open, err := editTarget(req.query.Get("edit"))
	if err != nil {
		return nil, err
	}
	switch {
	case open && id != uuid.Nil:
		view.Editing, err = h.admin.Product(req.ctx(), id)
		if err != nil {
			return nil, err
		}
	case open:
		view.Editing = &models.Product{InStock: true}
	}
	return view, nil
}

func (h *Handler) viewAdminCategories(req *pageRequest) (*Page, error) {
	view, err := h.adminCategoriesView(req)
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Kategori Yönetimi", Data: view}, nil
}

func (h *Handler) adminCategoriesView(req *pageRequest) (*AdminCategoriesView, error) {
	cats, err := h.admin.Categories(req.ctx())
	if err != nil {
		return nil, err
	}
	view := &AdminCategoriesView{Categories: cats, Saved: req.query.Get("saved") == "1"}

	id, open, err := editTarget(req.query.Get("edit"))
	if err != nil {
		return nil, err
	}
	switch {
	case open && id != uuid.Nil:
		view.Editing, err = h.admin.Category(req.ctx(), id)
		if err != nil {
			return nil, err
		}
	case open:
		view.Editing = &models.Category{}
	}
	return view, nil
}

func (h *Handler) viewAdminQuotes(req *pageRequest) (*Page, error) {
	status, err := admin.ParseQuoteStatusFilter(req.query.Get("status"))
	if err != nil {
		return nil, err
	}
	filter := models.QuoteFilter{Search: strings.TrimSpace(req.query.Get("q")), Status: status}
	quotes, err := h.admin.Quotes(req.ctx(), filter)
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Teklif Talepleri", Data: &AdminQuotesView{
		Quotes: quotes,
		Search: filter.Search,
		Status: string(status),
	}}, nil
}

func (h *Handler) viewAdminSettings(req *pageRequest) (*Page, error) {
	view, err := h.adminSettingsView(req)
	if err != nil {
		return nil, err
	}
	view.Saved = req.query.Get("saved") == "1"
	return &Page{Title: "Site Ayarları", Data: view}, nil
}

func (h *Handler) adminSettingsView(req *pageRequest) (*AdminSettingsView, error) {
	settings, err := h.admin.Settings(req.ctx())
	if err != nil {
		return nil, err
	}
	view := &AdminSettingsView{Fields: make([]SettingField, 0, len(settings))}
	for _, s := range settings {
		f := SettingField{Key: s.Key, Description: s.Description, Type: s.Type}
		if f.IsList() {
			_ = json.Unmarshal(s.Value, &f.List)
		} else {
			_ = json.Unmarshal(s.Value, &f.Value)
		}
		view.Fields = append(view.Fields, f)
	}
	return view, nil
}
