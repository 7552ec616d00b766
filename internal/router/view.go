// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package router maps request paths to the fixed set of site views.
//
// Resolution is a pure function of the path string. Admin-scoped paths are
// classified here but access to them is decided by package gate.
package router

// View identifies the page rendered for a path. The set is closed; adding a
// view means adding a constant here and a case in every exhaustive switch.
type View int

const (
	ViewHome View = iota
	ViewProductList
	ViewProductDetail
	ViewAbout
	ViewServices
	ViewGallery
	ViewBlogList
	ViewBlogDetail
	ViewFAQ
	ViewContact
	ViewGetQuote
	ViewAdminLogin
	ViewAdminDashboard
	ViewAdminProducts
	ViewAdminCategories
	ViewAdminQuotes
	ViewAdminSettings

	viewCount
)

var viewNames = [viewCount]string{
	ViewHome:            "home",
	ViewProductList:     "product-list",
	ViewProductDetail:   "product-detail",
	ViewAbout:           "about",
	ViewServices:        "services",
	ViewGallery:         "gallery",
	ViewBlogList:        "blog-list",
	ViewBlogDetail:      "blog-detail",
	ViewFAQ:             "faq",
	ViewContact:         "contact",
	ViewGetQuote:        "get-quote",
	ViewAdminLogin:      "admin-login",
	ViewAdminDashboard:  "admin-dashboard",
	ViewAdminProducts:   "admin-products",
	ViewAdminCategories: "admin-categories",
	ViewAdminQuotes:     "admin-quotes",
	ViewAdminSettings:   "admin-settings",
}

func (v View) String() string {
	if v < 0 || v >= viewCount {
		return "unknown"
	}
	return viewNames[v]
}

// Valid reports whether v is one of the declared views.
func (v View) Valid() bool {
	return v >= 0 && v < viewCount
}

// IsAdmin reports whether v belongs to the admin console, login included.
func (v View) IsAdmin() bool {
	return v >= ViewAdminLogin && v < viewCount
}

// HasParam reports whether v carries a slug parameter.
func (v View) HasParam() bool {
	return v == ViewProductDetail || v == ViewBlogDetail
}

// Views returns every declared view in declaration order.
func Views() []View {
	out := make([]View, 0, viewCount)
	for v := View(0); v < viewCount; v++ {
		out = append(out, v)
	}
	return out
}

// Params holds values extracted from the path.
type Params struct {
	Slug string
}

// Route is the outcome of resolving a path.
type Route struct {
	View   View
	Params Params
}
