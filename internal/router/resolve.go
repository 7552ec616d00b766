// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package router

import "strings"

// Well-known paths.
const (
	PathHome       = "/"
	PathAdmin      = "/admin"
	PathAdminLogin = "/admin/login"

	productPrefix = "/products/"
	blogPrefix    = "/blog/"
)

var exactRoutes = map[string]View{
	"/":           ViewHome,
	"/index.html": ViewHome,
	"/products":   ViewProductList,
	"/about":      ViewAbout,
	"/services":   ViewServices,
	"/gallery":    ViewGallery,
	"/blog":       ViewBlogList,
	"/faq":        ViewFAQ,
	"/contact":    ViewContact,
	"/get-quote":  ViewGetQuote,
}

var adminRoutes = map[string]View{
	"/admin":            ViewAdminDashboard,
	"/admin/":           ViewAdminDashboard,
	"/admin/products":   ViewAdminProducts,
	"/admin/categories": ViewAdminCategories,
	"/admin/quotes":     ViewAdminQuotes,
	"/admin/settings":   ViewAdminSettings,
}

// IsAdminScoped reports whether path falls under the admin prefix. The
// match is a plain string prefix, so "/administration" is admin-scoped too.
func IsAdminScoped(path string) bool {
	return strings.HasPrefix(path, PathAdmin)
}

// IsLogin reports whether path is exactly the admin login path.
func IsLogin(path string) bool {
	return path == PathAdminLogin
}

// Resolve maps a normalized path to a route. Unknown paths resolve to the
// home view. Admin-scoped paths other than the login path resolve to their
// admin sub-view without any access check.
func Resolve(path string) Route {
	if IsLogin(path) {
		return Route{View: ViewAdminLogin}
	}
	if IsAdminScoped(path) {
		return Route{View: ResolveAdmin(path)}
	}
	if v, ok := exactRoutes[path]; ok {
		return Route{View: v}
	}
	if slug, ok := param(path, productPrefix); ok {
		return Route{View: ViewProductDetail, Params: Params{Slug: slug}}
	}
	if slug, ok := param(path, blogPrefix); ok {
		return Route{View: ViewBlogDetail, Params: Params{Slug: slug}}
	}
	return Route{View: ViewHome}
}

// ResolveAdmin selects the admin sub-view by exact match, defaulting to the
// dashboard for any unrecognized admin sub-path.
func ResolveAdmin(path string) View {
	if v, ok := adminRoutes[path]; ok {
		return v
	}
	return ViewAdminDashboard
}

// param returns the text between the prefix and its next occurrence, if any.
// "/products/a/b" yields "a/b"; "/products/a/products/b" yields "a".
func param(path, prefix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := path[len(prefix):]
	if i := strings.Index(rest, prefix); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}
