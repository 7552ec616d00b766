// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/models"
	"github.com/skursatToklucu/ozanparquet/internal/navigation"
	"github.com/skursatToklucu/ozanparquet/internal/router"
	"github.com/skursatToklucu/ozanparquet/internal/services/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page templates beyond the routed views.
const (
	templateChecking = "checking"
	templateError    = "error"
)

// Site defaults used when a setting is missing.
var settingDefaults = map[string]string{
	models.SettingCompanyName:    "Sample Parquet",
	models.SettingCompanyTagline: "Premium Zemin Kaplamaları",
}

// Templates holds one parsed set per page: the shared layout and partials
// plus the page's own "content" block.
type Templates struct {
	pages map[string]*template.Template
}

// PageTemplateNames lists every page template: one per view plus the
// checking placeholder and the error page.
func PageTemplateNames() []string {
	names := make([]string, 0, len(router.Views())+2)
	for _, v := range router.Views() {
		names = append(names, v.String())
	}
	return append(names, templateChecking, templateError)
}

// ParseTemplates parses the embedded templates with funcs.
func ParseTemplates(funcs template.FuncMap) (*Templates, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
		"templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, err
	}

	t := &Templates{pages: make(map[string]*template.Template)}
	for _, name := range PageTemplateNames() {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		page, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", name, err)
		}
		t.pages[name] = page
	}
	return t, nil
}

// Has reports whether a page template exists.
func (t *Templates) Has(name string) bool {
	_, ok := t.pages[name]
	return ok
}

// Component executes the page into memory and returns it as a templ
// component, so a failing template never leaves a half-written response.
func (t *Templates) Component(name string, data *PageData) (templ.Component, error) {
	page, ok := t.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page template %q", name)
	}
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, err
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := buf.WriteTo(w)
		return err
	}), nil
}

// StaticFS returns the embedded static assets.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// NavLink is an anchor as rendered: in-app links keep htmx boosting,
// anything else is handed to the browser.
type NavLink struct {
	Href  string
	InApp bool
}

func (h *Handler) funcs() template.FuncMap {
	return template.FuncMap{
		"url": h.base.Join,
		"static": func(name string) string {
			u := h.base.Join("/static/" + strings.TrimPrefix(name, "/"))
			if h.version != "" {
				u += "?v=" + h.version
			}
			return u
		},
		"navlink": h.navLink,
		"active": func(current, path string) bool {
			if path == "/" {
				return current == "/"
			}
			return current == path || strings.HasPrefix(current, path+"/")
		},
		"setting": func(l *catalog.Layout, key string) string {
			if l != nil {
				if v := l.Settings.String(key); v != "" {
					return v
				}
			}
			return settingDefaults[key]
		},
		"date": func(t any) string {
			switch v := t.(type) {
			case time.Time:
				return v.Format("02.01.2006")
			case *time.Time:
				if v != nil {
					return v.Format("02.01.2006")
				}
			}
			return ""
		},
		"datetime":      func(t time.Time) string { return t.Format("02.01.2006 15:04") },
		"join":          strings.Join,
		"lines":         func(v []string) string { return strings.Join(v, "\n") },
		"paragraphs":    paragraphs,
		"seq":           seq,
		"add":           func(a, b int) int { return a + b },
		"stars":         func(n int) []int { return seq(clamp(n, 0, 5)) },
		"statusLabel":   quoteStatusLabel,
		"serviceLabel":  serviceLabel,
		"quoteStatuses": func() []models.QuoteStatus { return models.QuoteStatuses },
		"serviceTypes": func() []string {
			return []string{models.ServiceSupplyOnly, models.ServiceInstallation, models.ServiceFull}
		},
		"field": func(errs map[string]string, key string) string { return errs[key] },
		"idOf": func(id *uuid.UUID) string {
			if id == nil {
				return ""
			}
			return id.String()
		},
	}
}

// navLink decides how an arbitrary href renders. Links that stay on the
// site's origin and under the base path are rewritten to their base-path
// form and stay boosted.
func (h *Handler) navLink(href string) NavLink {
	if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") && h.origin == nil {
		return NavLink{Href: h.base.Join(href), InApp: true}
	}
	if p, ok := navigation.Intercept(navigation.Link{Href: href}, h.origin, h.base); ok {
		return NavLink{Href: h.base.Join(p), InApp: true}
	}
	return NavLink{Href: href}
}

func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func quoteStatusLabel(s models.QuoteStatus) string {
	switch s {
	case models.QuoteNew:
		return "Yeni"
	case models.QuoteContacted:
		return "İletişime Geçildi"
	case models.QuoteQuoted:
		return "Teklif Verildi"
	case models.QuoteClosed:
		return "Kapandı"
	}
	return string(s)
}

func serviceLabel(s string) string {
	switch s {
	case models.ServiceSupplyOnly:
		return "Sadece Malzeme"
	case models.ServiceInstallation:
		return "Sadece Montaj"
	case models.ServiceFull:
		return "Malzeme ve Montaj"
	}
	return s
}
