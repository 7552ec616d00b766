// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"context"
	"net/http"
	"net/url"

	"github.com/skursatToklucu/ozanparquet/internal/auth"
	"github.com/skursatToklucu/ozanparquet/internal/gate"
	"github.com/skursatToklucu/ozanparquet/internal/navigation"
	"github.com/skursatToklucu/ozanparquet/internal/router"
)

// navEvent is how a page request entered the app.
type navEvent int

const (
	// eventLoad is a full document load: typed URL, reload, bookmark.
	eventLoad navEvent = iota
	// eventNavigate is an activated in-app link or form.
	eventNavigate
	// eventPop is a back/forward traversal.
	eventPop
)

func (e navEvent) String() string {
	switch e {
	case eventNavigate:
		return "navigate"
	case eventPop:
		return "pop"
	}
	return "load"
}

func eventOf(r *http.Request) navEvent {
	switch {
	case isHistoryRestore(r):
		return eventPop
	case isBoosted(r):
		return eventNavigate
	}
	return eventLoad
}

// Page is what a view renderer produced.
type Page struct {
	Title string
	// Status defaults to 200.
	Status int
	Data   any
}

// pageRequest is the input of a view renderer.
type pageRequest struct {
	r     *http.Request
	route router.Route
	path  string
	query url.Values
}

func (p *pageRequest) ctx() context.Context {
	return p.r.Context()
}

type viewFunc func(req *pageRequest) (*Page, error)

// ServePage is the single entry point for page requests: it turns the
// request into a navigation event, asks the gate what to show and renders
// the selected view.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	hist := &responseHistory{}
	ctrl := navigation.New(h.base, hist, hist)

	event := eventOf(r)
	switch event {
	case eventNavigate:
		target := h.base.Strip(r.URL.EscapedPath())
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		ctrl.Navigate(target)
	case eventPop:
		ctrl.Pop(r.URL.RequestURI())
	default:
		marker := &cookieMarker{w: w, r: r, path: h.base.String()}
		ctrl.Init(r.URL.RequestURI(), marker)
	}
	h.metrics.ObserveNavigation(event.String())

	path := ctrl.Current()
	state := auth.StateAnonymous
	if gate.NeedsAuth(path) {
		w.Header().Set("Cache-Control", "no-store")
		state = h.mw.awaitSession(r)
	}

	decision := gate.Decide(path, state)
	h.metrics.ObserveGate(decision.Status.String())

	switch decision.Status {
	case gate.StatusChecking:
		h.renderChecking(w, r, path, hist)
		return
	case gate.StatusDenied:
		ctrl.Navigate(loginTarget(decision.Redirect, path, h.currentQuery(r, hist).Encode()))
	case gate.StatusUnprotected:
		if decision.Route.View == router.ViewAdminLogin && state == auth.StateAuthenticated {
			next := router.PathAdmin
			if ret := h.currentQuery(r, hist).Get("return"); isSafeReturnURL(ret) && !router.IsLogin(ret) {
				next = ret
			}
			ctrl.Navigate(next)
			decision = gate.Decide(ctrl.Current(), state)
		}
	}

	req := &pageRequest{
		r:     r,
		route: decision.Route,
		path:  ctrl.Current(),
		query: h.currentQuery(r, hist),
	}
	h.serveView(w, req, hist)
}

// serveView runs the view renderer for req.route and writes the page.
func (h *Handler) serveView(w http.ResponseWriter, req *pageRequest, hist *responseHistory) {
	r := req.r
	var script *HistoryScript
	if isHTMX(r) {
		hist.writeHeaders(w)
	} else {
		script = hist.script()
	}

	view := req.route.View
	fn := h.viewFunc(view)
	if fn == nil {
		h.logger.Error("no renderer for view", "view", view.String())
		h.renderError(w, r, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.", script)
		return
	}

	page, err := fn(req)
	if err != nil {
		h.handleServiceError(w, r, err, script)
		return
	}
	h.writePage(w, req, script, page)
}

// writePage renders page as the view of req.
func (h *Handler) writePage(w http.ResponseWriter, req *pageRequest, script *HistoryScript, page *Page) {
	view := req.route.View
	h.metrics.ObserveRender(view.String())

	data := h.preparePageData(req.r, page.Title, view.String())
	data.Path = req.path
	data.Query = req.query
	data.History = script
	data.Data = page.Data

	status := page.Status
	if status == 0 {
		status = http.StatusOK
	}
	h.render(w, req.r, status, view.String(), data)
}

// renderChecking renders the placeholder shown while the session check is
// still pending. The page retries itself shortly.
func (h *Handler) renderChecking(w http.ResponseWriter, r *http.Request, path string, hist *responseHistory) {
	data := h.preparePageData(r, "Yükleniyor", templateChecking)
	data.Path = path
	data.Refresh = 1
	if isHTMX(r) {
		hist.writeHeaders(w)
	} else {
		data.History = hist.script()
	}
	h.render(w, r, http.StatusOK, templateChecking, data)
}

// currentQuery is the query string of the location the controller ended
// on. It differs from the request's when a marker or a redirect moved it.
func (h *Handler) currentQuery(r *http.Request, hist *responseHistory) url.Values {
	if hist.url != "" {
		if u, err := url.Parse(hist.url); err == nil {
			return u.Query()
		}
	}
	return r.URL.Query()
}

// loginTarget is the login path carrying the page that was denied.
func loginTarget(login, path, rawQuery string) string {
	ret := path
	if rawQuery != "" {
		ret += "?" + rawQuery
	}
	if ret == router.PathAdmin || !isSafeReturnURL(ret) {
		return login
	}
	return login + "?return=" + url.QueryEscape(ret)
}

// viewFunc selects the renderer for a view. Every view has one.
func (h *Handler) viewFunc(v router.View) viewFunc {
	switch v {
	case router.ViewHome:
		return h.viewHome
	case router.ViewProductList:
		return h.viewProductList
	case router.ViewProductDetail:
		return h.viewProductDetail
	case router.ViewAbout:
		return h.viewAbout
	case router.ViewServices:
		return h.viewServices
	case router.ViewGallery:
		return h.viewGallery
	case router.ViewBlogList:
		return h.viewBlogList
	case router.ViewBlogDetail:
		return h.viewBlogDetail
	case router.ViewFAQ:
		return h.viewFAQ
	case router.ViewContact:
		return h.viewContact
	case router.ViewGetQuote:
		return h.viewGetQuote
	case router.ViewAdminLogin:
		return h.viewAdminLogin
	case router.ViewAdminDashboard:
		return h.viewAdminDashboard
	case router.ViewAdminProducts:
		return h.viewAdminProducts
	case router.ViewAdminCategories:
		return h.viewAdminCategories
	case router.ViewAdminQuotes:
		return h.viewAdminQuotes
	case router.ViewAdminSettings:
		return h.viewAdminSettings
	}
	return nil
}
