// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/skursatToklucu/ozanparquet/internal/navigation"
)

// HistoryOp is a pending browser history mutation.
type HistoryOp string

const (
	HistoryNone    HistoryOp = ""
	HistoryPush    HistoryOp = "push"
	HistoryReplace HistoryOp = "replace"
)

// responseHistory records what the navigation controller asked of the
// browser during one request. Boosted requests carry it as htmx headers;
// full document loads carry it as an inline script in the layout.
type responseHistory struct {
	op     HistoryOp
	url    string
	scroll bool
}

var (
	_ navigation.History  = (*responseHistory)(nil)
	_ navigation.Scroller = (*responseHistory)(nil)
)

// Push records a new history entry. A later Push in the same request wins.
func (h *responseHistory) Push(u string) {
	h.op, h.url = HistoryPush, u
}

// Replace records a rewrite of the current entry. A pending push keeps its
// entry and only takes the new URL.
func (h *responseHistory) Replace(u string) {
	if h.op != HistoryPush {
		h.op = HistoryReplace
	}
	h.url = u
}

// ScrollToTop records a scroll reset.
func (h *responseHistory) ScrollToTop() {
	h.scroll = true
}

// writeHeaders emits the htmx response headers for a boosted request.
func (h *responseHistory) writeHeaders(w http.ResponseWriter) {
	switch h.op {
	case HistoryPush:
		w.Header().Set(headerHXPushURL, h.url)
	case HistoryReplace:
		w.Header().Set(headerHXReplaceURL, h.url)
	}
	if h.scroll {
		w.Header().Set(headerHXTrigger, eventScrollTop)
	}
}

// script returns the pending mutation for the layout's inline script.
func (h *responseHistory) script() *HistoryScript {
	if h.op == HistoryNone {
		return nil
	}
	return &HistoryScript{Op: h.op, URL: h.url}
}

// HistoryScript is rendered into the document as pushState/replaceState.
type HistoryScript struct {
	Op  HistoryOp
	URL string
}

// Method is the History API method name.
func (s *HistoryScript) Method() string {
	if s.Op == HistoryReplace {
		return "replaceState"
	}
	return "pushState"
}

// cookieMarker reads the one-time redirect marker and clears it on the
// response when consumed.
type cookieMarker struct {
	w    http.ResponseWriter
	r    *http.Request
	path string
	used bool
}

var _ navigation.Marker = (*cookieMarker)(nil)

func (m *cookieMarker) Consume() (string, bool) {
	if m.used {
		return "", false
	}
	c, err := m.r.Cookie(CookieRedirect)
	if err != nil || c.Value == "" {
		return "", false
	}
	m.used = true
	http.SetCookie(m.w, &http.Cookie{Name: CookieRedirect, Path: m.path, MaxAge: -1, HttpOnly: true})

	target, err := url.QueryUnescape(c.Value)
	if err != nil || !isSafeReturnURL(target) {
		return "", false
	}
	return target, true
}

// setRedirectMarker stores target for the next initial load.
func setRedirectMarker(w http.ResponseWriter, path, target string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieRedirect,
		Value:    url.QueryEscape(target),
		Path:     path,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// isSafeReturnURL validates a return URL to prevent open redirects.
// Only accepts relative paths starting with '/' that don't escape the origin.
func isSafeReturnURL(u string) bool {
	if u == "" {
		return false
	}
	// Must start with exactly one slash (not //, not /\)
	if !strings.HasPrefix(u, "/") || strings.HasPrefix(u, "//") || strings.HasPrefix(u, "/\\") {
		return false
	}
	if strings.ContainsAny(u, "\\") {
		return false
	}
	for _, c := range u {
		if c < 0x20 || c == 0x7f {
			return false
		}
	}
	return true
}

// isHTMX reports an htmx-issued request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get(headerHXRequest) == "true"
}

// isBoosted reports an in-app navigation through a boosted link or form.
func isBoosted(r *http.Request) bool {
	return isHTMX(r) && r.Header.Get(headerHXBoosted) == "true"
}

// isHistoryRestore reports a back/forward traversal htmx could not serve
// from its cache.
func isHistoryRestore(r *http.Request) bool {
	return r.Header.Get(headerHXHistoryRestore) == "true"
}
