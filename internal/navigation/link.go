// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package navigation

import (
	"net/url"

	"github.com/skursatToklucu/ozanparquet/internal/router"
)

// Link describes an activated anchor.
type Link struct {
	Href   string
	Target string
}

// Intercept decides whether activating link should become an in-app
// navigation instead of a document load. It does when the link resolves to
// the app's own origin, names no target, and stays under the base path.
// The returned path has the base path stripped and keeps any query.
func Intercept(link Link, origin *url.URL, base router.BasePath) (string, bool) {
	if link.Target != "" || link.Href == "" || origin == nil {
		return "", false
	}
	ref, err := url.Parse(link.Href)
	if err != nil {
		return "", false
	}
	u := origin.ResolveReference(ref)
	if u.Scheme != origin.Scheme || u.Host != origin.Host {
		return "", false
	}
	if !base.Contains(u.Path) {
		return "", false
	}
	p := base.Strip(u.Path)
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p, true
}
