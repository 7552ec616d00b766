// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package web

// Cookie names used by the web layer.
const (
	CookieSession  = "op_session"
	CookieCSRF     = "op_csrf"
	CookieRedirect = "op_redirect"
)

// htmx request and response headers.
const (
	headerHXRequest        = "HX-Request"
	headerHXBoosted        = "HX-Boosted"
	headerHXHistoryRestore = "HX-History-Restore-Request"
	headerHXPushURL        = "HX-Push-Url"
	headerHXReplaceURL     = "HX-Replace-Url"
	headerHXRedirect       = "HX-Redirect"
	headerHXTrigger        = "HX-Trigger"
)

// eventScrollTop is the client event that resets the scroll position.
const eventScrollTop = "scroll-top"

// csrfField is the form field and X-CSRF-Token header carrying the token.
const csrfField = "csrf_token"
