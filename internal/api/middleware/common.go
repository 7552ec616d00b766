// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package middleware provides HTTP middleware for the API and the storefront.
package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ============================================================================
// IP extraction helpers
// ============================================================================

var privateNetworks = func() []*net.IPNet {
	cidrs := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
	}
	out := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		if _, network, err := net.ParseCIDR(cidr); err == nil {
			out = append(out, network)
		}
	}
	return out
}()

// getRealIP returns the client IP. X-Real-IP from the nearest proxy wins,
// then the rightmost public X-Forwarded-For entry, then RemoteAddr.
func getRealIP(r *http.Request) string {
	remoteIP := r.RemoteAddr
	if ip, _, err := net.SplitHostPort(remoteIP); err == nil {
		remoteIP = ip
	}

	if xrip := strings.TrimSpace(r.Header.Get(HeaderRealIP)); xrip != "" && net.ParseIP(xrip) != nil {
		return xrip
	}

	if xff := r.Header.Get(HeaderForwardedFor); xff != "" {
		parts := strings.Split(xff, ",")
		for i := len(parts) - 1; i >= 0; i-- {
			ip := strings.TrimSpace(parts[i])
			if ip != "" && !isPrivateIP(ip) {
				return ip
			}
		}
		if last := strings.TrimSpace(parts[len(parts)-1]); last != "" {
			return last
		}
	}

	return remoteIP
}

// isPrivateIP reports whether ipStr is loopback or in a private range.
func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ============================================================================
// Header constants
// ============================================================================

const (
	HeaderRealIP       = "X-Real-IP"
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderAccept       = "Accept"
)

// wantsJSON reports whether the client accepts a JSON response.
func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get(HeaderAccept)
	return accept == "" || accept == "*/*" || strings.Contains(accept, "application/json")
}
