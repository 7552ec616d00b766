// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package router

import "strings"

// BasePath is the URL prefix the site is mounted under, such as
// "/ozanparquet/". The zero value and "/" mean the site is at the root.
type BasePath string

// NewBasePath normalizes p to "/" or "/prefix/".
func NewBasePath(p string) BasePath {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return BasePath("/" + p + "/")
}

func (b BasePath) prefix() string {
	return strings.TrimSuffix(string(NewBasePath(string(b))), "/")
}

// Strip removes the base path from an incoming request path. The result
// always begins with "/"; a path equal to the bare prefix becomes "/".
// A path outside the base path is returned unchanged.
func (b BasePath) Strip(path string) string {
	if path == "" {
		return "/"
	}
	p := b.prefix()
	if p == "" {
		if !strings.HasPrefix(path, "/") {
			return "/" + path
		}
		return path
	}
	if path == p {
		return "/"
	}
	if strings.HasPrefix(path, p+"/") {
		return path[len(p):]
	}
	return path
}

// Join re-adds the base path to an app path for use in links and redirects.
// "/" and "/index.html" map to the base path itself.
func (b BasePath) Join(path string) string {
	root := string(NewBasePath(string(b)))
	clean := strings.TrimPrefix(path, "/")
	if clean == "" || clean == "index.html" {
		return root
	}
	return root + clean
}

// Contains reports whether a raw request path lies under the base path.
func (b BasePath) Contains(path string) bool {
	p := b.prefix()
	return p == "" || path == p || strings.HasPrefix(path, p+"/")
}

func (b BasePath) String() string {
	return string(NewBasePath(string(b)))
}
