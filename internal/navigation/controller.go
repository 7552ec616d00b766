// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package navigation keeps the current app path in step with the browser
// location. The controller is the only writer of the current path; it
// mutates history on explicit navigation events only, never on render.
package navigation

import (
	"net/url"
	"strings"
	"sync"

	"github.com/skursatToklucu/ozanparquet/internal/router"
)

// History is the part of the browser history the controller writes to.
// URLs passed in include the base path.
type History interface {
	Push(url string)
	Replace(url string)
}

// Traverser is implemented by histories that can move back and forward on
// request. Go returns the location reached, or false at either end.
type Traverser interface {
	Go(delta int) (string, bool)
}

// Scroller resets the viewport.
type Scroller interface {
	ScrollToTop()
}

// Marker is a one-time redirect marker left by a static-hosting fallback.
// Consume returns the stored URL once and then reports false.
type Marker interface {
	Consume() (string, bool)
}

// Controller owns the current path.
type Controller struct {
	base     router.BasePath
	history  History
	scroller Scroller

	mu        sync.Mutex
	current   string
	listeners map[int]func(string)
	nextID    int
}

// New creates a controller. scroller may be nil.
func New(base router.BasePath, history History, scroller Scroller) *Controller {
	return &Controller{
		base:      base,
		history:   history,
		scroller:  scroller,
		current:   "/",
		listeners: make(map[int]func(string)),
	}
}

// Init seeds the current path from the browser location at startup. When
// a redirect marker is present it is consumed, the location is replaced by
// the marker's URL (origin stripped) and the path is taken from it.
func (c *Controller) Init(location string, marker Marker) string {
	if marker != nil {
		if raw, ok := marker.Consume(); ok && raw != "" {
			target := stripOrigin(raw)
			c.history.Replace(target)
			return c.set(c.base.Strip(appPath(target)))
		}
	}
	return c.set(c.base.Strip(appPath(stripOrigin(location))))
}

// Navigate moves to an app path (base path not included; a query string is
// allowed). History gets exactly one new entry and no document is loaded.
func (c *Controller) Navigate(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	c.history.Push(c.base.Join(stripOrigin(path)))
	return c.set(appPath(path))
}

// Pop handles a history traversal that already reached location: the
// current path follows it and the scroll position resets to the top.
func (c *Controller) Pop(location string) string {
	p := c.set(c.base.Strip(appPath(stripOrigin(location))))
	if c.scroller != nil {
		c.scroller.ScrollToTop()
	}
	return p
}

// Back moves one entry back when the history can traverse.
func (c *Controller) Back() (string, bool) {
	return c.traverse(-1)
}

// Forward moves one entry forward when the history can traverse.
func (c *Controller) Forward() (string, bool) {
	return c.traverse(1)
}

func (c *Controller) traverse(delta int) (string, bool) {
	t, ok := c.history.(Traverser)
	if !ok {
		return c.Current(), false
	}
	loc, ok := t.Go(delta)
	if !ok {
		return c.Current(), false
	}
	return c.Pop(loc), true
}

// Current returns the current app path.
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Route resolves the current path.
func (c *Controller) Route() router.Route {
	return router.Resolve(c.Current())
}

// Subscribe registers fn to run after each path update. The returned
// function removes it.
func (c *Controller) Subscribe(fn func(path string)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// set updates the path first and notifies afterwards, so listeners always
// observe the new value.
func (c *Controller) set(path string) string {
	if path == "" {
		path = "/"
	}
	c.mu.Lock()
	c.current = path
	fns := make([]func(string), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(path)
	}
	return path
}

// stripOrigin drops scheme and host, keeping path, query and fragment.
// The path comes back percent-encoded whether raw was encoded or not.
func stripOrigin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	out := u.EscapedPath()
	if out == "" {
		out = "/"
	}
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}
	return out
}

// appPath returns the decoded path of a location. Current paths are always
// decoded so a slug resolves the same on every navigation event.
func appPath(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return pathOnly(s)
	}
	if u.Path == "" {
		return "/"
	}
	return u.Path
}

// pathOnly cuts the query string and fragment.
func pathOnly(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "/"
	}
	return s
}
