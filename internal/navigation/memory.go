// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package navigation

import "sync"

// MemoryHistory is an in-process History and Traverser. It also counts
// document loads, which only Load performs.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	index   int
	loads   int
}

// NewMemoryHistory starts with one entry at initial, as after a page load.
func NewMemoryHistory(initial string) *MemoryHistory {
	return &MemoryHistory{entries: []string{initial}, loads: 1}
}

// Push drops any forward entries and appends url.
func (h *MemoryHistory) Push(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], url)
	h.index++
}

// Replace overwrites the current entry.
func (h *MemoryHistory) Replace(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = url
}

// Go moves by delta entries.
func (h *MemoryHistory) Go(delta int) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		return h.entries[h.index], false
	}
	h.index = next
	return h.entries[next], true
}

// Load simulates a full document load of url.
func (h *MemoryHistory) Load(url string) {
	h.mu.Lock()
	h.loads++
	h.mu.Unlock()
	h.Push(url)
}

// Len is the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Location is the current entry.
func (h *MemoryHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Loads is the number of document loads so far.
func (h *MemoryHistory) Loads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loads
}
