// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

// Package admin serves the operator dashboard: label listing, creation,
// editing and deletion pages, dispatched through an explicit route
// table over a closed action set.
package admin

import (
	"sort"
	"sync"
)

// NavEntry is one link in the dashboard navigation. Entries are grouped
// under named sections and ordered by placement within a group.
type NavEntry struct {
	Group     string
	Name      string
	Title     string
	Href      string
	Placement int
}

// NavRegistry collects navigation entries from features at startup.
// Safe for concurrent use, though registration normally happens before
// the server starts.
type NavRegistry struct {
	mu      sync.RWMutex
	entries []NavEntry
}

// NewNavRegistry creates an empty registry.
func NewNavRegistry() *NavRegistry {
	return &NavRegistry{}
}

// Register adds an entry to the registry.
func (n *NavRegistry) Register(e NavEntry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, e)
}

// Entries returns a copy of the registered entries, sorted by group
// then placement then name.
func (n *NavRegistry) Entries() []NavEntry {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]NavEntry, len(n.entries))
	copy(out, n.entries)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		if out[i].Placement != out[j].Placement {
			return out[i].Placement < out[j].Placement
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// RegisterNav adds the Labels dashboard link under the analytics group.
func RegisterNav(reg *NavRegistry) {
	reg.Register(NavEntry{
		Group:     "analytics",
		Name:      "labels",
		Title:     "Labels",
		Href:      ListURL + "?action=" + ActionList,
		Placement: 1001,
	})
}
