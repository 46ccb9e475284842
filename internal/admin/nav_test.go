// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

package admin

import (
	"strings"
	"testing"
)

func TestNavRegistryOrdering(t *testing.T) {
	reg := NewNavRegistry()
	reg.Register(NavEntry{Group: "settings", Name: "general", Title: "General", Placement: 10})
	reg.Register(NavEntry{Group: "analytics", Name: "usage", Title: "Usage", Placement: 20})
	reg.Register(NavEntry{Group: "analytics", Name: "labels", Title: "Labels", Placement: 10})

	entries := reg.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Group + "/" + e.Name
	}
	want := "analytics/labels analytics/usage settings/general"
	if strings.Join(got, " ") != want {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestNavEntriesCopy(t *testing.T) {
	reg := NewNavRegistry()
	reg.Register(NavEntry{Group: "analytics", Name: "labels", Title: "Labels"})

	entries := reg.Entries()
	entries[0].Title = "changed"

	if reg.Entries()[0].Title != "Labels" {
		t.Error("mutating the returned slice changed the registry")
	}
}

func TestRegisterNav(t *testing.T) {
	reg := NewNavRegistry()
	RegisterNav(reg)

	entries := reg.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Group != "analytics" || e.Title != "Labels" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Placement != 1001 {
		t.Errorf("unexpected placement %d", e.Placement)
	}
	if !strings.Contains(e.Href, ActionList) {
		t.Errorf("nav link does not target the list page: %q", e.Href)
	}
}
