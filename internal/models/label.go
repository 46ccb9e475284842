// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

// Package models defines the persisted entity types shared across the
// storage, service, and HTTP layers.
package models

// DefaultLabelTitle is the placeholder title assigned when a label is
// created through the dashboard "add" action. The admin is redirected to
// the editor immediately afterwards to replace it.
const DefaultLabelTitle = "New Label"

// Label is a named tag that administrators attach to courses
// (e.g. "Beginner", "Archived").
//
// ID is assigned once at creation and never mutated or reused; labels
// form a flat set with no relationships between them.
type Label struct {
	// ID is the unique, stable identifier of the label.
	ID string `json:"id"`

	// Title is the short display string shown in course listings.
	Title string `json:"title"`

	// Description is optional free-form text; it may contain limited
	// markup, which the dashboard renders escaped.
	Description string `json:"description"`
}
