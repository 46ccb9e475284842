// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

// Package labels implements the business operations on course labels,
// layered on the label store. Both the admin dashboard and the REST
// endpoint call through this service; it is the sole reader and writer
// of the store.
package labels

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tomtom215/labelboard/internal/models"
	"github.com/tomtom215/labelboard/internal/store"
)

// Store is the persistence dependency of the service, satisfied by
// *store.LabelStore.
type Store interface {
	Get(ctx context.Context, id string) (models.Label, error)
	Put(ctx context.Context, label models.Label) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.Label, error)
}

// Service provides validated label operations.
type Service struct {
	store Store
}

// NewService creates a label service over the given store.
func NewService(s Store) *Service {
	return &Service{store: s}
}

// List returns the full label set in stable store order.
func (s *Service) List(ctx context.Context) ([]models.Label, error) {
	return s.store.ListAll(ctx)
}

// CreateDefault creates a label with the placeholder title and an empty
// description, and returns the persisted record including its new id.
func (s *Service) CreateDefault(ctx context.Context) (models.Label, error) {
	label := models.Label{
		ID:          uuid.New().String(),
		Title:       models.DefaultLabelTitle,
		Description: "",
	}
	if err := s.store.Put(ctx, label); err != nil {
		return models.Label{}, fmt.Errorf("create label: %w", err)
	}
	return label, nil
}

// Update overwrites the title and description of an existing label.
// The id is never taken from the caller's payload; it identifies the
// record and stays immutable. Returns store.ErrLabelNotFound when no
// record exists under id.
func (s *Service) Update(ctx context.Context, id, title, description string) error {
	label, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	label.Title = title
	label.Description = description

	if err := s.store.Put(ctx, label); err != nil {
		return fmt.Errorf("update label %s: %w", id, err)
	}
	return nil
}

// Delete removes a label. Deleting an absent id is a silent success,
// matching the store semantics.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Get fetches a single label by id.
func (s *Service) Get(ctx context.Context, id string) (models.Label, error) {
	return s.store.Get(ctx, id)
}

// compile-time check that the real store satisfies the dependency
var _ Store = (*store.LabelStore)(nil)
