// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

// Package store provides durable storage of label records on BadgerDB
// together with the process-wide list cache.
//
// Caching discipline: the full label list is cached under a single
// well-known key. Every write (put or delete) invalidates that key
// after the durable write commits; reads repopulate it lazily. A crash
// between commit and invalidation can leave the cache stale for one
// read cycle, which the next write's invalidation heals - lazy
// repopulation makes this a staleness window, not a correctness
// violation.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/labelboard/internal/metrics"
	"github.com/tomtom215/labelboard/internal/models"
)

// labelKeyPrefix namespaces label records inside the shared Badger keyspace.
const labelKeyPrefix = "label:"

// ListCacheKey is the single well-known cache key holding the
// materialized label list.
const ListCacheKey = "course_labels"

// ErrLabelNotFound indicates the requested label id does not exist or
// is syntactically invalid.
var ErrLabelNotFound = errors.New("label not found")

// ListCache is the cache dependency injected into the store. It is
// satisfied by *cache.Cache and by test fakes.
type ListCache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Delete(key string)
}

// LabelStore mediates all reads and writes of label records.
type LabelStore struct {
	db    *badger.DB
	cache ListCache

	// listGen counts list invalidations. A cache-miss load only
	// repopulates the cache if no invalidation happened since the load
	// began, so a slow read cannot resurrect a pre-write snapshot.
	listGen atomic.Uint64
}

// New creates a LabelStore over an open Badger database and an
// injected list cache.
func New(db *badger.DB, cache ListCache) *LabelStore {
	return &LabelStore{db: db, cache: cache}
}

// OpenBadger opens the Badger database backing the label store.
// With inMemory set, no files are written; used by tests and dev mode.
func OpenBadger(path string, inMemory bool) (*badger.DB, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	// Badger's default logger writes unstructured output to stderr;
	// silence it and surface errors through our own error returns.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return db, nil
}

// Get fetches a single label by id.
// Returns ErrLabelNotFound when the id is empty or no record exists.
func (s *LabelStore) Get(ctx context.Context, id string) (models.Label, error) {
	if id == "" {
		metrics.RecordStoreOp("get", "not_found")
		return models.Label{}, ErrLabelNotFound
	}

	var label models.Label
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrLabelNotFound
		}
		if err != nil {
			return fmt.Errorf("get label: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &label)
		})
	})

	switch {
	case errors.Is(err, ErrLabelNotFound):
		metrics.RecordStoreOp("get", "not_found")
		return models.Label{}, ErrLabelNotFound
	case err != nil:
		metrics.RecordStoreOp("get", "error")
		return models.Label{}, err
	}

	metrics.RecordStoreOp("get", "ok")
	return label, nil
}

// Put inserts or fully overwrites a label record, then invalidates the
// list cache. The cache delete is unconditional and happens after the
// durable write commits.
func (s *LabelStore) Put(ctx context.Context, label models.Label) error {
	if label.ID == "" {
		metrics.RecordStoreOp("put", "error")
		return fmt.Errorf("put label: empty id")
	}

	data, err := json.Marshal(label)
	if err != nil {
		metrics.RecordStoreOp("put", "error")
		return fmt.Errorf("marshal label: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(label.ID), data)
	})
	if err != nil {
		metrics.RecordStoreOp("put", "error")
		return fmt.Errorf("put label: %w", err)
	}

	s.invalidateList()
	metrics.RecordStoreOp("put", "ok")
	return nil
}

// Delete removes a label record if present. Deleting an absent id is a
// silent success. The list cache is invalidated either way.
func (s *LabelStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		metrics.RecordStoreOp("delete", "ok")
		return nil
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(recordKey(id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete label: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.RecordStoreOp("delete", "error")
		return err
	}

	s.invalidateList()
	metrics.RecordStoreOp("delete", "ok")
	return nil
}

// ListAll returns the full label set: the cached list when present,
// otherwise a fresh load from Badger that repopulates the cache.
// Order is Badger's lexicographic key iteration order - stable, but not
// insertion order.
func (s *LabelStore) ListAll(ctx context.Context) ([]models.Label, error) {
	gen := s.listGen.Load()

	if cached, ok := s.cache.Get(ListCacheKey); ok {
		if labels, ok := cached.([]models.Label); ok {
			metrics.RecordCacheHit()
			metrics.RecordStoreOp("list", "ok")
			// Callers get their own slice header; the cached backing
			// array must never be appended to or reordered.
			out := make([]models.Label, len(labels))
			copy(out, labels)
			return out, nil
		}
	}
	metrics.RecordCacheMiss()

	labels := make([]models.Label, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(labelKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var label models.Label
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &label)
			})
			if err != nil {
				return fmt.Errorf("decode label %s: %w", it.Item().Key(), err)
			}
			labels = append(labels, label)
		}
		return nil
	})
	if err != nil {
		metrics.RecordStoreOp("list", "error")
		return nil, err
	}

	// Skip repopulation if a write invalidated the list while we were
	// loading; the snapshot may predate that write.
	if s.listGen.Load() == gen {
		s.cache.Set(ListCacheKey, labels)
	}
	metrics.RecordStoreOp("list", "ok")

	out := make([]models.Label, len(labels))
	copy(out, labels)
	return out, nil
}

// invalidateList drops the cached label list. Deleting an absent entry
// is a no-op, so concurrent invalidations are safe.
func (s *LabelStore) invalidateList() {
	s.listGen.Add(1)
	s.cache.Delete(ListCacheKey)
	metrics.RecordCacheInvalidation()
}

func recordKey(id string) []byte {
	return []byte(labelKeyPrefix + id)
}
