// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

// Package cache provides the process-wide keyed cache used for the
// materialized label list.
//
// The label list is cached under a single well-known key with no TTL:
// the only expiry mechanism is explicit invalidation by the store after
// every durable write. The cache is injected into the store rather than
// accessed as hidden global state so tests can substitute a fresh
// instance per case.
package cache

import (
	"sync"
	"time"
)

// Entry represents a cached item with optional expiration.
type Entry struct {
	Data interface{}

	// ExpiresAt is the expiry time; the zero value means the entry
	// never expires and is removed only by explicit invalidation.
	ExpiresAt time.Time
}

// Cache is a thread-safe in-memory keyed cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	stats   Stats
}

// Stats tracks cache performance counters.
type Stats struct {
	mu        sync.RWMutex
	Hits      int64
	Misses    int64
	Evictions int64
	TotalKeys int64
}

// New creates an empty cache.
//
// Entries set through Set never expire; use SetWithTTL for bounded
// lifetimes. Safe for concurrent use from multiple goroutines.
func New() *Cache {
	return &Cache{
		entries: make(map[string]Entry),
	}
}

// Get retrieves a value from the cache by key.
//
// Returns (nil, false) when the key is absent or the entry has expired;
// an expired entry is removed and counted as a miss plus an eviction.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction()
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value with no expiration. The entry stays until it is
// explicitly invalidated with Delete or Clear.
func (c *Cache) Set(key string, value interface{}) {
	c.store(key, Entry{Data: value})
}

// SetWithTTL stores a value that expires after the given duration.
// A non-positive ttl behaves like Set.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	entry := Entry{Data: value}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	c.store(key, entry)
}

func (c *Cache) store(key string, entry Entry) {
	c.mu.Lock()
	c.entries[key] = entry
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.TotalKeys = total
	c.stats.mu.Unlock()
}

// Delete removes a cache entry by key. Deleting an absent key is a
// no-op, so concurrent invalidations are idempotent.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	c.recordEviction()
}

// Clear removes all entries in a single atomic operation.
func (c *Cache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = 0
	c.stats.mu.Unlock()
}

// GetStats returns a snapshot of the current cache counters.
func (c *Cache) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:      c.stats.Hits,
		Misses:    c.stats.Misses,
		Evictions: c.stats.Evictions,
		TotalKeys: c.stats.TotalKeys,
	}
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *Cache) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
}

func (c *Cache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}

func (c *Cache) recordEviction() {
	c.stats.mu.Lock()
	c.stats.Evictions++
	c.stats.mu.Unlock()
}
