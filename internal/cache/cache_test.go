// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCacheBasicOperations(t *testing.T) {
	c := New()

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	_, exists = c.Get("key2")
	if exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheNoTTLEntriesPersist(t *testing.T) {
	c := New()

	c.Set("course_labels", []string{"a", "b"})

	// Entries without TTL must survive until explicit invalidation.
	time.Sleep(20 * time.Millisecond)

	if _, exists := c.Get("course_labels"); !exists {
		t.Error("Expected non-TTL entry to persist")
	}
}

func TestCacheTTLExpiration(t *testing.T) {
	c := New()

	c.SetWithTTL("key1", "value1", 50*time.Millisecond)

	if _, exists := c.Get("key1"); !exists {
		t.Error("Expected key1 to exist immediately after set")
	}

	time.Sleep(80 * time.Millisecond)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
}

func TestCacheDelete(t *testing.T) {
	c := New()

	c.Set("key1", "value1")
	c.Delete("key1")

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
}

func TestCacheDeleteAbsentKeyIsNoOp(t *testing.T) {
	c := New()

	// Must not panic or corrupt state.
	c.Delete("never-set")
	c.Delete("never-set")

	c.Set("key1", "value1")
	if _, exists := c.Get("key1"); !exists {
		t.Error("Expected key1 to exist after unrelated deletes")
	}
}

func TestCacheClear(t *testing.T) {
	c := New()

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")

	c.Clear()

	for _, key := range []string{"key1", "key2", "key3"} {
		if _, exists := c.Get(key); exists {
			t.Errorf("Expected %s to be cleared", key)
		}
	}

	if stats := c.GetStats(); stats.TotalKeys != 0 {
		t.Errorf("Expected 0 keys after clear, got %d", stats.TotalKeys)
	}
}

func TestCacheStats(t *testing.T) {
	c := New()

	c.Set("key1", "value1")
	c.Get("key1") // hit
	c.Get("key2") // miss

	stats := c.GetStats()
	if stats.Hits != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}

	if rate := c.HitRate(); rate != 50.0 {
		t.Errorf("Expected 50%% hit rate, got %.2f", rate)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key%d", j%5)
				c.Set(key, n)
				c.Get(key)
				c.Delete(key)
			}
		}(i)
	}
	wg.Wait()
}
