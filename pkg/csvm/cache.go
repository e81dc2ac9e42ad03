package csvm

import (
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	table *OpCodeTable
	err   error
}

// Cache remembers the classification of each VM runtime module for the life of
// a session. Entries, including failures, are computed at most once per path.
type Cache struct {
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func cacheKey(path string) string {
	return strings.ToUpper(filepath.Clean(path))
}

// Get returns the cached table for path, calling compute on first use. Concurrent
// callers for the same path wait for the one computation in flight.
func (c *Cache) Get(path string, compute func() (*OpCodeTable, error)) (*OpCodeTable, error) {
	key := cacheKey(path)
	if e, ok := c.lookup(key); ok {
		return e.table, e.err
	}
	v, _, _ := c.group.Do(key, func() (any, error) {
		if e, ok := c.lookup(key); ok {
			return e, nil
		}
		table, err := compute()
		e := cacheEntry{table: table, err: err}
		c.mu.Lock()
		c.entries[key] = e
		c.mu.Unlock()
		return e, nil
	})
	e := v.(cacheEntry)
	return e.table, e.err
}

func (c *Cache) lookup(key string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Len returns the number of cached modules.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
