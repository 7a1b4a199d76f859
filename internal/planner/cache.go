package planner

import (
	"sync"
	"time"
)

type buildEntry struct {
	units      int
	computedAt time.Time
}

// buildCache holds last-known buildability per product. Entries are not
// recomputed atomically with stock writes, so readers must treat values
// as possibly stale; the timestamp makes the staleness visible.
type buildCache struct {
	mu      sync.RWMutex
	entries map[uint]buildEntry
}

func newBuildCache() *buildCache {
	return &buildCache{entries: make(map[uint]buildEntry)}
}

func (c *buildCache) put(productID uint, units int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[productID] = buildEntry{units: units, computedAt: time.Now()}
}

func (c *buildCache) get(productID uint) (int, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[productID]
	return entry.units, entry.computedAt, ok
}

func (c *buildCache) invalidate(productID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, productID)
}

func (c *buildCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint]buildEntry)
}
