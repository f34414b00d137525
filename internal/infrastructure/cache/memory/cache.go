package memory

import "sync"

// FilterCache is the process-wide memo of pruned content, keyed by a
// (content, task) digest. Entries are never evicted; the key space is
// bounded by the distinct pairs seen in one process run. Concurrent
// writers under the same key are last-writer-wins, which is safe
// because the oracle runs deterministically for identical input.
type FilterCache struct {
	mu      sync.Mutex
	entries map[uint64]string
}

func New() *FilterCache {
	return &FilterCache{entries: make(map[uint64]string)}
}

func (c *FilterCache) Get(key uint64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *FilterCache) Put(key uint64, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Len reports the number of cached entries.
func (c *FilterCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
