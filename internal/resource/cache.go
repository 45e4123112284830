package resource

import "sync"

// CacheStats reports cache usage.
type CacheStats struct {
	Hits    int
	Misses  int
	Entries int
	Bytes   int // Total size of cached data
}

// Cache keeps loaded URI contents so that buffers and images sharing a file
// or data URI are read once.
type Cache struct {
	mu    sync.Mutex
	data  map[string][]byte
	stats CacheStats
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{data: make(map[string][]byte)}
}

// Get returns the cached contents of uri.
func (c *Cache) Get(uri string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[uri]
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return data, ok
}

// Set stores the contents of uri, replacing any previous entry.
func (c *Cache) Set(uri string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.data[uri]; ok {
		c.stats.Bytes -= len(old)
	} else {
		c.stats.Entries++
	}
	c.data[uri] = data
	c.stats.Bytes += len(data)
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
