package cache

import "sync"

// ImageCache stores resolved image URLs keyed by (recipe ID, size). An
// empty-string entry records a resolution that was attempted and failed, so
// the chain is never retried for that key within the process lifetime.
// Entries never expire. Safe for concurrent use.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewImageCache creates an empty ImageCache.
func NewImageCache() *ImageCache {
	return &ImageCache{entries: make(map[string]string)}
}

// Get returns the cached URL for a key. ok is true even for a cached
// failure (empty URL): the caller must not retry.
func (c *ImageCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, ok := c.entries[key]
	return url, ok
}

// Put stores the resolved URL for a key. Pass an empty URL to record a
// failed resolution.
func (c *ImageCache) Put(key, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = url
}

// Len returns the number of cached entries.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
