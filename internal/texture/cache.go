package texture

import (
	"image"
	"sync"
)

// Cache is a concurrency-safe store of decoded photos keyed by source.
// Failed loads are not cached so a later request can retry.
type Cache struct {
	mu    sync.RWMutex
	items map[Source]*image.NRGBA
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[Source]*image.NRGBA)}
}

// Get returns the cached image for src.
func (c *Cache) Get(src Source) (*image.NRGBA, bool) {
	c.mu.RLock()
	img, ok := c.items[src]
	c.mu.RUnlock()
	return img, ok
}

// Put stores img for src. Local sources are not cached: the same path may
// hold a different file on the next pick.
func (c *Cache) Put(src Source, img *image.NRGBA) {
	if src.Kind == Local || img == nil {
		return
	}
	c.mu.Lock()
	if _, exists := c.items[src]; !exists {
		c.items[src] = img
	}
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
