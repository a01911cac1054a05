package icons

import (
	"image"
	"sync"
)

type cacheKey struct {
	name string
	size int
}

// rasterCache holds rasterized glyphs so rebuilding a frame does not re-parse
// the SVG for every action button.
//
// Concurrent misses for the same key may both invoke the loader. Only the
// first stored result is kept.
type rasterCache struct {
	mu    sync.Mutex
	items map[cacheKey]*image.RGBA
}

func newRasterCache() *rasterCache {
	return &rasterCache{items: make(map[cacheKey]*image.RGBA)}
}

func (c *rasterCache) get(key cacheKey, loader func() (*image.RGBA, error)) (*image.RGBA, error) {
	c.mu.Lock()
	if img := c.items[key]; img != nil {
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	img, err := loader()
	if err != nil || img == nil {
		return img, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing := c.items[key]; existing != nil {
		return existing, nil
	}
	c.items[key] = img
	return img, nil
}

// invalidate drops every cached size of name.
func (c *rasterCache) invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if key.name == name {
			delete(c.items, key)
		}
	}
}
