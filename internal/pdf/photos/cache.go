package photos

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// warmWorkers bounds the parallel fan-out of the pre-render cache warmer.
const warmWorkers = 5

// Cache memoizes resolved, orientation-corrected photo bytes per URL for the
// duration of one report render. A miss is cached too, so a missing file is
// only probed once per render.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string][]byte
	resolver *Resolver
}

func NewCache(resolver *Resolver) *Cache {
	return &Cache{
		entries:  make(map[string][]byte),
		resolver: resolver,
	}
}

// Get returns the upright image bytes for a URL, resolving and rotating on
// first use. The second return is false when the photo cannot be resolved.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, bool) {
	c.mu.RLock()
	data, hit := c.entries[url]
	c.mu.RUnlock()
	if hit {
		return data, data != nil
	}

	raw, ok := c.resolver.Resolve(ctx, url)
	if ok {
		data = Orient(raw)
	}

	c.mu.Lock()
	c.entries[url] = data
	c.mu.Unlock()
	return data, data != nil
}

// Warm resolves and rotates the given URLs across a small worker pool before
// rendering begins, so the render loop only hits the cache. Failures are
// recorded as misses, never returned.
func (c *Cache) Warm(ctx context.Context, urls []string) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(warmWorkers)

	seen := make(map[string]bool, len(urls))
	for _, url := range urls {
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true

		url := url
		g.Go(func() error {
			c.Get(ctx, url)
			return nil
		})
	}
	_ = g.Wait()
}
