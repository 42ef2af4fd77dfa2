package imageapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// StaleAfter is the inactivity window after which the size table is eligible
// for refresh on next access.
const StaleAfter = 5 * time.Minute

// CategoryListPath is the endpoint the cache refreshes from.
const CategoryListPath = "/api/category/list"

// SizeCache maps size names to their profiles, lazily populated from the
// category list. Staleness is driven by the last access, not the last
// refresh: a cache read more often than the window never refreshes. A failed
// refresh keeps the previous table and is only logged; a stale table is an
// acceptable degraded mode.
type SizeCache struct {
	client *Client
	now    func() time.Time

	mu             sync.Mutex
	sizes          map[string]CategorySize
	lastUpdatedAt  time.Time
	lastAccessedAt time.Time

	group singleflight.Group
}

// NewSizeCache creates an empty cache backed by the given client.
func NewSizeCache(client *Client) *SizeCache {
	return &SizeCache{
		client: client,
		now:    time.Now,
	}
}

// Get returns the current size table, refreshing it first when it has never
// been populated or when more than StaleAfter has passed since the last
// access. The returned map is a snapshot of a single successful fetch and is
// never mutated afterward.
func (c *SizeCache) Get(ctx context.Context) map[string]CategorySize {
	c.mu.Lock()
	now := c.now()
	stale := c.sizes == nil || now.Sub(c.lastAccessedAt) > StaleAfter
	c.lastAccessedAt = now
	c.mu.Unlock()

	if stale {
		// Concurrent callers that both observe a stale table share one
		// in-flight refresh.
		c.group.Do("refresh", func() (interface{}, error) {
			c.refresh(ctx)
			return nil, nil
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sizes
}

// Lookup returns the profile for a single size name.
func (c *SizeCache) Lookup(ctx context.Context, name string) (CategorySize, bool) {
	size, ok := c.Get(ctx)[name]
	return size, ok
}

// refresh fetches the category list and rebuilds the table wholesale,
// last-write-wins on size name collisions across categories. Failures leave
// the previous table untouched.
func (c *SizeCache) refresh(ctx context.Context) {
	cats, err := c.fetchCategories(ctx)
	if err != nil {
		slog.Warn("size cache refresh failed, keeping stale data", "error", err)
		return
	}

	sizes := make(map[string]CategorySize)
	for _, cat := range cats {
		for _, size := range cat.Sizes {
			sizes[size.Name] = size
		}
	}

	c.mu.Lock()
	c.sizes = sizes
	c.lastUpdatedAt = c.now()
	c.mu.Unlock()

	slog.Debug("size cache refreshed", "categories", len(cats), "sizes", len(sizes))
}

// fetchCategories retrieves and decodes the category list. The endpoint may
// return either a bare array or an object wrapping it in "categories".
func (c *SizeCache) fetchCategories(ctx context.Context) ([]Category, error) {
	resp, err := c.client.Get(ctx, CategoryListPath)
	if err != nil {
		return nil, err
	}

	res := Normalize(resp)
	if !res.OK {
		return nil, errors.New(res.Message)
	}

	raw := res.Raw
	if !res.Value.IsArray() {
		wrapped := res.Value.Get("categories")
		if !wrapped.Exists() {
			return nil, errors.New("category list response has no categories")
		}
		raw = wrapped.Raw
	}

	var cats []Category
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		return nil, err
	}
	return cats, nil
}
