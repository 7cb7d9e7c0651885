// Package cache holds the derived cart item-count shown in the header badge.
// The count is display-only state: it is invalidated on every cart mutation
// and on checkout success, and recomputed from a fresh cart fetch on miss.
package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type CountCache struct {
	items *ttlcache.Cache[string, int]
}

func NewCountCache(ttl time.Duration) *CountCache {
	items := ttlcache.New(
		ttlcache.WithTTL[string, int](ttl),
		ttlcache.WithDisableTouchOnHit[string, int](),
	)
	go items.Start()
	return &CountCache{items: items}
}

func (c *CountCache) Get(token string) (int, bool) {
	item := c.items.Get(token)
	if item == nil {
		return 0, false
	}
	return item.Value(), true
}

func (c *CountCache) Set(token string, count int) {
	c.items.Set(token, count, ttlcache.DefaultTTL)
}

func (c *CountCache) Invalidate(token string) {
	c.items.Delete(token)
}

func (c *CountCache) Stop() {
	c.items.Stop()
}
