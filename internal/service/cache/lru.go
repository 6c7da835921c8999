package cache

import (
	"sync/atomic"
	"time"

	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/guttosm/cart-service/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRU is a size-bounded product cache whose entries expire after a TTL.
type LRU struct {
	lru       *expirable.LRU[int64, model.Product]
	capacity  int
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewLRU creates a cache holding at most capacity products for ttl each.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	if capacity <= 0 {
		capacity = 1000
	}
	c := &LRU{capacity: capacity}
	c.lru = expirable.NewLRU[int64, model.Product](capacity, func(int64, model.Product) {
		c.evictions.Add(1)
	}, ttl)
	metrics.UpdateCacheMetrics(0, capacity)
	return c
}

// Get returns the cached product for id.
func (c *LRU) Get(id int64) (model.Product, bool) {
	product, ok := c.lru.Get(id)
	if ok {
		c.hits.Add(1)
		metrics.RecordCacheOperation("get", "hit")
	} else {
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
	}
	return product, ok
}

// Set stores product under its id.
func (c *LRU) Set(product model.Product) {
	c.lru.Add(product.ID, product)
	metrics.RecordCacheOperation("set", "success")
	metrics.UpdateCacheMetrics(c.lru.Len(), c.capacity)
}

// Invalidate drops the product with id.
func (c *LRU) Invalidate(id int64) {
	c.lru.Remove(id)
	metrics.UpdateCacheMetrics(c.lru.Len(), c.capacity)
}

// Clear drops every entry.
func (c *LRU) Clear() {
	c.lru.Purge()
	metrics.UpdateCacheMetrics(0, c.capacity)
}

// Metrics returns the current counters.
func (c *LRU) Metrics() Metrics {
	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.lru.Len(),
		Capacity:  c.capacity,
	}
}
