// Package cache defines the product cache contract used in front of the catalog.
package cache

import "github.com/guttosm/cart-service/internal/domain/model"

// ProductCache holds catalog products by id.
type ProductCache interface {
	Get(id int64) (model.Product, bool)
	Set(product model.Product)
	Invalidate(id int64)
	Clear()
}

// Metrics is a snapshot of cache effectiveness.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (m Metrics) HitRate() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}

// ProductCacheWithMetrics extends ProductCache with metrics reporting.
type ProductCacheWithMetrics interface {
	ProductCache
	Metrics() Metrics
}
