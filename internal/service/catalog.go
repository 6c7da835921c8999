package service

import (
	"context"

	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/guttosm/cart-service/internal/service/cache"
)

// ProductCatalog reads products and coupons from the storefront backend.
type ProductCatalog interface {
	// GetProducts returns the known products among ids; unknown ids are skipped.
	GetProducts(ctx context.Context, ids []int64) ([]model.Product, error)
	// GetProduct returns model.ErrProductNotFound for unknown ids.
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	// GetCoupon returns model.ErrCouponNotFound for unknown or spent codes.
	GetCoupon(ctx context.Context, code string) (model.Coupon, error)
}

// CachedCatalog serves products from a cache and falls through to the
// backend for misses. Coupons are never cached.
type CachedCatalog struct {
	next  ProductCatalog
	cache cache.ProductCache
}

// NewCachedCatalog wraps next with c.
func NewCachedCatalog(next ProductCatalog, c cache.ProductCache) *CachedCatalog {
	return &CachedCatalog{next: next, cache: c}
}

// GetProduct returns the cached product or fetches and caches it.
func (c *CachedCatalog) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if product, ok := c.cache.Get(id); ok {
		return product, nil
	}
	product, err := c.next.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	c.cache.Set(product)
	return product, nil
}

// GetProducts fetches all cache misses in one backend call. The result keeps
// the order of ids.
func (c *CachedCatalog) GetProducts(ctx context.Context, ids []int64) ([]model.Product, error) {
	found := make(map[int64]model.Product, len(ids))
	var misses []int64
	for _, id := range ids {
		if product, ok := c.cache.Get(id); ok {
			found[id] = product
			continue
		}
		misses = append(misses, id)
	}

	if len(misses) > 0 {
		fetched, err := c.next.GetProducts(ctx, misses)
		if err != nil {
			return nil, err
		}
		for _, product := range fetched {
			c.cache.Set(product)
			found[product.ID] = product
		}
	}

	products := make([]model.Product, 0, len(found))
	for _, id := range ids {
		if product, ok := found[id]; ok {
			products = append(products, product)
			delete(found, id)
		}
	}
	return products, nil
}

// GetCoupon always asks the backend.
func (c *CachedCatalog) GetCoupon(ctx context.Context, code string) (model.Coupon, error) {
	return c.next.GetCoupon(ctx, code)
}

// Invalidate drops cached products so the next read goes to the backend.
func (c *CachedCatalog) Invalidate(ids ...int64) {
	for _, id := range ids {
		c.cache.Invalidate(id)
	}
}
