// Package model defines the core domain entities for the cart service.
package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned when the catalog has no product with the requested id.
var ErrProductNotFound = errors.New("product not found")

// Size identifies a product size (S, M, L, ...).
//
// @Description Product size reference
type Size struct {
	ID   int64  `json:"id" example:"3"`
	Name string `json:"name,omitempty" example:"M"`
} // @name Size

// SizeStock holds the available units of a product for one size.
type SizeStock struct {
	SizeID   int64  `json:"size_id" example:"3"`
	SizeName string `json:"size_name,omitempty" example:"M"`
	Quantity int    `json:"quantity" example:"12"`
} // @name SizeStock

// Product is the catalog view of a sellable item as read by the pricing engine.
//
// @Description Catalog product snapshot
type Product struct {
	ID            int64            `json:"id" example:"42"`
	Name          string           `json:"name" example:"Home jersey 2024"`
	BasePrice     decimal.Decimal  `json:"base_price" swaggertype:"string" example:"1000"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty" swaggertype:"string" example:"900"`
	Promotions    []Promotion      `json:"promotions,omitempty"`
	Stock         []SizeStock      `json:"stock,omitempty"`
} // @name Product

// StaticPrice returns the discounted price when it is set, positive and lower
// than the base price. Otherwise the base price.
func (p Product) StaticPrice() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.IsPositive() && p.DiscountPrice.LessThan(p.BasePrice) {
		return *p.DiscountPrice
	}
	return p.BasePrice
}

// Available returns the stock level for the given size.
// Missing stock data counts as zero units.
func (p Product) Available(sizeID int64) int {
	for _, s := range p.Stock {
		if s.SizeID == sizeID {
			if s.Quantity < 0 {
				return 0
			}
			return s.Quantity
		}
	}
	return 0
}

// SizeByID returns the size reference for sizeID using the stock entries.
func (p Product) SizeByID(sizeID int64) Size {
	for _, s := range p.Stock {
		if s.SizeID == sizeID {
			return Size{ID: s.SizeID, Name: s.SizeName}
		}
	}
	return Size{ID: sizeID}
}

// ActivePromotion returns the promotion that governs pricing at the given instant.
// Only the first promotion in the list is considered; when it is inactive,
// out of its window or malformed the product has no promotion.
func (p Product) ActivePromotion(at time.Time) (Promotion, PromotionRule, bool) {
	if len(p.Promotions) == 0 {
		return Promotion{}, PromotionRule{}, false
	}
	promo := p.Promotions[0]
	if !promo.IsActiveAt(at) {
		return Promotion{}, PromotionRule{}, false
	}
	rule, ok := promo.Rule()
	if !ok {
		return Promotion{}, PromotionRule{}, false
	}
	return promo, rule, true
}
