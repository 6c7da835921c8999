package dto

import (
	"time"

	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// CartLineResponse is one priced cart line.
//
// @Description Priced cart line
type CartLineResponse struct {
	// Index addresses the line in PATCH and DELETE /api/cart/items/{index}.
	Index       int             `json:"index" example:"0"`
	ProductID   int64           `json:"product_id" example:"42"`
	ProductName string          `json:"product_name" example:"Home jersey 2024"`
	SizeID      int64           `json:"size_id" example:"3"`
	SizeName    string          `json:"size_name,omitempty" example:"M"`
	Quantity    int             `json:"quantity" example:"2"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string" example:"1000"`
	Discount    decimal.Decimal `json:"discount" swaggertype:"string" example:"380"`
	Subtotal    decimal.Decimal `json:"subtotal" swaggertype:"string" example:"1620"`
} // @name CartLineResponse

// CartResponse is the priced view of a cart.
//
// @Description Priced cart
type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	// LineCount is the number of distinct lines.
	LineCount int `json:"line_count" example:"1"`
	// ItemCount is the number of units across all lines.
	ItemCount   int             `json:"item_count" example:"2"`
	TierPercent decimal.Decimal `json:"tier_percent" swaggertype:"string" example:"10"`
	Total       decimal.Decimal `json:"total" swaggertype:"string" example:"1620"`
	LastUpdated *time.Time      `json:"last_updated,omitempty" example:"2025-01-28T10:00:00Z"`
	// Warnings lists non-fatal problems, such as a failed product refresh.
	Warnings []string `json:"warnings,omitempty"`
} // @name CartResponse

// NewCartResponse flattens a priced cart for the API.
func NewCartResponse(cart model.PricedCart) CartResponse {
	resp := NewPricingResponse(cart.Pricing)
	if !cart.LastUpdated.IsZero() {
		updated := cart.LastUpdated.UTC()
		resp.LastUpdated = &updated
	}
	resp.Warnings = cart.Warnings
	return resp
}

// NewPricingResponse flattens a pricing result for the API.
func NewPricingResponse(result model.PricingResult) CartResponse {
	lines := make([]CartLineResponse, 0, len(result.Items))
	for i, item := range result.Items {
		lines = append(lines, CartLineResponse{
			Index:       i,
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			SizeID:      item.Size.ID,
			SizeName:    item.Size.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Subtotal:    item.Gross().Sub(item.Discount),
		})
	}
	return CartResponse{
		Items:       lines,
		LineCount:   len(lines),
		ItemCount:   result.TotalQuantity,
		TierPercent: result.TierPercent,
		Total:       result.Total,
	}
}
