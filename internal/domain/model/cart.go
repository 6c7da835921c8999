package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrLineNotFound is returned when a line index does not exist in the cart.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrInvalidQuantity is returned when a quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// LineItem is one (product, size, quantity) entry in the cart.
//
// @Description Cart line item
type LineItem struct {
	Product   Product         `json:"product"`
	Size      Size            `json:"size"`
	Quantity  int             `json:"quantity" example:"2"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string" example:"1000"`
	Discount  decimal.Decimal `json:"discount" swaggertype:"string" example:"380"`
} // @name LineItem

// Gross returns quantity × base price.
func (l LineItem) Gross() decimal.Decimal {
	return l.Product.BasePrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Matches reports whether the line holds the given product and size.
func (l LineItem) Matches(productID, sizeID int64) bool {
	return l.Product.ID == productID && l.Size.ID == sizeID
}

// NewLineItem snapshots the product base price as the unit price.
func NewLineItem(product Product, size Size, quantity int) LineItem {
	return LineItem{
		Product:   product,
		Size:      size,
		Quantity:  quantity,
		UnitPrice: product.BasePrice,
		Discount:  decimal.Zero,
	}
}

// Cart is the ordered list of line items owned by one shopper identity.
type Cart struct {
	Items       []LineItem
	LastUpdated time.Time
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity returns the number of units across all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// QuantityOf returns the units already in the cart for a product and size.
func (c *Cart) QuantityOf(productID, sizeID int64) int {
	for _, item := range c.Items {
		if item.Matches(productID, sizeID) {
			return item.Quantity
		}
	}
	return 0
}

// Add appends a line or increases the quantity of the matching one.
func (c *Cart) Add(product Product, size Size, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].Matches(product.ID, size.ID) {
			c.Items[i].Quantity += quantity
			c.Items[i].Product = product
			c.Items[i].UnitPrice = product.BasePrice
			return nil
		}
	}
	c.Items = append(c.Items, NewLineItem(product, size, quantity))
	return nil
}

// RemoveAt deletes the line at index.
func (c *Cart) RemoveAt(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrLineNotFound
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

// SetQuantity replaces the quantity of the line at index.
func (c *Cart) SetQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	c.Items[index].Quantity = quantity
	return nil
}

// Merge folds other lines into the cart, summing quantities of matching lines.
func (c *Cart) Merge(items []LineItem) {
	for _, incoming := range items {
		merged := false
		for i := range c.Items {
			if c.Items[i].Matches(incoming.Product.ID, incoming.Size.ID) {
				c.Items[i].Quantity += incoming.Quantity
				merged = true
				break
			}
		}
		if !merged {
			c.Items = append(c.Items, incoming)
		}
	}
}

// ProductIDs returns the distinct product ids in line order.
func (c *Cart) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(c.Items))
	ids := make([]int64, 0, len(c.Items))
	for _, item := range c.Items {
		if _, ok := seen[item.Product.ID]; ok {
			continue
		}
		seen[item.Product.ID] = struct{}{}
		ids = append(ids, item.Product.ID)
	}
	return ids
}

// PricingResult is the outcome of one pricing pass.
//
// @Description Priced line items and cart total
type PricingResult struct {
	Items         []LineItem      `json:"items"`
	TotalQuantity int             `json:"total_quantity" example:"2"`
	TierPercent   decimal.Decimal `json:"tier_percent" swaggertype:"string" example:"10"`
	Total         decimal.Decimal `json:"total" swaggertype:"string" example:"1620"`
} // @name PricingResult

// PricedCart is a cart together with its pricing and storage metadata.
type PricedCart struct {
	Key         string
	Pricing     PricingResult
	LastUpdated time.Time
	// Warnings carries non-fatal issues such as a stale product refresh.
	Warnings []string
}

// ItemCount returns the number of units in the priced cart.
func (p PricedCart) ItemCount() int {
	return p.Pricing.TotalQuantity
}
