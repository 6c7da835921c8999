// Package dto defines the request and response bodies of the cart API.
//
// DTOs keep the HTTP contract apart from the domain model; requests validate
// themselves and convert into model values.
package dto

import (
	"strconv"

	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrInvalidQuantity is returned when quantity is not a positive integer.
	ErrInvalidQuantity = &ValidationError{Field: "quantity", Message: "must be a positive integer"}
	// ErrInvalidShipping is returned when the shipping cost is negative.
	ErrInvalidShipping = &ValidationError{Field: "shipping", Message: "must not be negative"}
	// ErrInvalidPaymentMethod is returned when no payment method is given.
	ErrInvalidPaymentMethod = &ValidationError{Field: "payment_method", Message: "is required"}
)

// Default request limits.
const (
	DefaultMaxLineQuantity = 100
	DefaultMaxQuoteLines   = 100
)

// Limits bounds what a single request may ask for. Zero fields fall back to
// the defaults.
type Limits struct {
	// MaxLineQuantity is the most units one line may carry.
	MaxLineQuantity int
	// MaxQuoteLines is the most lines a pricing quote may carry.
	MaxQuoteLines int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{MaxLineQuantity: DefaultMaxLineQuantity, MaxQuoteLines: DefaultMaxQuoteLines}
}

func (l Limits) withDefaults() Limits {
	if l.MaxLineQuantity <= 0 {
		l.MaxLineQuantity = DefaultMaxLineQuantity
	}
	if l.MaxQuoteLines <= 0 {
		l.MaxQuoteLines = DefaultMaxQuoteLines
	}
	return l
}

func validateQuantity(quantity int, l Limits) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if limit := l.withDefaults().MaxLineQuantity; quantity > limit {
		return &ValidationError{Field: "quantity", Message: "must not exceed " + strconv.Itoa(limit)}
	}
	return nil
}

// AddItemRequest is the body of POST /api/cart/items.
//
// @Description Add units of a product size to the cart
// @Example {"product_id": 42, "size_id": 3, "quantity": 2}
type AddItemRequest struct {
	// ProductID is the catalog id of the product.
	ProductID int64 `json:"product_id" binding:"required,gt=0" example:"42"`
	// SizeID is the catalog id of the selected size.
	SizeID int64 `json:"size_id" binding:"required,gt=0" example:"3"`
	// Quantity is the number of units to add. Must be greater than 0.
	Quantity int `json:"quantity" example:"2" minimum:"1"`
} // @name AddItemRequest

// Validate checks the quantity against the default limits.
func (r *AddItemRequest) Validate() error {
	return r.ValidateLimits(DefaultLimits())
}

// ValidateLimits checks the quantity against l.
func (r *AddItemRequest) ValidateLimits(l Limits) error {
	return validateQuantity(r.Quantity, l)
}

// UpdateQuantityRequest is the body of PATCH /api/cart/items/{index}.
//
// @Description New quantity for a cart line
// @Example {"quantity": 3}
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" example:"3" minimum:"1"`
} // @name UpdateQuantityRequest

// Validate checks the quantity against the default limits.
func (r *UpdateQuantityRequest) Validate() error {
	return r.ValidateLimits(DefaultLimits())
}

// ValidateLimits checks the quantity against l.
func (r *UpdateQuantityRequest) ValidateLimits(l Limits) error {
	return validateQuantity(r.Quantity, l)
}

// PricingQuoteItem is one line of a stateless pricing request.
type PricingQuoteItem struct {
	Product  model.Product `json:"product"`
	SizeID   int64         `json:"size_id" example:"3"`
	Quantity int           `json:"quantity" example:"2"`
} // @name PricingQuoteItem

// PricingQuoteRequest is the body of POST /api/pricing/quote.
//
// @Description Line items to price without touching any stored cart
type PricingQuoteRequest struct {
	Items []PricingQuoteItem `json:"items"`
} // @name PricingQuoteRequest

// Validate checks the request against the default limits.
func (r *PricingQuoteRequest) Validate() error {
	return r.ValidateLimits(DefaultLimits())
}

// ValidateLimits bounds the number of lines and the quantity of each.
func (r *PricingQuoteRequest) ValidateLimits(l Limits) error {
	l = l.withDefaults()
	if len(r.Items) > l.MaxQuoteLines {
		return &ValidationError{Field: "items", Message: "must not exceed " + strconv.Itoa(l.MaxQuoteLines) + " lines"}
	}
	for _, item := range r.Items {
		if err := validateQuantity(item.Quantity, l); err != nil {
			return err
		}
	}
	return nil
}

// LineItems converts the request into cart lines.
func (r *PricingQuoteRequest) LineItems() []model.LineItem {
	items := make([]model.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, model.NewLineItem(item.Product, item.Product.SizeByID(item.SizeID), item.Quantity))
	}
	return items
}

// CheckoutQuoteRequest is the body of POST /api/checkout/quote.
//
// @Description Checkout choices that change the payable total
// @Example {"shipping": "500", "payment_method": "transferencia", "coupon_code": "WELCOME10"}
type CheckoutQuoteRequest struct {
	// Shipping is the shipping cost already computed for the order.
	Shipping decimal.Decimal `json:"shipping" swaggertype:"string" example:"500"`
	// PaymentMethod is one of efectivo_local, transferencia, efectivo, tarjeta, mercadopago.
	PaymentMethod string `json:"payment_method" example:"transferencia"`
	// CouponCode is an optional promotion code.
	CouponCode string `json:"coupon_code,omitempty" example:"WELCOME10"`
} // @name CheckoutQuoteRequest

// Validate checks shipping and payment method.
func (r *CheckoutQuoteRequest) Validate() error {
	if r.Shipping.IsNegative() {
		return ErrInvalidShipping
	}
	if r.PaymentMethod == "" {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// ToModel converts the request into the service input.
func (r *CheckoutQuoteRequest) ToModel() model.CheckoutRequest {
	return model.CheckoutRequest{
		Shipping:      r.Shipping,
		PaymentMethod: model.PaymentMethod(r.PaymentMethod),
		CouponCode:    r.CouponCode,
	}
}
