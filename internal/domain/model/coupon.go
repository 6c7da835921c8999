package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrCouponNotFound is returned when a code does not name a redeemable coupon.
var ErrCouponNotFound = errors.New("coupon not found or expired")

// Coupon is a promotion redeemed by code at checkout.
type Coupon struct {
	Code         string
	Kind         string
	Value        decimal.Decimal
	FreeShipping bool
}

// PaymentMethod identifies how the order is paid.
type PaymentMethod string

const (
	PaymentCashInStore  PaymentMethod = "efectivo_local"
	PaymentBankTransfer PaymentMethod = "transferencia"
	PaymentCashVoucher  PaymentMethod = "efectivo"
	PaymentCard         PaymentMethod = "tarjeta"
	PaymentMercadoPago  PaymentMethod = "mercadopago"
)

// HasCashDiscount reports whether the method earns the cash discount.
func (m PaymentMethod) HasCashDiscount() bool {
	switch m {
	case PaymentCashInStore, PaymentBankTransfer, PaymentCashVoucher:
		return true
	default:
		return false
	}
}

// CheckoutRequest carries the checkout choices that affect the payable total.
type CheckoutRequest struct {
	Shipping      decimal.Decimal
	PaymentMethod PaymentMethod
	CouponCode    string
}

// CheckoutQuote is the payable amount for a cart at checkout.
//
// @Description Checkout total breakdown
type CheckoutQuote struct {
	CartTotal      decimal.Decimal `json:"cart_total" swaggertype:"string" example:"1620"`
	Shipping       decimal.Decimal `json:"shipping" swaggertype:"string" example:"500"`
	PaymentMethod  PaymentMethod   `json:"payment_method" example:"transferencia"`
	CouponCode     string          `json:"coupon_code,omitempty" example:"WELCOME10"`
	CouponApplied  bool            `json:"coupon_applied"`
	DiscountAmount decimal.Decimal `json:"discount_amount" swaggertype:"string" example:"318"`
	Total          decimal.Decimal `json:"total" swaggertype:"string" example:"1802"`
} // @name CheckoutQuote
