package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrInvalidShipping is returned for a negative shipping cost.
var ErrInvalidShipping = errors.New("shipping cost must not be negative")

var cashDiscountRate = decimal.RequireFromString("0.15")

// CheckoutService quotes the payable amount of a shopper's cart.
type CheckoutService interface {
	Quote(ctx context.Context, id model.Identity, req model.CheckoutRequest) (model.CheckoutQuote, error)
}

// CheckoutServiceImpl prices the cart through the cart service and resolves
// coupons through the catalog.
type CheckoutServiceImpl struct {
	carts   CartService
	catalog ProductCatalog
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(carts CartService, catalog ProductCatalog) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{carts: carts, catalog: catalog}
}

func (s *CheckoutServiceImpl) Quote(ctx context.Context, id model.Identity, req model.CheckoutRequest) (model.CheckoutQuote, error) {
	if req.Shipping.IsNegative() {
		return model.CheckoutQuote{}, ErrInvalidShipping
	}

	cart, err := s.carts.Get(ctx, id)
	if err != nil {
		return model.CheckoutQuote{}, err
	}

	var coupon *model.Coupon
	if req.CouponCode != "" && !req.PaymentMethod.HasCashDiscount() {
		c, err := s.catalog.GetCoupon(ctx, req.CouponCode)
		if err != nil {
			if errors.Is(err, model.ErrCouponNotFound) {
				return model.CheckoutQuote{}, err
			}
			return model.CheckoutQuote{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		coupon = &c
	}

	quote := QuoteTotal(cart.Pricing.Total, req.Shipping, req.PaymentMethod, coupon)
	quote.CouponCode = req.CouponCode
	log.Debug().
		Str("cart_key", cart.Key).
		Str("payment_method", string(req.PaymentMethod)).
		Str("total", quote.Total.String()).
		Msg("checkout quoted")
	return quote, nil
}

// QuoteTotal adds shipping to the cart total and applies either the cash
// discount or the coupon, never both. The result is never negative.
func QuoteTotal(cartTotal, shipping decimal.Decimal, method model.PaymentMethod, coupon *model.Coupon) model.CheckoutQuote {
	gross := cartTotal.Add(shipping)
	quote := model.CheckoutQuote{
		CartTotal:      cartTotal,
		Shipping:       shipping,
		PaymentMethod:  method,
		DiscountAmount: decimal.Zero,
	}

	total := gross
	switch {
	case method.HasCashDiscount():
		total = gross.Sub(gross.Mul(cashDiscountRate))
	case coupon != nil:
		total = gross.Sub(couponDiscount(cartTotal, shipping, *coupon))
		quote.CouponApplied = true
	}

	if total.IsNegative() {
		total = decimal.Zero
	}
	quote.Total = total
	quote.DiscountAmount = gross.Sub(total)
	return quote
}

func couponDiscount(cartTotal, shipping decimal.Decimal, coupon model.Coupon) decimal.Decimal {
	if coupon.FreeShipping {
		return shipping
	}
	kind, _, _ := model.ParsePromotionKind(coupon.Kind)
	switch kind {
	case model.PromotionPercentage:
		return cartTotal.Mul(coupon.Value).Div(decimal.NewFromInt(100))
	case model.PromotionFixed:
		return coupon.Value
	default:
		return decimal.Zero
	}
}
