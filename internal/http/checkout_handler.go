package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/cart-service/internal/domain/dto"
	"github.com/guttosm/cart-service/internal/middleware"
	"github.com/guttosm/cart-service/internal/service"
)

// CheckoutHandler serves stateless pricing and checkout quotes.
type CheckoutHandler struct {
	engine   service.PricingEngine
	checkout service.CheckoutService
	limits   dto.Limits
}

// NewCheckoutHandler creates a new CheckoutHandler instance.
func NewCheckoutHandler(engine service.PricingEngine, checkout service.CheckoutService, opts ...HandlerOption) *CheckoutHandler {
	return &CheckoutHandler{engine: engine, checkout: checkout, limits: handlerLimits(opts)}
}

// PricingQuote handles POST /api/pricing/quote.
//
// @Summary      Price a list of items
// @Description  Prices the posted lines with the same rules as the cart without reading or writing any cart.
// @Tags         Pricing
// @Accept       json
// @Produce      json
// @Param        request body dto.PricingQuoteRequest true "Line items with their product snapshots"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid body, quantity or too many lines"
// @Router       /api/pricing/quote [post]
func (h *CheckoutHandler) PricingQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestWithLimits[dto.PricingQuoteRequest](c, h.limits)
	if err != nil {
		writeBindError(builder, err)
		return
	}

	result := h.engine.Price(req.LineItems())
	builder.SuccessOK(dto.NewPricingResponse(result))
}

// CheckoutQuote handles POST /api/checkout/quote.
//
// @Summary      Quote the checkout total
// @Description  Adds shipping to the priced cart and applies either the cash discount (efectivo_local, transferencia, efectivo) or the coupon.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        X-Guest-ID header string false "Guest id"
// @Param        request body dto.CheckoutQuoteRequest true "Shipping, payment method and coupon"
// @Success      200 {object} dto.SuccessResponse{data=model.CheckoutQuote}
// @Failure      400 {object} dto.ErrorResponse "Invalid body or negative shipping"
// @Failure      404 {object} dto.ErrorResponse "Coupon not found"
// @Failure      502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/checkout/quote [post]
func (h *CheckoutHandler) CheckoutQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CheckoutQuoteRequest](c)
	if err != nil {
		writeBindError(builder, err)
		return
	}

	quote, err := h.checkout.Quote(c.Request.Context(), middleware.GetIdentity(c), req.ToModel())
	if err != nil {
		writeServiceError(builder, err)
		return
	}

	audit(c, "checkout_quote", "Checkout quoted", map[string]interface{}{
		"payment_method": req.PaymentMethod,
		"coupon_applied": quote.CouponApplied,
		"total":          quote.Total.String(),
	})
	builder.SuccessOK(quote)
}
