package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup is a set of API routes mounted under /api.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// CartRoutes mounts the cart, pricing and checkout endpoints.
type CartRoutes struct {
	cart     *CartHandler
	checkout *CheckoutHandler
}

// NewCartRoutes creates the route group. checkout may be nil when only the
// cart endpoints are served.
func NewCartRoutes(cart *CartHandler, checkout *CheckoutHandler) *CartRoutes {
	return &CartRoutes{cart: cart, checkout: checkout}
}

// RegisterRoutes registers the routes on rg.
func (r *CartRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.GET("", r.cart.GetCart)
	cart.DELETE("", r.cart.ClearCart)
	cart.POST("/items", r.cart.AddItem)
	cart.PATCH("/items/:index", r.cart.UpdateQuantity)
	cart.DELETE("/items/:index", r.cart.RemoveItem)
	cart.POST("/refresh", r.cart.RefreshCart)
	cart.POST("/merge", r.cart.MergeGuestCart)

	if r.checkout != nil {
		rg.POST("/pricing/quote", r.checkout.PricingQuote)
		rg.POST("/checkout/quote", r.checkout.CheckoutQuote)
	}
}
