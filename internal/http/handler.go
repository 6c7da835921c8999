package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cart-service/internal/domain/dto"
	"github.com/guttosm/cart-service/internal/i18n"
	"github.com/guttosm/cart-service/internal/middleware"
	"github.com/guttosm/cart-service/internal/service"
)

// LoggingServiceKey is the gin context key under which the router exposes
// the logging service to handlers for audit entries.
const LoggingServiceKey = "logging_service"

// HandlerOption configures the cart and checkout handlers.
type HandlerOption func(*dto.Limits)

// WithLimits sets the request limits checked before any service call.
func WithLimits(limits dto.Limits) HandlerOption {
	return func(l *dto.Limits) {
		*l = limits
	}
}

func handlerLimits(opts []HandlerOption) dto.Limits {
	limits := dto.DefaultLimits()
	for _, opt := range opts {
		opt(&limits)
	}
	return limits
}

// CartHandler serves the /api/cart routes.
type CartHandler struct {
	carts  service.CartService
	limits dto.Limits
}

// NewCartHandler creates a new CartHandler instance.
func NewCartHandler(carts service.CartService, opts ...HandlerOption) *CartHandler {
	return &CartHandler{carts: carts, limits: handlerLimits(opts)}
}

// GetCart handles GET /api/cart.
//
// @Summary      Get the cart
// @Description  Loads the shopper's cart and prices it. Expired or unreadable carts come back empty. A signed-in customer's guest cart is merged in on first sight.
// @Tags         Cart
// @Produce      json
// @Param        X-Guest-ID header string false "Guest id; minted and echoed back when absent"
// @Param        Authorization header string false "Bearer customer token"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartResponse}
// @Failure      401 {object} dto.ErrorResponse "Invalid customer token"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	cart, err := h.carts.Get(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	builder.SuccessOK(dto.NewCartResponse(cart))
}

// AddItem handles POST /api/cart/items.
//
// @Summary      Add an item
// @Description  Adds units of a product size. The catalog is asked for the current product and the request is rejected when the cart would exceed the size's stock. Supports idempotent retries via Idempotency-Key.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Guest-ID header string false "Guest id"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.AddItemRequest true "Product, size and quantity"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid body or quantity"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      409 {object} dto.ErrorResponse "Insufficient stock"
// @Failure      502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestWithLimits[dto.AddItemRequest](c, h.limits)
	if err != nil {
		writeBindError(builder, err)
		return
	}

	fields := map[string]interface{}{
		"product_id": req.ProductID,
		"size_id":    req.SizeID,
		"quantity":   req.Quantity,
	}
	cart, err := h.carts.AddItem(c.Request.Context(), middleware.GetIdentity(c), req.ProductID, req.SizeID, req.Quantity)
	if err != nil {
		auditError(c, "cart_add_item", "Add item rejected", err, fields)
		writeServiceError(builder, err)
		return
	}

	audit(c, "cart_add_item", "Item added to cart", fields)
	builder.SuccessOK(dto.NewCartResponse(cart))
}

// UpdateQuantity handles PATCH /api/cart/items/{index}.
//
// @Summary      Change a line quantity
// @Description  Sets the quantity of the line at index. Quantities must be positive; use DELETE to remove a line.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        index path int true "Line index"
// @Param        request body dto.UpdateQuantityRequest true "New quantity"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid quantity or line index"
// @Failure      409 {object} dto.ErrorResponse "Insufficient stock"
// @Failure      502 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/cart/items/{index} [patch]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	builder := NewResponseBuilder(c)

	index, err := parseLineIndex(c.Param("index"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationLineIndex, err)
		return
	}
	req, err := BuildRequestWithLimits[dto.UpdateQuantityRequest](c, h.limits)
	if err != nil {
		writeBindError(builder, err)
		return
	}

	fields := map[string]interface{}{"index": index, "quantity": req.Quantity}
	cart, err := h.carts.UpdateQuantity(c.Request.Context(), middleware.GetIdentity(c), index, req.Quantity)
	if err != nil {
		auditError(c, "cart_update_quantity", "Quantity change rejected", err, fields)
		writeServiceError(builder, err)
		return
	}

	audit(c, "cart_update_quantity", "Cart quantity changed", fields)
	builder.SuccessOK(dto.NewCartResponse(cart))
}

// RemoveItem handles DELETE /api/cart/items/{index}.
//
// @Summary      Remove a line
// @Tags         Cart
// @Produce      json
// @Param        index path int true "Line index"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid line index"
// @Router       /api/cart/items/{index} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	index, err := parseLineIndex(c.Param("index"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationLineIndex, err)
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), middleware.GetIdentity(c), index)
	if err != nil {
		writeServiceError(builder, err)
		return
	}

	audit(c, "cart_remove_item", "Line removed from cart", map[string]interface{}{"index": index})
	builder.SuccessOK(dto.NewCartResponse(cart))
}

// ClearCart handles DELETE /api/cart.
//
// @Summary      Empty the cart
// @Tags         Cart
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CartResponse}
// @Router       /api/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	cart, err := h.carts.Clear(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		writeServiceError(builder, err)
		return
	}

	audit(c, "cart_clear", "Cart cleared", nil)
	builder.SuccessOK(dto.NewCartResponse(cart))
}

// RefreshCart handles POST /api/cart/refresh.
//
// @Summary      Refresh product data
// @Description  Re-reads every product in the cart from the catalog in one batch and reprices. A catalog failure keeps the stored data and is reported in warnings.
// @Tags         Cart
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CartResponse}
// @Router       /api/cart/refresh [post]
func (h *CartHandler) RefreshCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	cart, err := h.carts.Refresh(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		writeServiceError(builder, err)
		return
	}

	audit(c, "cart_refresh", "Cart products refreshed", map[string]interface{}{"warnings": len(cart.Warnings)})
	builder.SuccessOK(dto.NewCartResponse(cart))
}

// MergeGuestCart handles POST /api/cart/merge.
//
// @Summary      Merge the guest cart
// @Description  Folds the cart of the X-Guest-ID guest into the signed-in customer's cart and deletes the guest cart.
// @Tags         Cart
// @Produce      json
// @Param        Authorization header string true "Bearer customer token"
// @Param        X-Guest-ID header string true "Guest id whose cart is merged"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartResponse}
// @Failure      401 {object} dto.ErrorResponse "No customer identity"
// @Router       /api/cart/merge [post]
func (h *CartHandler) MergeGuestCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id := middleware.GetIdentity(c)
	if !id.IsCustomer() {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyUnauthorized, nil)
		return
	}

	cart, err := h.carts.MergeGuest(c.Request.Context(), id)
	if err != nil {
		writeServiceError(builder, err)
		return
	}

	audit(c, "cart_merge", "Guest cart merged", map[string]interface{}{"guest_id": id.GuestID})
	builder.SuccessOK(dto.NewCartResponse(cart))
}

func audit(c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if ls := loggingServiceFrom(c); ls != nil {
		middleware.AuditLog(ls, c, actionType, message, fields)
	}
}

func auditError(c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if ls := loggingServiceFrom(c); ls != nil {
		middleware.AuditLogError(ls, c, actionType, message, err, fields)
	}
}

func loggingServiceFrom(c *gin.Context) service.LoggingService {
	if v, exists := c.Get(LoggingServiceKey); exists {
		if ls, ok := v.(service.LoggingService); ok {
			return ls
		}
	}
	return nil
}
