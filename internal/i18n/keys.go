// Package i18n provides internationalization support for the cart service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired customer token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyValidationQuantity indicates a non-positive quantity.
	ErrKeyValidationQuantity = "error.validation.quantity"
	// ErrKeyValidationLineIndex indicates a line index outside the cart.
	ErrKeyValidationLineIndex = "error.validation.line_index"
	// ErrKeyValidationShipping indicates a negative shipping cost.
	ErrKeyValidationShipping = "error.validation.shipping"
	// ErrKeyInsufficientStock indicates the size does not have enough units.
	ErrKeyInsufficientStock = "error.insufficient_stock"
	// ErrKeyProductNotFound indicates the catalog has no such product.
	ErrKeyProductNotFound = "error.product_not_found"
	// ErrKeyCouponNotFound indicates an unknown or spent coupon code.
	ErrKeyCouponNotFound = "error.coupon_not_found"
	// ErrKeyCatalogUnavailable indicates the catalog backend could not be reached.
	ErrKeyCatalogUnavailable = "error.catalog_unavailable"
)
