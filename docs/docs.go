// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/guttosm/cart-service",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/cart": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Loads the shopper's cart, discarding it when expired or corrupt, and prices it.",
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Get the cart",
                "parameters": [{"type": "string", "description": "Guest id", "name": "X-Guest-ID", "in": "header"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CartEnvelope"}},
                    "401": {"description": "Invalid customer token", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Removes every line and deletes the stored cart.",
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Clear the cart",
                "parameters": [
                    {"type": "string", "description": "Guest id", "name": "X-Guest-ID", "in": "header"},
                    {"type": "string", "description": "Idempotency key", "name": "Idempotency-Key", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CartEnvelope"}}
                }
            }
        },
        "/api/cart/items": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Adds units of a product size. Units already in the cart count against the size's stock.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Add an item",
                "parameters": [
                    {"type": "string", "description": "Guest id", "name": "X-Guest-ID", "in": "header"},
                    {"type": "string", "description": "Idempotency key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Product, size and quantity", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CartEnvelope"}},
                    "400": {"description": "Invalid body or quantity", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Product not found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Insufficient stock", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Catalog unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/cart/items/{index}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Sets the quantity of a line. Increases are checked against stock.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Update a line quantity",
                "parameters": [
                    {"type": "integer", "description": "Line index", "name": "index", "in": "path", "required": true},
                    {"type": "string", "description": "Guest id", "name": "X-Guest-ID", "in": "header"},
                    {"description": "New quantity", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateQuantityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CartEnvelope"}},
                    "400": {"description": "Invalid index or quantity", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Insufficient stock", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Remove a line",
                "parameters": [
                    {"type": "integer", "description": "Line index", "name": "index", "in": "path", "required": true},
                    {"type": "string", "description": "Guest id", "name": "X-Guest-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CartEnvelope"}},
                    "400": {"description": "Invalid index", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/cart/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Re-reads every product from the catalog in one batch and reprices the cart.",
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Refresh product data",
                "parameters": [{"type": "string", "description": "Guest id", "name": "X-Guest-ID", "in": "header"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CartEnvelope"}}
                }
            }
        },
        "/api/cart/merge": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Moves the guest cart lines into the signed-in customer's cart.",
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Merge the guest cart",
                "parameters": [{"type": "string", "description": "Guest id", "name": "X-Guest-ID", "in": "header"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CartEnvelope"}},
                    "401": {"description": "Not a customer", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/pricing/quote": {
            "post": {
                "description": "Prices the posted lines with the same rules as the cart without reading or writing any cart.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Pricing"],
                "summary": "Price a list of items",
                "parameters": [
                    {"description": "Line items with their product snapshots", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PricingQuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CartEnvelope"}},
                    "400": {"description": "Invalid body or quantity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/checkout/quote": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Adds shipping to the priced cart and applies either the cash discount (efectivo_local, transferencia, efectivo) or the coupon.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Checkout"],
                "summary": "Quote the checkout total",
                "parameters": [
                    {"type": "string", "description": "Guest id", "name": "X-Guest-ID", "in": "header"},
                    {"description": "Shipping, payment method and coupon", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckoutQuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CheckoutEnvelope"}},
                    "400": {"description": "Invalid body or negative shipping", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Coupon not found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Catalog unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Returns OK while the process is running.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "Service is alive", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/readyz": {
            "get": {
                "description": "Probes the cart store and reports the catalog and store circuit breakers.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Service is ready", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service is not ready", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "AddItemRequest": {
            "description": "Add units of a product size to the cart",
            "type": "object",
            "required": ["product_id", "size_id"],
            "properties": {
                "product_id": {"type": "integer", "example": 42},
                "size_id": {"type": "integer", "example": 3},
                "quantity": {"type": "integer", "minimum": 1, "example": 2}
            }
        },
        "UpdateQuantityRequest": {
            "description": "New quantity for a cart line",
            "type": "object",
            "properties": {"quantity": {"type": "integer", "minimum": 1, "example": 3}}
        },
        "PricingQuoteRequest": {
            "description": "Line items to price without touching any stored cart",
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/PricingQuoteItem"}}}
        },
        "PricingQuoteItem": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/Product"},
                "size_id": {"type": "integer", "example": 3},
                "quantity": {"type": "integer", "example": 2}
            }
        },
        "CheckoutQuoteRequest": {
            "type": "object",
            "properties": {
                "shipping": {"type": "string", "example": "500"},
                "payment_method": {"type": "string", "example": "transferencia"},
                "coupon_code": {"type": "string", "example": "WELCOME10"}
            }
        },
        "Product": {
            "description": "Catalog product snapshot",
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 42},
                "name": {"type": "string", "example": "Home jersey 2024"},
                "base_price": {"type": "string", "example": "1000"},
                "discount_price": {"type": "string", "example": "900"}
            }
        },
        "CartLineResponse": {
            "type": "object",
            "properties": {
                "index": {"type": "integer", "example": 0},
                "product_id": {"type": "integer", "example": 42},
                "product_name": {"type": "string", "example": "Home jersey 2024"},
                "size_id": {"type": "integer", "example": 3},
                "size_name": {"type": "string", "example": "M"},
                "quantity": {"type": "integer", "example": 2},
                "unit_price": {"type": "string", "example": "1000"},
                "discount": {"type": "string", "example": "380"},
                "subtotal": {"type": "string", "example": "1620"}
            }
        },
        "CartResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/CartLineResponse"}},
                "line_count": {"type": "integer", "example": 1},
                "item_count": {"type": "integer", "example": 2},
                "tier_percent": {"type": "string", "example": "10"},
                "total": {"type": "string", "example": "1620"},
                "last_updated": {"type": "string", "example": "2025-01-28T10:00:00Z"},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CheckoutQuote": {
            "description": "Checkout total breakdown",
            "type": "object",
            "properties": {
                "cart_total": {"type": "string", "example": "1620"},
                "shipping": {"type": "string", "example": "500"},
                "payment_method": {"type": "string", "example": "transferencia"},
                "coupon_code": {"type": "string", "example": "WELCOME10"},
                "coupon_applied": {"type": "boolean"},
                "discount_amount": {"type": "string", "example": "318"},
                "total": {"type": "string", "example": "1802"}
            }
        },
        "CartEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/CartResponse"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "CheckoutEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/CheckoutQuote"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "conflict"},
                "message": {"type": "string", "example": "Not enough stock for the selected size"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Customer token issued by the storefront backend.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cart Service API",
	Description:      "Storefront cart pricing: persistent carts, promotion and quantity-tier pricing, stock checks and checkout quotes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
