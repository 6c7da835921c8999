// Package i18n provides internationalization support for the cart service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,pt;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":       "Invalid request",
			"error.invalid_request_body":  "Invalid request body",
			"error.internal_error":        "An unexpected error occurred",
			"error.unauthorized":          "Unauthorized",
			"error.not_found":             "Not found",
			"error.rate_limit_exceeded":   "Too many requests, please try again later",
			"error.conflict":              "Conflict",
			"error.invalid_token":         "Invalid or expired token",
			"error.timeout":               "The request took too long",
			"error.validation.quantity":   "quantity: must be a positive integer",
			"error.validation.line_index": "index: no cart line at this position",
			"error.validation.shipping":   "shipping: must not be negative",
			"error.insufficient_stock":    "Not enough stock for the selected size",
			"error.product_not_found":     "Product not found",
			"error.coupon_not_found":      "Invalid or expired coupon",
			"error.catalog_unavailable":   "The product catalog is unavailable, please try again later",
		},
		"es": {
			"error.invalid_request":       "Solicitud inválida",
			"error.invalid_request_body":  "Cuerpo de la solicitud inválido",
			"error.internal_error":        "Ocurrió un error inesperado",
			"error.unauthorized":          "No autorizado",
			"error.not_found":             "No encontrado",
			"error.rate_limit_exceeded":   "Demasiadas solicitudes, intentá de nuevo más tarde",
			"error.conflict":              "Conflicto",
			"error.invalid_token":         "Token inválido o vencido",
			"error.timeout":               "La solicitud tardó demasiado",
			"error.validation.quantity":   "cantidad: debe ser un entero positivo",
			"error.validation.line_index": "índice: no hay un producto en esa posición del carrito",
			"error.validation.shipping":   "envío: no puede ser negativo",
			"error.insufficient_stock":    "No hay stock suficiente para el talle seleccionado",
			"error.product_not_found":     "Producto no encontrado",
			"error.coupon_not_found":      "Cupón inválido o vencido",
			"error.catalog_unavailable":   "El catálogo no está disponible, intentá de nuevo más tarde",
		},
		"pt": {
			"error.invalid_request":       "Requisição inválida",
			"error.invalid_request_body":  "Corpo da requisição inválido",
			"error.internal_error":        "Ocorreu um erro inesperado",
			"error.unauthorized":          "Não autorizado",
			"error.not_found":             "Não encontrado",
			"error.rate_limit_exceeded":   "Muitas requisições, tente novamente mais tarde",
			"error.conflict":              "Conflito",
			"error.invalid_token":         "Token inválido ou expirado",
			"error.timeout":               "A requisição demorou demais",
			"error.validation.quantity":   "quantidade: deve ser um inteiro positivo",
			"error.validation.line_index": "índice: não há item do carrinho nessa posição",
			"error.validation.shipping":   "frete: não pode ser negativo",
			"error.insufficient_stock":    "Estoque insuficiente para o tamanho selecionado",
			"error.product_not_found":     "Produto não encontrado",
			"error.coupon_not_found":      "Cupom inválido ou expirado",
			"error.catalog_unavailable":   "O catálogo está indisponível, tente novamente mais tarde",
		},
	}
}
