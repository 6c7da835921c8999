package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/cart-service/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	generated := func(t *testing.T, id string) {
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	}

	tests := []struct {
		name        string
		headerValue string
		validate    func(*testing.T, string)
	}{
		{name: "generated when absent", validate: generated},
		{
			name:        "client id is kept",
			headerValue: "checkout-retry-42",
			validate: func(t *testing.T, id string) {
				assert.Equal(t, "checkout-retry-42", id)
			},
		},
		{name: "id with spaces is replaced", headerValue: "add item", validate: generated},
		{name: "oversized id is replaced", headerValue: strings.Repeat("a", maxRequestIDLength+1), validate: generated},
		{name: "non-ascii id is replaced", headerValue: "carrito-ñ", validate: generated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID())
			router.POST("/api/cart/items", func(c *gin.Context) {
				c.String(http.StatusOK, GetRequestID(c))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/cart/items", nil)
			if tt.headerValue != "" {
				req.Header.Set(RequestIDHeader, tt.headerValue)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			requestID := w.Body.String()
			assert.NotEmpty(t, requestID)
			assert.Equal(t, requestID, w.Header().Get(RequestIDHeader))
			tt.validate(t, requestID)
		})
	}
}

func TestRequestID_TagsCartLogs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "info", false)
	defer logger.Init("info", false)

	router := gin.New()
	router.Use(RequestID())
	router.DELETE("/api/cart", func(c *gin.Context) {
		l := logger.ForCart(c.Request.Context(), "cart_guest_g1")
		l.Info().Msg("cart cleared")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	req.Header.Set(RequestIDHeader, "req-clear-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "req-clear-1", entry["request_id"])
	assert.Equal(t, "cart_guest_g1", entry["cart_key"])
}

func TestGetRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		value      interface{}
		expectedID string
	}{
		{name: "not set"},
		{name: "set", value: "req-1", expectedID: "req-1"},
		{name: "wrong type", value: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tt.value != nil {
				c.Set(string(RequestIDKey), tt.value)
			}

			assert.Equal(t, tt.expectedID, GetRequestID(c))
		})
	}
}
