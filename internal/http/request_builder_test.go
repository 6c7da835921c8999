package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cart-service/internal/circuitbreaker"
	"github.com/guttosm/cart-service/internal/domain/dto"
	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/guttosm/cart-service/internal/middleware"
	"github.com/guttosm/cart-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	middleware.RequestID()(c)
	return c, w
}

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
		expected    dto.AddItemRequest
	}{
		{
			name:     "valid request",
			body:     `{"product_id": 42, "size_id": 3, "quantity": 2}`,
			expected: dto.AddItemRequest{ProductID: 42, SizeID: 3, Quantity: 2},
		},
		{
			name:     "quantity is not checked by binding",
			body:     `{"product_id": 42, "size_id": 3, "quantity": 0}`,
			expected: dto.AddItemRequest{ProductID: 42, SizeID: 3},
		},
		{
			name:        "invalid JSON",
			body:        `{"product_id": invalid}`,
			expectError: true,
		},
		{
			name:        "empty body",
			body:        ``,
			expectError: true,
		},
		{
			name:        "binding tag rejects missing size",
			body:        `{"product_id": 42, "quantity": 1}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := jsonContext(tt.body)

			req, err := BuildRequest[dto.AddItemRequest](c)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *req)
		})
	}
}

func TestBuildRequestAndValidate(t *testing.T) {
	t.Run("runs Validate", func(t *testing.T) {
		c, _ := jsonContext(`{"quantity": 0}`)
		req, err := BuildRequestAndValidate[dto.UpdateQuantityRequest](c)
		assert.Nil(t, req)
		assert.ErrorIs(t, err, dto.ErrInvalidQuantity)
	})

	t.Run("valid body passes", func(t *testing.T) {
		c, _ := jsonContext(`{"quantity": 4}`)
		req, err := BuildRequestAndValidate[dto.UpdateQuantityRequest](c)
		require.NoError(t, err)
		assert.Equal(t, 4, req.Quantity)
	})

	t.Run("binding error is not a validation error", func(t *testing.T) {
		c, _ := jsonContext(`[]`)
		_, err := BuildRequestAndValidate[dto.UpdateQuantityRequest](c)
		var validation *dto.ValidationError
		assert.False(t, errors.As(err, &validation))
	})
}

func TestParseLineIndex(t *testing.T) {
	tests := []struct {
		raw       string
		expected  int
		expectErr bool
	}{
		{raw: "0", expected: 0},
		{raw: "12", expected: 12},
		{raw: "-1", expectErr: true},
		{raw: "first", expectErr: true},
		{raw: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			index, err := parseLineIndex(tt.raw)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, index)
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "insufficient stock",
			err:            &service.InsufficientStockError{ProductID: 1, SizeID: 2, Available: 0, Requested: 1},
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeConflict,
		},
		{name: "invalid quantity", err: model.ErrInvalidQuantity, expectedStatus: http.StatusBadRequest, expectedCode: dto.ErrCodeInvalidRequest},
		{name: "line not found", err: model.ErrLineNotFound, expectedStatus: http.StatusBadRequest, expectedCode: dto.ErrCodeInvalidRequest},
		{name: "negative shipping", err: service.ErrInvalidShipping, expectedStatus: http.StatusBadRequest, expectedCode: dto.ErrCodeInvalidRequest},
		{name: "product not found", err: fmt.Errorf("get product 9: %w", model.ErrProductNotFound), expectedStatus: http.StatusNotFound, expectedCode: dto.ErrCodeNotFound},
		{name: "coupon not found", err: model.ErrCouponNotFound, expectedStatus: http.StatusNotFound, expectedCode: dto.ErrCodeNotFound},
		{name: "catalog unavailable", err: service.ErrCatalogUnavailable, expectedStatus: http.StatusBadGateway, expectedCode: dto.ErrCodeUnavailable},
		{name: "circuit open", err: circuitbreaker.ErrCircuitOpen, expectedStatus: http.StatusServiceUnavailable, expectedCode: dto.ErrCodeUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, expectedStatus: http.StatusGatewayTimeout, expectedCode: dto.ErrCodeTimeout},
		{name: "anything else", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedCode: dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := jsonContext(`{}`)

			writeServiceError(NewResponseBuilder(c), tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, c.IsAborted())
			require.Len(t, c.Errors, 1)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
