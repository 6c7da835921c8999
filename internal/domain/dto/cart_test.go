package dto

import (
	"testing"
	"time"

	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCartResponse(t *testing.T) {
	updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("ART", -3*3600))
	jersey := model.Product{ID: 42, Name: "Home jersey", BasePrice: decimal.NewFromInt(1000)}

	cart := model.PricedCart{
		Key: "cart_guest_g1",
		Pricing: model.PricingResult{
			Items: []model.LineItem{{
				Product:   jersey,
				Size:      model.Size{ID: 3, Name: "M"},
				Quantity:  2,
				UnitPrice: decimal.NewFromInt(1000),
				Discount:  decimal.NewFromInt(380),
			}},
			TotalQuantity: 2,
			TierPercent:   decimal.NewFromInt(10),
			Total:         decimal.NewFromInt(1620),
		},
		LastUpdated: updated,
		Warnings:    []string{"product refresh failed"},
	}

	resp := NewCartResponse(cart)

	require.Len(t, resp.Items, 1)
	line := resp.Items[0]
	assert.Equal(t, 0, line.Index)
	assert.Equal(t, int64(42), line.ProductID)
	assert.Equal(t, "M", line.SizeName)
	assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(1620)))
	assert.Equal(t, 1, resp.LineCount)
	assert.Equal(t, 2, resp.ItemCount)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1620)))
	require.NotNil(t, resp.LastUpdated)
	assert.Equal(t, time.UTC, resp.LastUpdated.Location())
	assert.True(t, resp.LastUpdated.Equal(updated))
	assert.Equal(t, []string{"product refresh failed"}, resp.Warnings)
}

func TestNewCartResponse_EmptyCart(t *testing.T) {
	resp := NewCartResponse(model.PricedCart{Pricing: model.PricingResult{Total: decimal.Zero}})

	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.ItemCount)
	assert.Nil(t, resp.LastUpdated)
}
