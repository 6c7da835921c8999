package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jersey() Product {
	return Product{ID: 1, Name: "Jersey", BasePrice: dec("1000"), DiscountPrice: decPtr("900")}
}

func TestCart_Add(t *testing.T) {
	var cart Cart

	require.NoError(t, cart.Add(jersey(), Size{ID: 2, Name: "M"}, 1))
	require.NoError(t, cart.Add(jersey(), Size{ID: 2, Name: "M"}, 2))
	require.NoError(t, cart.Add(jersey(), Size{ID: 3, Name: "L"}, 1))

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, dec("1000").Equal(cart.Items[0].UnitPrice))
	assert.Equal(t, 4, cart.TotalQuantity())
	assert.Equal(t, 3, cart.QuantityOf(1, 2))
	assert.Equal(t, 0, cart.QuantityOf(1, 9))

	assert.ErrorIs(t, cart.Add(jersey(), Size{ID: 2}, 0), ErrInvalidQuantity)
}

func TestCart_RemoveAndSetQuantity(t *testing.T) {
	cart := Cart{Items: []LineItem{
		NewLineItem(jersey(), Size{ID: 1}, 1),
		NewLineItem(jersey(), Size{ID: 2}, 1),
	}}

	assert.ErrorIs(t, cart.RemoveAt(5), ErrLineNotFound)
	assert.ErrorIs(t, cart.SetQuantity(-1, 2), ErrLineNotFound)
	assert.ErrorIs(t, cart.SetQuantity(0, 0), ErrInvalidQuantity)

	require.NoError(t, cart.SetQuantity(1, 4))
	assert.Equal(t, 4, cart.Items[1].Quantity)

	require.NoError(t, cart.RemoveAt(0))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].Size.ID)
	assert.False(t, cart.IsEmpty())
}

func TestCart_Merge(t *testing.T) {
	cart := Cart{Items: []LineItem{NewLineItem(jersey(), Size{ID: 1}, 1)}}
	shorts := Product{ID: 2, BasePrice: dec("500")}

	cart.Merge([]LineItem{
		NewLineItem(jersey(), Size{ID: 1}, 2),
		NewLineItem(shorts, Size{ID: 1}, 1),
	})

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, int64(2), cart.Items[1].Product.ID)
	assert.Equal(t, []int64{1, 2}, cart.ProductIDs())
}

func TestLineItem_Gross(t *testing.T) {
	item := NewLineItem(jersey(), Size{ID: 1}, 3)
	assert.True(t, dec("3000").Equal(item.Gross()))
	assert.True(t, item.Discount.IsZero())
}

func TestCart_IsExpired(t *testing.T) {
	now := time.Now()
	cart := Cart{LastUpdated: now.Add(-49 * time.Hour)}
	assert.True(t, cart.IsExpired(now, 48*time.Hour))

	cart.LastUpdated = now.Add(-47 * time.Hour)
	assert.False(t, cart.IsExpired(now, 48*time.Hour))
}
