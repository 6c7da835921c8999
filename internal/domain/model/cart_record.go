package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCorruptCart is returned when a persisted cart cannot be decoded.
var ErrCorruptCart = errors.New("corrupt cart record")

// CartRecord is the persisted shape of a cart.
type CartRecord struct {
	Items       []LineItem `json:"items"`
	LastUpdated int64      `json:"lastUpdated"`
}

// EncodeCart serializes the cart into its persisted record.
func EncodeCart(cart Cart) ([]byte, error) {
	items := cart.Items
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(CartRecord{
		Items:       items,
		LastUpdated: cart.LastUpdated.UnixMilli(),
	})
}

// DecodeCart parses a persisted record. A bare JSON array of line items is
// accepted as the items list and stamped with now.
func DecodeCart(data []byte, now time.Time) (Cart, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Cart{}, ErrCorruptCart
	}

	if trimmed[0] == '[' {
		var items []LineItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Cart{}, fmt.Errorf("%w: %v", ErrCorruptCart, err)
		}
		return Cart{Items: sanitize(items), LastUpdated: now}, nil
	}

	var record CartRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}
	return Cart{
		Items:       sanitize(record.Items),
		LastUpdated: time.UnixMilli(record.LastUpdated),
	}, nil
}

// sanitize drops lines that cannot be priced.
func sanitize(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		out = append(out, item)
	}
	return out
}

// IsExpired reports whether more than ttl has elapsed since the last update.
func (c *Cart) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.LastUpdated) > ttl
}
