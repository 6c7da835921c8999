package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartEventType names a cart state transition.
type CartEventType string

const (
	CartEventUpdated CartEventType = "cart.updated"
	CartEventCleared CartEventType = "cart.cleared"
	CartEventMerged  CartEventType = "cart.merged"
)

// CartEvent is published after every cart mutation.
type CartEvent struct {
	EventID       string          `json:"event_id"`
	Type          CartEventType   `json:"type"`
	CartKey       string          `json:"cart_key"`
	Operation     string          `json:"operation"`
	Lines         int             `json:"lines"`
	TotalQuantity int             `json:"total_quantity"`
	Total         decimal.Decimal `json:"total"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
