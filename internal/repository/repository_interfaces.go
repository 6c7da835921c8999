// Package repository provides the persistence layer of the cart service:
// cart records in MongoDB or memory, and request/audit logs in MongoDB.
package repository

import (
	"context"
	"errors"
	"time"
)

// ErrCartNotFound is returned when no live record exists for a cart key.
var ErrCartNotFound = errors.New("cart not found")

// CartsRepositoryInterface stores serialized cart records by key.
// Payloads are opaque to the store.
type CartsRepositoryInterface interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte, expiresAt time.Time) error
	Delete(ctx context.Context, key string) error
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
