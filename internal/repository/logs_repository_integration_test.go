//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/cart-service/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	require.NoError(t, db.SetLogsTTL(ctx, 30))
	repo := NewLogsRepository(db)

	t.Run("create stamps id and timestamp", func(t *testing.T) {
		entry := &LogEntryDocument{
			Level:      "info",
			Message:    "Item added to cart",
			RequestID:  "req-add",
			Method:     "POST",
			Path:       "/api/cart/items",
			StatusCode: 201,
			CartKey:    "cart_client_7",
			ActionType: "cart_add",
			Fields:     map[string]interface{}{"product_id": int64(42)},
		}

		require.NoError(t, repo.Create(ctx, entry))
		assert.False(t, entry.ID.IsZero())
		assert.False(t, entry.Timestamp.IsZero())
	})

	t.Run("create many", func(t *testing.T) {
		entries := []*LogEntryDocument{
			{Level: "info", Message: "Cart cleared", CartKey: "cart_client_7", ActionType: "cart_clear"},
			{Level: "error", Message: "Catalog unavailable", RequestID: "req-err"},
			{Level: "warn", Message: "Corrupt cart discarded", CartKey: "cart_guest_abc"},
		}
		require.NoError(t, repo.CreateMany(ctx, entries))
		require.NoError(t, repo.CreateMany(ctx, nil))
	})

	t.Run("query by cart key newest first", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{CartKey: "cart_client_7"})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.False(t, entries[0].Timestamp.Before(entries[1].Timestamp))
	})

	t.Run("query by action type", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{ActionType: "cart_add"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "req-add", entries[0].RequestID)
		assert.EqualValues(t, 42, entries[0].Fields["product_id"])
	})

	t.Run("query with limit and window", func(t *testing.T) {
		start := time.Now().Add(-time.Hour)
		entries, err := repo.Query(ctx, LogQueryOptions{StartTime: &start, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("count with filter", func(t *testing.T) {
		count, err := repo.Count(ctx, LogQueryOptions{Level: "error"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		total, err := repo.Count(ctx, LogQueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
	})
}

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("logs"))
	wrapped := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(db), cb)

	require.NoError(t, wrapped.Create(ctx, &LogEntryDocument{Level: "info", Message: "ok"}))

	count, err := wrapped.Count(ctx, LogQueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "closed", cb.GetStats().State)
}
