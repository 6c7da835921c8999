//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/cart-service/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCartsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewCartsRepository(db)
	payload := []byte(`{"items":[],"lastUpdated":1735689600000}`)

	t.Run("get missing", func(t *testing.T) {
		_, err := repo.Get(ctx, "cart_guest_missing")
		assert.ErrorIs(t, err, ErrCartNotFound)
	})

	t.Run("put and get", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, "cart_client_1", payload, time.Now().Add(48*time.Hour)))

		got, err := repo.Get(ctx, "cart_client_1")
		require.NoError(t, err)
		assert.JSONEq(t, string(payload), string(got))
	})

	t.Run("put upserts", func(t *testing.T) {
		next := []byte(`{"items":[],"lastUpdated":1735689700000}`)
		require.NoError(t, repo.Put(ctx, "cart_client_1", next, time.Now().Add(48*time.Hour)))

		got, err := repo.Get(ctx, "cart_client_1")
		require.NoError(t, err)
		assert.JSONEq(t, string(next), string(got))

		count, err := db.Carts.CountDocuments(ctx, bson.M{"_id": "cart_client_1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("expired records are hidden before the reaper runs", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, "cart_guest_old", payload, time.Now().Add(-time.Minute)))

		_, err := repo.Get(ctx, "cart_guest_old")
		assert.ErrorIs(t, err, ErrCartNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "cart_client_1"))
		require.NoError(t, repo.Delete(ctx, "cart_client_1"))

		_, err := repo.Get(ctx, "cart_client_1")
		assert.ErrorIs(t, err, ErrCartNotFound)
	})
}

func TestCartsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	cfg := circuitbreaker.DefaultConfig("cart-store")
	cfg.IsFailure = IsStoreFailure
	cb := circuitbreaker.New(cfg)
	wrapped := NewCartsRepositoryWithCircuitBreaker(NewCartsRepository(db), cb)

	for i := 0; i < 10; i++ {
		_, err := wrapped.Get(ctx, "cart_guest_none")
		assert.ErrorIs(t, err, ErrCartNotFound)
	}
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())

	require.NoError(t, wrapped.Put(ctx, "cart_guest_g", []byte(`{"items":[],"lastUpdated":0}`), time.Now().Add(time.Hour)))
	_, err := wrapped.Get(ctx, "cart_guest_g")
	assert.NoError(t, err)
}
