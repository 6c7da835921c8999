//go:build integration

package service

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/guttosm/cart-service/internal/repository"
	"github.com/guttosm/cart-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

func TestLoggingService_Integration(t *testing.T) {
	ctx := context.Background()

	db, err := repository.NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()
	require.NoError(t, db.SetLogsTTL(ctx, 30))

	svc := NewLoggingService(repository.NewLogsRepository(db))

	require.NoError(t, svc.CreateLog(ctx, &model.LogEntry{
		Level:      "info",
		Message:    "Item added to cart",
		CartKey:    "cart_client_1",
		ActionType: "cart_add",
	}))
	require.NoError(t, svc.CreateLogs(ctx, []*model.LogEntry{
		{Level: "info", Message: "Cart cleared", CartKey: "cart_client_1", ActionType: "cart_clear"},
		{Level: "warn", Message: "Stale product", CartKey: "cart_guest_g"},
	}))

	entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{CartKey: "cart_client_1"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	count, err := svc.CountLogs(ctx, model.LogQueryOptions{ActionType: "cart_clear"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
