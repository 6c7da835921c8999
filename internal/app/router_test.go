//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/guttosm/cart-service/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeRouter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.RateLimit = 42
	cfg.Server.RateWindow = 30 * time.Second
	cfg.Server.ShopperRateLimit = 7
	cfg.Server.CORSOrigins = []string{"https://shop.example.com"}
	cfg.Server.SwaggerUser = "docs"
	cfg.Server.SwaggerPass = "secret"
	cfg.Auth.JWTSecret = "shh"
	cfg.Auth.GuestHeader = "X-Shopper"

	components := InitializeRouter(InitializeServices(cfg, nil), nil, cfg)

	require.NotNil(t, components)
	assert.NotNil(t, components.Routes)
	assert.NotNil(t, components.HealthHandler)

	rc := components.Config
	assert.Equal(t, 42, rc.RateLimit)
	assert.Equal(t, 30*time.Second, rc.RateWindow)
	assert.Equal(t, 7, rc.ShopperRateLimit)
	assert.Equal(t, cfg.Server.RequestTimeout, rc.RequestTimeout)
	assert.True(t, rc.EnableIdempotency)
	assert.Equal(t, []string{"https://shop.example.com"}, rc.CORSOrigins)
	assert.Equal(t, "docs", rc.SwaggerUser)
	assert.Equal(t, "secret", rc.SwaggerPass)
	assert.Nil(t, rc.LoggingService)
	assert.Equal(t, middleware.IdentityConfig{Secret: []byte("shh"), GuestHeader: "X-Shopper"}, rc.Identity)
}
