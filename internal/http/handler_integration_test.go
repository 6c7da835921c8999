//go:build integration

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cart-service/internal/catalog"
	"github.com/guttosm/cart-service/internal/domain/dto"
	"github.com/guttosm/cart-service/internal/repository"
	"github.com/guttosm/cart-service/internal/service"
	"github.com/guttosm/cart-service/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const integrationJersey = `{
	"id": 42,
	"nombre": "Camiseta titular",
	"precio_base": 1000,
	"stock_talles": [{"talle_id": 3, "talle_nombre": "M", "cantidad": 4}]
}`

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/productos/42":
			_, _ = w.Write([]byte(integrationJersey))
		case "/api/productos":
			_, _ = w.Write([]byte("[" + integrationJersey + "]"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func setupIntegrationRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := context.Background()

	db, err := repository.NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(ctx) })

	products := catalog.NewClient(newCatalogServer(t).URL, catalog.WithTimeout(2*time.Second))
	engine := service.NewPricingEngine()
	carts := service.NewCartService(repository.NewCartsRepository(db), products, engine)

	health := NewHealthHandler()
	health.RegisterChecker("mongodb", HealthCheckerFunc(db.HealthCheck))

	routes := NewCartRoutes(NewCartHandler(carts), NewCheckoutHandler(engine, service.NewCheckoutService(carts, products)))
	return NewRouter(health, testRouterConfig(), routes)
}

func TestIntegration_CartLifecycle(t *testing.T) {
	router := setupIntegrationRouter(t)

	w := apiRequest{method: http.MethodPost, path: "/api/cart/items", body: `{"product_id":42,"size_id":3,"quantity":2}`}.do(router)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cart := decodeCart(t, w)
	assert.Equal(t, 2, cart.ItemCount)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(1800)), cart.Total.String())

	w = apiRequest{method: http.MethodGet, path: "/api/cart"}.do(router)
	require.Equal(t, http.StatusOK, w.Code)
	cart = decodeCart(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Camiseta titular", cart.Items[0].ProductName)
	require.NotNil(t, cart.LastUpdated)

	w = apiRequest{method: http.MethodPost, path: "/api/cart/items", body: `{"product_id":42,"size_id":3,"quantity":3}`}.do(router)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "4", decodeError(t, w).Details["available"])

	w = apiRequest{method: http.MethodPatch, path: "/api/cart/items/0", body: `{"quantity":3}`}.do(router)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeCart(t, w).Total.Equal(decimal.NewFromInt(2550)))

	w = apiRequest{method: http.MethodPost, path: "/api/checkout/quote", body: `{"shipping":"500","payment_method":"transferencia"}`}.do(router)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = apiRequest{method: http.MethodDelete, path: "/api/cart/items/0"}.do(router)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w).Items)

	w = apiRequest{method: http.MethodGet, path: "/api/cart"}.do(router)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeCart(t, w).LastUpdated)
}

func TestIntegration_GuestsAreIsolated(t *testing.T) {
	router := setupIntegrationRouter(t)

	w := apiRequest{method: http.MethodPost, path: "/api/cart/items", body: `{"product_id":42,"size_id":3,"quantity":1}`}.do(router)
	require.Equal(t, http.StatusOK, w.Code)

	other := map[string]string{"X-Guest-ID": "g2"}
	w = apiRequest{method: http.MethodGet, path: "/api/cart", headers: other}.do(router)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w).Items)
}

func TestIntegration_UnknownProduct(t *testing.T) {
	router := setupIntegrationRouter(t)

	w := apiRequest{method: http.MethodPost, path: "/api/cart/items", body: `{"product_id":7,"size_id":3,"quantity":1}`}.do(router)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decodeError(t, w).Error)
}

func TestIntegration_Readiness(t *testing.T) {
	router := setupIntegrationRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
