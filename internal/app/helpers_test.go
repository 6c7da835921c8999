package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/cart-service/config"
)

const catalogJersey = `{"id": 42, "nombre": "Camiseta titular", "precio_base": 1000,
	"stock_talles": [{"talle_id": 3, "talle_nombre": "M", "cantidad": 5}]}`

func newCatalogStub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/productos/42":
			_, _ = w.Write([]byte(catalogJersey))
		case "/api/productos":
			_, _ = w.Write([]byte("[" + catalogJersey + "]"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T) config.Config {
	cfg := config.Load()
	cfg.Catalog.BaseURL = newCatalogStub(t).URL
	cfg.Catalog.Timeout = time.Second
	cfg.Database.Enabled = false
	cfg.Events.Enabled = false
	return cfg
}
