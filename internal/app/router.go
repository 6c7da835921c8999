package app

import (
	"github.com/guttosm/cart-service/config"
	"github.com/guttosm/cart-service/internal/domain/dto"
	"github.com/guttosm/cart-service/internal/http"
	"github.com/guttosm/cart-service/internal/middleware"
	"github.com/guttosm/cart-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Routes        *http.CartRoutes
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the handlers, the readiness checks and the router
// configuration. db may be nil.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterCircuitBreaker("catalog", services.CatalogCircuitBreaker)

	var loggingService service.LoggingService
	if db != nil {
		loggingService = db.LoggingService
		healthHandler.RegisterChecker("mongodb", http.HealthCheckerFunc(db.DB.HealthCheck))
		healthHandler.RegisterCircuitBreaker("mongodb_carts", db.CartsCircuitBreaker)
		healthHandler.RegisterCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	routerCfg.ShopperRateLimit = cfg.Server.ShopperRateLimit
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	routerCfg.LoggingService = loggingService
	routerCfg.Identity = middleware.IdentityConfig{
		Secret:      []byte(cfg.Auth.JWTSecret),
		GuestHeader: cfg.Auth.GuestHeader,
	}

	limits := http.WithLimits(dto.Limits{
		MaxLineQuantity: cfg.Cart.MaxLineQuantity,
		MaxQuoteLines:   cfg.Cart.MaxQuoteLines,
	})
	routes := http.NewCartRoutes(
		http.NewCartHandler(services.Carts, limits),
		http.NewCheckoutHandler(services.Engine, services.Checkout, limits),
	)

	return &RouterComponents{
		Routes:        routes,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
