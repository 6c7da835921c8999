package app

import (
	"github.com/guttosm/cart-service/config"
	"github.com/guttosm/cart-service/internal/catalog"
	"github.com/guttosm/cart-service/internal/circuitbreaker"
	"github.com/guttosm/cart-service/internal/events"
	"github.com/guttosm/cart-service/internal/repository"
	"github.com/guttosm/cart-service/internal/service"
	"github.com/guttosm/cart-service/internal/service/cache"
	"github.com/rs/zerolog/log"
)

// Notifier is a cart event sink that owns a connection.
type Notifier interface {
	service.Notifier
	Close() error
}

// ServiceComponents holds the business services.
type ServiceComponents struct {
	Engine                service.PricingEngine
	Carts                 service.CartService
	Checkout              service.CheckoutService
	Catalog               service.ProductCatalog
	CatalogCircuitBreaker *circuitbreaker.CircuitBreaker
	Notifier              Notifier
}

// InitializeServices builds the catalog client, the pricing engine and the
// cart and checkout services. db may be nil, in which case carts live in
// memory.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	catalogCB := newCircuitBreaker("catalog", cfg.Catalog.CircuitBreaker, catalog.IsFailure)
	client := catalog.NewClient(cfg.Catalog.BaseURL,
		catalog.WithTimeout(cfg.Catalog.Timeout),
		catalog.WithCircuitBreaker(catalogCB),
	)

	var products service.ProductCatalog = client
	if cfg.Catalog.CacheSize > 0 {
		products = service.NewCachedCatalog(client, cache.NewLRU(cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL))
	}

	var store repository.CartsRepositoryInterface
	if db != nil {
		store = db.Carts
	} else {
		store = repository.NewMemoryCartsRepository()
		log.Warn().Msg("Carts are kept in memory and will not survive a restart")
	}

	notifier := initializeNotifier(cfg.Events)
	engine := service.NewPricingEngine()
	carts := service.NewCartService(store, products, engine,
		service.WithCartTTL(cfg.Cart.TTL),
		service.WithRefreshOnLoad(cfg.Cart.RefreshOnLoad),
		service.WithNotifier(notifier),
	)

	return &ServiceComponents{
		Engine:                engine,
		Carts:                 carts,
		Checkout:              service.NewCheckoutService(carts, products),
		Catalog:               products,
		CatalogCircuitBreaker: catalogCB,
		Notifier:              notifier,
	}
}

// initializeNotifier returns the Kafka publisher when events are enabled and
// configured, the no-op notifier otherwise.
func initializeNotifier(cfg config.EventsConfig) Notifier {
	if !cfg.Enabled {
		return events.NoopNotifier{}
	}

	publisher, err := events.NewKafkaPublisher(events.KafkaConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create Kafka publisher - cart events disabled")
		return events.NoopNotifier{}
	}

	log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("Publishing cart events to Kafka")
	return publisher
}
