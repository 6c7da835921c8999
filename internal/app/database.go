package app

import (
	"context"
	"time"

	"github.com/guttosm/cart-service/config"
	"github.com/guttosm/cart-service/internal/circuitbreaker"
	"github.com/guttosm/cart-service/internal/metrics"
	"github.com/guttosm/cart-service/internal/repository"
	"github.com/guttosm/cart-service/internal/service"
	"github.com/rs/zerolog/log"
)

const setupTimeout = 5 * time.Second

// DatabaseComponents holds the MongoDB backed repositories and services.
type DatabaseComponents struct {
	DB                  *repository.MongoDB
	Carts               repository.CartsRepositoryInterface
	LoggingService      service.LoggingService
	CartsCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker  *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the cart and log
// repositories. It returns nil when the database is disabled or unreachable;
// the service then keeps carts in memory.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing with in-memory carts")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	return newDatabaseComponents(db, cfg)
}

func newDatabaseComponents(db *repository.MongoDB, cfg config.DatabaseConfig) *DatabaseComponents {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	if ttlDays := int(cfg.LogsTTL.Hours() / 24); ttlDays > 0 {
		if err := db.SetLogsTTL(ctx, ttlDays); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index")
		}
	}

	cartsCB := newCircuitBreaker("mongodb-carts", cfg.CircuitBreaker, repository.IsStoreFailure)
	logsCB := newCircuitBreaker("mongodb-logs", cfg.CircuitBreaker, repository.IsStoreFailure)

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                  db,
		Carts:               repository.NewCartsRepositoryWithCircuitBreaker(repository.NewCartsRepository(db), cartsCB),
		LoggingService:      service.NewLoggingService(logsRepo),
		CartsCircuitBreaker: cartsCB,
		LogsCircuitBreaker:  logsCB,
	}
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}

// newCircuitBreaker builds a breaker that publishes its state as a metric.
func newCircuitBreaker(name string, cfg config.CircuitBreakerConfig, isFailure func(error) bool) *circuitbreaker.CircuitBreaker {
	cbConfig := circuitbreaker.DefaultConfig(name)
	if cfg.FailureThreshold > 0 {
		cbConfig.FailureThreshold = cfg.FailureThreshold
	}
	if cfg.SuccessThreshold > 0 {
		cbConfig.SuccessThreshold = cfg.SuccessThreshold
	}
	if cfg.Timeout > 0 {
		cbConfig.Timeout = cfg.Timeout
	}
	cbConfig.IsFailure = isFailure
	cbConfig.OnStateChange = func(name string, from, to circuitbreaker.State) {
		metrics.SetCircuitBreakerState(name, int(to))
		log.Warn().Str("circuit", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
	}

	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(cbConfig)
}
