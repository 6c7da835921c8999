// Package config loads the cart service configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cart     CartConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Events   EventsConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port       string
	RateLimit  int
	RateWindow time.Duration
	// ShopperRateLimit bounds requests per cart owner; 0 disables it.
	ShopperRateLimit int
	RequestTimeout   time.Duration
	CORSOrigins      []string
	SwaggerUser      string
	SwaggerPass      string
}

// CartConfig holds cart storage configuration.
type CartConfig struct {
	TTL time.Duration
	// RefreshOnLoad re-reads product data from the catalog on every GET /api/cart.
	RefreshOnLoad bool
	// MaxLineQuantity bounds the units of one line in any request.
	MaxLineQuantity int
	// MaxQuoteLines bounds the lines of a stateless pricing quote.
	MaxQuoteLines int
}

// CatalogConfig holds the storefront backend client configuration.
type CatalogConfig struct {
	BaseURL        string
	Timeout        time.Duration
	CacheSize      int
	CacheTTL       time.Duration
	CircuitBreaker CircuitBreakerConfig
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI            string
	DatabaseName   string
	Enabled        bool
	LogsTTL        time.Duration
	CircuitBreaker CircuitBreakerConfig
}

// CircuitBreakerConfig holds the thresholds of one circuit breaker.
type CircuitBreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	Timeout          time.Duration
}

// AuthConfig holds customer token configuration.
type AuthConfig struct {
	// JWTSecret verifies customer tokens issued by the storefront backend.
	// Bearer tokens are ignored when it is empty.
	JWTSecret   string
	GuestHeader string
}

// EventsConfig holds the Kafka cart event configuration.
type EventsConfig struct {
	Enabled      bool
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
	WriteTimeout time.Duration
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// LoadDotEnv reads variables from the given files (".env" by default)
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:             getEnv("PORT", "8080"),
			RateLimit:        getEnvInt("RATE_LIMIT", 100),
			RateWindow:       getEnvDuration("RATE_WINDOW", time.Minute),
			ShopperRateLimit: getEnvInt("SHOPPER_RATE_LIMIT", 60),
			RequestTimeout:   getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
			CORSOrigins:      parseList(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:      getEnv("SWAGGER_USER", ""),
			SwaggerPass:      getEnv("SWAGGER_PASS", ""),
		},
		Cart: CartConfig{
			TTL:             getEnvDuration("CART_TTL", 48*time.Hour),
			RefreshOnLoad:   getEnvBool("CART_REFRESH_ON_LOAD", false),
			MaxLineQuantity: getEnvInt("CART_MAX_LINE_QUANTITY", 100),
			MaxQuoteLines:   getEnvInt("PRICING_MAX_QUOTE_LINES", 100),
		},
		Catalog: CatalogConfig{
			BaseURL:   getEnv("CATALOG_BASE_URL", "http://localhost:5000"),
			Timeout:   getEnvDuration("CATALOG_TIMEOUT", 5*time.Second),
			CacheSize: getEnvInt("CATALOG_CACHE_SIZE", 1000),
			CacheTTL:  getEnvDuration("CATALOG_CACHE_TTL", time.Minute),
			CircuitBreaker: CircuitBreakerConfig{
				FailureThreshold: getEnvInt("CATALOG_CB_FAILURE_THRESHOLD", 5),
				SuccessThreshold: getEnvInt("CATALOG_CB_SUCCESS_THRESHOLD", 2),
				Timeout:          getEnvDuration("CATALOG_CB_TIMEOUT", 30*time.Second),
			},
		},
		Database: DatabaseConfig{
			URI:          getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName: getEnv("MONGODB_DATABASE", "cart_service"),
			Enabled:      getEnvBool("MONGODB_ENABLED", false),
			LogsTTL:      getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			CircuitBreaker: CircuitBreakerConfig{
				FailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
				SuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
				Timeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
			},
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET_KEY", ""),
			GuestHeader: getEnv("GUEST_HEADER", "X-Guest-ID"),
		},
		Events: EventsConfig{
			Enabled:      getEnvBool("KAFKA_ENABLED", false),
			Brokers:      parseList(os.Getenv("KAFKA_BROKERS")),
			Topic:        getEnv("KAFKA_TOPIC", "cart-events"),
			BatchTimeout: getEnvDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
			WriteTimeout: getEnvDuration("KAFKA_WRITE_TIMEOUT", 5*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseList splits a comma separated value, dropping blanks.
func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			result = append(result, v)
		}
	}
	return result
}
