package app

import (
	"github.com/guttosm/cart-service/config"
	"github.com/guttosm/cart-service/internal/logger"
)

// InitializeLogger initializes the global logger from the log configuration.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
