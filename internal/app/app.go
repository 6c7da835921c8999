// Package app wires the cart service together and runs its HTTP server.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cart-service/config"
	"github.com/guttosm/cart-service/internal/http"
	"github.com/guttosm/cart-service/internal/middleware"
	"github.com/rs/zerolog/log"
)

// App is the initialized service: its router and the resources to release
// on shutdown.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger(cfg.Log)

	db := InitializeDatabase(cfg.Database)
	services := InitializeServices(cfg, db)
	routerComponents := InitializeRouter(services, db, cfg)

	if routerComponents.Config.LoggingService != nil {
		middleware.InitAsyncLogger(routerComponents.Config.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	return &App{
		Router:   http.NewRouter(routerComponents.HealthHandler, routerComponents.Config, routerComponents.Routes),
		Services: services,
		Database: db,
	}
}

// Close drains the async logger, closes the event publisher and disconnects
// from MongoDB.
func (a *App) Close(ctx context.Context) error {
	middleware.StopAsyncLogger()

	var errs []error
	if a.Services != nil && a.Services.Notifier != nil {
		if err := a.Services.Notifier.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.Database.Close(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		log.Error().Err(err).Msg("Shutdown finished with errors")
		return err
	}
	return nil
}
