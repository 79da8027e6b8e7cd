// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/config"
	"github.com/guttosm/cargo-quote/internal/http"
	"github.com/guttosm/cargo-quote/internal/middleware"
	"github.com/rs/zerolog/log"
)

// App holds the router and the components that must be closed on shutdown.
type App struct {
	Router   *gin.Engine
	Database *DatabaseComponents
	Services *ServiceComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*App, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	db := InitializeDatabase(cfg)
	InitializeLogPersistence(cfg.Log, db.LoggingService)

	services, err := InitializeServices(cfg, db)
	if err != nil {
		middleware.StopAsyncLogger()
		db.Close(context.Background())
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := SeedTariffs(ctx, services.Tariffs, cfg.Cache.TariffSeedFile); err != nil {
		log.Error().Err(err).Msg("Failed to seed tariff tables")
	}

	routerComponents := InitializeRouter(services, db, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.HealthHandler, routerComponents.Config),
		Database: db,
		Services: services,
	}, nil
}

// Close flushes pending logs and quotes and releases connections.
func (a *App) Close(ctx context.Context) {
	middleware.StopAsyncLogger()
	a.Services.Close()
	a.Database.Close(ctx)
}
