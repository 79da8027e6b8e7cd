package app

import (
	"github.com/guttosm/cargo-quote/config"
	"github.com/guttosm/cargo-quote/internal/logger"
	"github.com/guttosm/cargo-quote/internal/middleware"
	"github.com/guttosm/cargo-quote/internal/service"
	"github.com/rs/zerolog/log"
)

// InitializeLogger initializes the JSON logger from the log configuration.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}

// InitializeLogPersistence starts the batch writer that stores request and
// audit logs. Without a logging service nothing is persisted.
func InitializeLogPersistence(cfg config.LogConfig, loggingService service.LoggingService) {
	if loggingService == nil {
		middleware.StopAsyncLogger()
		return
	}
	asyncCfg := middleware.DefaultAsyncLoggerConfig()
	asyncCfg.BufferSize = cfg.BufferSize
	asyncCfg.BatchSize = cfg.BatchSize
	asyncCfg.FlushInterval = cfg.FlushInterval
	middleware.InitAsyncLogger(loggingService, asyncCfg)

	log.Info().
		Int("buffer_size", cfg.BufferSize).
		Int("batch_size", cfg.BatchSize).
		Dur("flush_interval", cfg.FlushInterval).
		Msg("Log persistence enabled")
}
