// Package main is the entry point of the forecast dashboard API server.
//
// Startup sequence:
// 1. Load configuration from the environment (.env supported)
// 2. Wire services and load the first data session
// 3. Start the refresh scheduler when REFRESH_SCHEDULE is set
// 4. Serve HTTP until SIGINT/SIGTERM, then shut down gracefully
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fuzzysystem/finance/internal/config"
	"github.com/fuzzysystem/finance/internal/di"
	"github.com/fuzzysystem/finance/internal/server"
	"github.com/fuzzysystem/finance/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("source", cfg.ForecastSource).
		Str("data_dir", cfg.DataDir).
		Msg("Starting forecast server")

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 5*time.Minute)
	container, err := di.Wire(startupCtx, cfg, log)
	cancelStartup()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	if container.Scheduler != nil {
		container.Scheduler.Start()
		defer container.Scheduler.Stop()
	}

	srv := server.New(server.Config{
		Log:       log,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		Container: container,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
