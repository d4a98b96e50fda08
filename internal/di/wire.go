// Package di provides dependency injection wiring and initialization.
package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fuzzysystem/finance/internal/config"
)

// Wire initializes all dependencies and returns a fully configured container.
// Order of operations:
// 1. Initialize services and load the first session
// 2. Register jobs
func Wire(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{Config: cfg, Log: log}

	if err := InitializeServices(ctx, container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := RegisterJobs(container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, nil
}
