package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fuzzysystem/finance/internal/clients/objectstore"
	"github.com/fuzzysystem/finance/internal/config"
	"github.com/fuzzysystem/finance/internal/modules/accuracy"
	"github.com/fuzzysystem/finance/internal/modules/forecast"
	"github.com/fuzzysystem/finance/internal/session"
	"github.com/fuzzysystem/finance/internal/sources"
)

// InitializeServices creates the clients and services and loads the first
// session.
func InitializeServices(ctx context.Context, container *Container, cfg *config.Config, log zerolog.Logger) error {
	labels, err := config.LoadModelLabels(cfg.ModelLabelsFile)
	if err != nil {
		return fmt.Errorf("failed to load model labels: %w", err)
	}
	container.Labels = forecast.NewLabelFormatter(cfg.ColumnSeparator, labels)

	normalizer, err := forecast.NewMarketCloseNormalizer()
	if err != nil {
		return fmt.Errorf("failed to create timestamp normalizer: %w", err)
	}
	container.Forecast = forecast.NewService(container.Labels, normalizer, log)
	container.Evaluator = accuracy.NewEvaluator(log)

	var fetcher session.Fetcher
	if cfg.HasObjectStore() || usesObjectStore(cfg) {
		client, err := objectstore.NewClient(ctx, objectstore.Config{
			Region:          cfg.ObjectStore.Region,
			Endpoint:        cfg.ObjectStore.Endpoint,
			AccessKeyID:     cfg.ObjectStore.AccessKeyID,
			SecretAccessKey: cfg.ObjectStore.SecretAccessKey,
		}, log)
		if err != nil {
			return err
		}
		container.ObjectStore = client
		fetcher = client
	}

	container.Loader = session.NewLoader(session.LoaderConfig{
		TableSource:          cfg.ForecastSource,
		OptimizationSource:   cfg.OptimizationSource,
		OptimizationMetadata: cfg.OptimizationMetadata,
		DataDir:              cfg.DataDir,
		Table: sources.Options{
			DateColumn: cfg.ForecastDateColumn,
			DateLayout: cfg.ForecastDateLayout,
			Separator:  cfg.ColumnSeparator,
		},
	}, fetcher, log)

	initial, err := container.Loader.Load(ctx)
	if err != nil {
		return err
	}
	container.Sessions = session.NewStore(initial)

	return nil
}

func usesObjectStore(cfg *config.Config) bool {
	return objectstore.IsURI(cfg.ForecastSource) ||
		objectstore.IsURI(cfg.OptimizationSource) ||
		objectstore.IsURI(cfg.OptimizationMetadata)
}
