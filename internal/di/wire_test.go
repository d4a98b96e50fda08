package di

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzzysystem/finance/internal/config"
	testingpkg "github.com/fuzzysystem/finance/internal/testing"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DataDir:              dir,
		Port:                 8050,
		ForecastSource:       testingpkg.WriteFile(t, dir, "forecast.csv", testingpkg.ForecastCSV),
		ForecastDateLayout:   "2006-01-02",
		ColumnSeparator:      "_",
		OptimizationSource:   testingpkg.WriteFile(t, dir, "optimization.json", testingpkg.OptimizationJSON),
		OptimizationMetadata: testingpkg.WriteFile(t, dir, "metadata.json", testingpkg.OptimizationMetadataJSON),
	}
}

func TestWire(t *testing.T) {
	container, err := Wire(context.Background(), testConfig(t), zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, container)

	assert.NotNil(t, container.Forecast)
	assert.NotNil(t, container.Evaluator)
	assert.NotNil(t, container.Labels)
	assert.Nil(t, container.ObjectStore)
	assert.Nil(t, container.Scheduler)

	current := container.Sessions.Current()
	require.NotNil(t, current)
	assert.Equal(t, 3, current.Table.Len())
	assert.True(t, current.HasOptimization())
}

func TestWire_WithRefreshSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.RefreshSchedule = "@every 1h"

	container, err := Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, container.Scheduler)
}

func TestWire_Errors(t *testing.T) {
	cfg := testConfig(t)
	cfg.RefreshSchedule = "whenever"
	_, err := Wire(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.ForecastSource = cfg.DataDir + "/missing.csv"
	_, err = Wire(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.ModelLabelsFile = cfg.DataDir + "/missing.yaml"
	_, err = Wire(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
