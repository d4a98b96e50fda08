// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Download and scratch directory (always absolute)
	LogLevel string
	Port     int
	DevMode  bool

	// Wide table source: local path, s3://bucket/key, sqlite://path?table=name
	// or a glob of *_history.json files
	ForecastSource     string
	ForecastDateColumn string // empty = first column
	ForecastDateLayout string
	ColumnSeparator    string
	ModelLabelsFile    string

	// Optional precomputed optimization results
	OptimizationSource   string
	OptimizationMetadata string

	// Cron expression for reloading the session; empty disables reloading
	RefreshSchedule string

	ObjectStore ObjectStoreConfig
}

// ObjectStoreConfig holds the S3-compatible bucket credentials
type ObjectStoreConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:              absDataDir,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Port:                 getEnvAsInt("PORT", 8050),
		DevMode:              getEnvAsBool("DEV_MODE", false),
		ForecastSource:       getEnv("FORECAST_SOURCE", filepath.Join("input", "forecast.csv")),
		ForecastDateColumn:   getEnv("FORECAST_DATE_COLUMN", ""),
		ForecastDateLayout:   getEnv("FORECAST_DATE_LAYOUT", "2006-01-02"),
		ColumnSeparator:      getEnv("COLUMN_SEPARATOR", "_"),
		ModelLabelsFile:      getEnv("MODEL_LABELS_FILE", ""),
		OptimizationSource:   getEnv("OPTIMIZATION_SOURCE", ""),
		OptimizationMetadata: getEnv("OPTIMIZATION_METADATA", ""),
		RefreshSchedule:      getEnv("REFRESH_SCHEDULE", ""),
		ObjectStore: ObjectStoreConfig{
			Region:          getEnv("FSF_FRONT_END_BUCKET_REGION", ""),
			Endpoint:        getEnv("FSF_FRONT_END_BUCKET_ENDPOINT", ""),
			AccessKeyID:     getEnv("FSF_FRONT_END_BUCKET_READ_ONLY_KEY_ID", ""),
			SecretAccessKey: getEnv("FSF_FRONT_END_BUCKET_READ_ONLY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.ForecastSource == "" {
		return fmt.Errorf("FORECAST_SOURCE is required")
	}
	if c.ColumnSeparator == "" {
		return fmt.Errorf("COLUMN_SEPARATOR must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if (c.OptimizationSource == "") != (c.OptimizationMetadata == "") {
		return fmt.Errorf("OPTIMIZATION_SOURCE and OPTIMIZATION_METADATA must be set together")
	}
	return nil
}

// HasObjectStore reports whether bucket credentials are configured.
func (c *Config) HasObjectStore() bool {
	return c.ObjectStore.AccessKeyID != "" && c.ObjectStore.SecretAccessKey != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
