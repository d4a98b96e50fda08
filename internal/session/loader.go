package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fuzzysystem/finance/internal/clients/objectstore"
	"github.com/fuzzysystem/finance/internal/modules/optimization"
	"github.com/fuzzysystem/finance/internal/sources"
)

// Fetcher downloads an object URI into dir and returns the local path.
type Fetcher interface {
	Fetch(ctx context.Context, uri, dir string) (string, error)
}

// LoaderConfig names the data locations of a session.
type LoaderConfig struct {
	TableSource          string
	OptimizationSource   string
	OptimizationMetadata string
	DataDir              string
	Table                sources.Options
}

// Loader builds sessions from the configured sources.
type Loader struct {
	cfg     LoaderConfig
	fetcher Fetcher
	log     zerolog.Logger
}

// NewLoader creates a loader. fetcher may be nil when no source lives in
// object storage.
func NewLoader(cfg LoaderConfig, fetcher Fetcher, log zerolog.Logger) *Loader {
	return &Loader{
		cfg:     cfg,
		fetcher: fetcher,
		log:     log.With().Str("service", "session_loader").Logger(),
	}
}

// Load reads every configured source and returns a new session.
func (l *Loader) Load(ctx context.Context) (*Session, error) {
	start := time.Now()

	tablePath, err := l.resolve(ctx, l.cfg.TableSource)
	if err != nil {
		return nil, err
	}
	table, err := sources.ReadTable(ctx, tablePath, l.cfg.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast table: %w", err)
	}

	var opt *optimization.Raw
	if l.cfg.OptimizationSource != "" {
		seriesPath, err := l.resolve(ctx, l.cfg.OptimizationSource)
		if err != nil {
			return nil, err
		}
		metadataPath, err := l.resolve(ctx, l.cfg.OptimizationMetadata)
		if err != nil {
			return nil, err
		}
		if opt, err = sources.ReadOptimization(seriesPath, metadataPath); err != nil {
			return nil, fmt.Errorf("failed to load optimization data: %w", err)
		}
	}

	s := New(l.cfg.TableSource, table, opt)
	l.log.Info().
		Str("session_id", s.ID).
		Str("source", l.cfg.TableSource).
		Int("rows", table.Len()).
		Int("tickers", len(table.Schema().Tickers())).
		Bool("optimization", opt != nil).
		Dur("duration", time.Since(start)).
		Msg("Session loaded")

	return s, nil
}

// Reload loads a new session and installs it in store. On failure the
// current session stays active.
func (l *Loader) Reload(ctx context.Context, store *Store) (*Session, error) {
	s, err := l.Load(ctx)
	if err != nil {
		l.log.Error().Err(err).Msg("Session reload failed, keeping current session")
		return nil, err
	}
	if prev := store.Swap(s); prev != nil {
		l.log.Info().Str("previous", prev.ID).Str("current", s.ID).Msg("Session replaced")
	}
	return s, nil
}

// resolve maps s3:// locations to freshly downloaded local files.
func (l *Loader) resolve(ctx context.Context, location string) (string, error) {
	if !objectstore.IsURI(location) {
		return location, nil
	}
	if l.fetcher == nil {
		return "", fmt.Errorf("%s: object storage is not configured", location)
	}
	if strings.HasSuffix(strings.ToLower(location), ".json") && strings.ContainsAny(location, "*?[") {
		return "", fmt.Errorf("%s: globs are not supported in object storage", location)
	}
	return l.fetcher.Fetch(ctx, location, l.cfg.DataDir)
}
