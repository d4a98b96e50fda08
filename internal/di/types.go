package di

import (
	"github.com/rs/zerolog"

	"github.com/fuzzysystem/finance/internal/clients/objectstore"
	"github.com/fuzzysystem/finance/internal/config"
	"github.com/fuzzysystem/finance/internal/modules/accuracy"
	"github.com/fuzzysystem/finance/internal/modules/forecast"
	"github.com/fuzzysystem/finance/internal/scheduler"
	"github.com/fuzzysystem/finance/internal/session"
)

// Container holds the application's service instances. It is created by
// Wire and shared by the HTTP server and the CLI.
type Container struct {
	Config *config.Config
	Log    zerolog.Logger

	// Clients
	ObjectStore *objectstore.Client // nil when no bucket is configured

	// Data
	Sessions *session.Store
	Loader   *session.Loader

	// Services
	Labels    *forecast.LabelFormatter
	Forecast  *forecast.Service
	Evaluator *accuracy.Evaluator

	// Jobs
	Scheduler *scheduler.Scheduler // nil when REFRESH_SCHEDULE is empty
}
