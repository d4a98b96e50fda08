package di

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fuzzysystem/finance/internal/config"
	"github.com/fuzzysystem/finance/internal/scheduler"
)

const reloadTimeout = 5 * time.Minute

// RegisterJobs creates the scheduler when a refresh schedule is configured.
// The scheduler is not started.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if cfg.RefreshSchedule == "" {
		return nil
	}

	sched := scheduler.New(reloadTimeout, log)
	job := scheduler.NewReloadJob(container.Loader, container.Sessions)
	if err := sched.AddJob(cfg.RefreshSchedule, job); err != nil {
		return fmt.Errorf("invalid REFRESH_SCHEDULE %q: %w", cfg.RefreshSchedule, err)
	}
	container.Scheduler = sched
	return nil
}
