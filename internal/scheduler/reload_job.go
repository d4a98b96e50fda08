package scheduler

import (
	"context"

	"github.com/fuzzysystem/finance/internal/session"
)

// ReloadJob replaces the current session with a freshly loaded one.
type ReloadJob struct {
	loader *session.Loader
	store  *session.Store
}

// NewReloadJob creates a session reload job
func NewReloadJob(loader *session.Loader, store *session.Store) *ReloadJob {
	return &ReloadJob{loader: loader, store: store}
}

// Name returns the job name
func (j *ReloadJob) Name() string {
	return "session_reload"
}

// Run executes the job
func (j *ReloadJob) Run(ctx context.Context) error {
	_, err := j.loader.Reload(ctx, j.store)
	return err
}
