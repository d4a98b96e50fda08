// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job represents a scheduled job
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// parser accepts standard five-field expressions, an optional leading
// seconds field, and descriptors such as @hourly or @every 30m.
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler manages background jobs
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	log     zerolog.Logger
}

// New creates a scheduler. Each run gets a context bounded by timeout.
func New(timeout time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		timeout: timeout,
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

// ValidateSchedule reports whether schedule parses.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers job on schedule.
//   - "0 */6 * * *"      - every 6 hours
//   - "30 16 * * MON-FRI" - after the US close on weekdays
//   - "@every 30m"
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunNow(job); err != nil {
			s.log.Error().Err(err).Str("job", job.Name()).Msg("Job failed")
		}
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("Job registered")
	return nil
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	s.log.Debug().Str("job", job.Name()).Msg("Running job")
	if err := job.Run(ctx); err != nil {
		return err
	}
	s.log.Debug().Str("job", job.Name()).Dur("duration", time.Since(start)).Msg("Job completed")
	return nil
}
