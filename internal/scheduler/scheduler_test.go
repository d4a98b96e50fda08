package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzzysystem/finance/internal/session"
	testingpkg "github.com/fuzzysystem/finance/internal/testing"
)

type countingJob struct {
	runs int
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs++
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("missing deadline")
	}
	return j.err
}

func TestValidateSchedule(t *testing.T) {
	for _, ok := range []string{"0 */6 * * *", "0 30 16 * * MON-FRI", "@hourly", "@every 30m"} {
		assert.NoError(t, ValidateSchedule(ok), ok)
	}
	for _, bad := range []string{"", "every day", "61 * * * *"} {
		assert.Error(t, ValidateSchedule(bad), bad)
	}
}

func TestAddJob(t *testing.T) {
	s := New(time.Second, zerolog.Nop())
	job := &countingJob{}

	require.NoError(t, s.AddJob("@hourly", job))
	assert.Error(t, s.AddJob("not a schedule", job))
	assert.Len(t, s.cron.Entries(), 1)

	s.Start()
	s.Stop()
}

func TestRunNow(t *testing.T) {
	s := New(time.Second, zerolog.Nop())

	job := &countingJob{}
	require.NoError(t, s.RunNow(job))
	assert.Equal(t, 1, job.runs)

	failing := &countingJob{err: errors.New("boom")}
	assert.EqualError(t, s.RunNow(failing), "boom")
}

func TestReloadJob(t *testing.T) {
	dir := t.TempDir()
	loader := session.NewLoader(session.LoaderConfig{
		TableSource: testingpkg.WriteFile(t, dir, "forecast.csv", testingpkg.ForecastCSV),
	}, nil, zerolog.Nop())
	store := session.NewStore(nil)

	job := NewReloadJob(loader, store)
	assert.Equal(t, "session_reload", job.Name())

	require.NoError(t, New(5*time.Second, zerolog.Nop()).RunNow(job))
	require.NotNil(t, store.Current())
	assert.Equal(t, 3, store.Current().Table.Len())
}
