package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePurger struct {
	calls int
	err   error
}

func (f *fakePurger) PurgeExpiredTokens(context.Context) (int64, error) {
	f.calls++
	return 3, f.err
}

type fakeSweeper struct{ maxAge time.Duration }

func (f *fakeSweeper) Sweep(_ time.Time, maxTokenAge time.Duration) int {
	f.maxAge = maxTokenAge
	return 2
}

func TestRegister(t *testing.T) {
	s := New(DefaultConfig(), zap.NewNop())

	require.NoError(t, s.Register(Job{Name: "a", Spec: "@every 1h", Run: func(context.Context) (int64, error) { return 0, nil }}))

	err := s.Register(Job{Name: "a", Spec: "@every 1h", Run: func(context.Context) (int64, error) { return 0, nil }})
	assert.ErrorIs(t, err, ErrDuplicateJob)

	err = s.Register(Job{Name: "b", Spec: "not a schedule", Run: func(context.Context) (int64, error) { return 0, nil }})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")

	assert.ErrorIs(t, s.Register(Job{Spec: "@every 1h"}), ErrInvalidJob)

	run, ok := s.LastRun("a")
	require.True(t, ok)
	assert.Equal(t, JobStatusPending, run.Status)
}

func TestRunNow(t *testing.T) {
	purger := &fakePurger{}
	sweeper := &fakeSweeper{}
	s := New(DefaultConfig(), zap.NewNop())
	for _, job := range MaintenanceJobs("@every 1h", purger, sweeper, 7*24*time.Hour) {
		require.NoError(t, s.Register(job))
	}

	run, err := s.RunNow(context.Background(), JobPurgeResetTokens)
	require.NoError(t, err)
	assert.Equal(t, JobStatusSuccess, run.Status)
	assert.Equal(t, int64(3), run.Affected)
	assert.Equal(t, 1, purger.calls)

	run, err = s.RunNow(context.Background(), JobSweepBlacklist)
	require.NoError(t, err)
	assert.Equal(t, int64(2), run.Affected)
	assert.Equal(t, 7*24*time.Hour, sweeper.maxAge)

	purger.err = errors.New("database is locked")
	run, err = s.RunNow(context.Background(), JobPurgeResetTokens)
	require.NoError(t, err)
	assert.Equal(t, JobStatusFailed, run.Status)
	assert.Equal(t, "database is locked", run.Error)

	last, ok := s.LastRun(JobPurgeResetTokens)
	require.True(t, ok)
	assert.Equal(t, JobStatusFailed, last.Status)

	_, err = s.RunNow(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestMaintenanceJobs_WithoutSweeper(t *testing.T) {
	jobs := MaintenanceJobs("@hourly", &fakePurger{}, nil, time.Hour)
	require.Len(t, jobs, 1)
	assert.Equal(t, JobPurgeResetTokens, jobs[0].Name)
}

func TestStartStop(t *testing.T) {
	s := New(Config{Enabled: true}, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))

	disabled := New(Config{}, zap.NewNop())
	require.NoError(t, disabled.Start(context.Background()))
	require.NoError(t, disabled.Stop(ctx))
}
