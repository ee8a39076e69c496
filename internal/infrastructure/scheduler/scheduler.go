// Package scheduler runs periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobStatus represents the outcome of the last run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobFunc does one unit of work and reports how many records it touched
type JobFunc func(ctx context.Context) (int64, error)

// Job is a named function run on a cron spec
type Job struct {
	Name string
	Spec string
	Run  JobFunc
}

// JobRun describes the latest run of a job
type JobRun struct {
	Name        string
	Status      JobStatus
	Affected    int64
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// Config holds scheduler configuration
type Config struct {
	Enabled    bool
	JobTimeout time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		JobTimeout: 5 * time.Minute,
	}
}

// Scheduler runs registered jobs. A job still running when its next
// tick fires is skipped.
type Scheduler struct {
	config Config
	cron   *cron.Cron
	logger *zap.Logger

	mu        sync.Mutex
	jobs      map[string]Job
	runs      map[string]*JobRun
	ctx       context.Context
	cancel    context.CancelFunc
	isRunning bool
}

// New creates a scheduler
func New(config Config, logger *zap.Logger) *Scheduler {
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultConfig().JobTimeout
	}
	cl := cronLogger{logger: logger}
	return &Scheduler{
		config: config,
		cron:   cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger: logger,
		jobs:   make(map[string]Job),
		runs:   make(map[string]*JobRun),
		ctx:    context.Background(),
	}
}

// Register adds a job. Names are unique and specs use the standard
// five-field syntax or descriptors such as "@every 1h".
func (s *Scheduler) Register(job Job) error {
	if job.Name == "" || job.Run == nil {
		return ErrInvalidJob
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name)
	}
	if _, err := s.cron.AddFunc(job.Spec, func() { s.execute(job) }); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", job.Spec, job.Name, err)
	}
	s.jobs[job.Name] = job
	s.runs[job.Name] = &JobRun{Name: job.Name, Status: JobStatusPending}
	return nil
}

// Start begins firing jobs. It is a no-op when disabled or already running.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.config.Enabled || s.isRunning {
		return nil
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.isRunning = true
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)))
	return nil
}

// Stop stops firing jobs and waits for running ones until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		cancel()
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		cancel()
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

// RunNow executes a registered job synchronously, outside its schedule
func (s *Scheduler) RunNow(ctx context.Context, name string) (*JobRun, error) {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.run(ctx, job), nil
}

// LastRun returns a copy of the latest run of a job
func (s *Scheduler) LastRun(name string) (JobRun, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[name]
	if !ok {
		return JobRun{}, false
	}
	return *r, true
}

func (s *Scheduler) execute(job Job) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	s.run(ctx, job)
}

func (s *Scheduler) run(ctx context.Context, job Job) *JobRun {
	started := time.Now()
	run := &JobRun{Name: job.Name, Status: JobStatusRunning, StartedAt: &started}
	s.record(run)

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	affected, err := job.Run(jobCtx)
	completed := time.Now()
	run = &JobRun{Name: job.Name, Affected: affected, StartedAt: &started, CompletedAt: &completed}
	if err != nil {
		run.Status = JobStatusFailed
		run.Error = err.Error()
		s.logger.Error("Job failed", zap.String("job", job.Name), zap.Error(err))
	} else {
		run.Status = JobStatusSuccess
		s.logger.Info("Job completed",
			zap.String("job", job.Name),
			zap.Int64("affected", affected),
			zap.Duration("duration", completed.Sub(started)),
		)
	}
	s.record(run)
	return run
}

func (s *Scheduler) record(run *JobRun) {
	s.mu.Lock()
	s.runs[run.Name] = run
	s.mu.Unlock()
}

// cronLogger routes cron's internal logging through zap
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
