package scheduler

import (
	"context"
	"time"
)

// Maintenance job names
const (
	JobPurgeResetTokens = "purge-reset-tokens"
	JobSweepBlacklist   = "sweep-token-blacklist"
)

// ResetTokenPurger deletes expired password reset tokens
type ResetTokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

// BlacklistSweeper drops revocations that can no longer match a token
type BlacklistSweeper interface {
	Sweep(now time.Time, maxTokenAge time.Duration) int
}

// MaintenanceJobs builds the housekeeping jobs. A nil sweeper, as with a
// Redis blacklist whose keys expire on their own, skips the sweep.
func MaintenanceJobs(spec string, purger ResetTokenPurger, sweeper BlacklistSweeper, maxTokenAge time.Duration) []Job {
	jobs := []Job{{
		Name: JobPurgeResetTokens,
		Spec: spec,
		Run:  purger.PurgeExpiredTokens,
	}}
	if sweeper != nil {
		jobs = append(jobs, Job{
			Name: JobSweepBlacklist,
			Spec: spec,
			Run: func(context.Context) (int64, error) {
				return int64(sweeper.Sweep(time.Now(), maxTokenAge)), nil
			},
		})
	}
	return jobs
}
