package scheduler

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"yieldvault/internal/clock"
)

// LogPurger deletes transaction log rows created before a cutoff.
type LogPurger interface {
	PurgeOlderThan(cutoff time.Time) (int64, error)
}

// LogRetentionJob removes transaction logs older than the retention window.
type LogRetentionJob struct {
	purger        LogPurger
	retentionDays int
	clock         clock.Clock
	log           *zap.SugaredLogger
}

// NewLogRetentionJob creates the retention job.
func NewLogRetentionJob(purger LogPurger, retentionDays int, clk clock.Clock, log *zap.SugaredLogger) *LogRetentionJob {
	return &LogRetentionJob{
		purger:        purger,
		retentionDays: retentionDays,
		clock:         clk,
		log:           log.With("job", "log_retention"),
	}
}

// Name returns the job name
func (j *LogRetentionJob) Name() string {
	return "log_retention"
}

// Cutoff is the creation time before which logs are removed.
func (j *LogRetentionJob) Cutoff() time.Time {
	return j.clock.Now().UTC().AddDate(0, 0, -j.retentionDays)
}

// Run purges expired logs.
func (j *LogRetentionJob) Run() error {
	cutoff := j.Cutoff()
	deleted, err := j.purger.PurgeOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("purge transaction logs before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	j.log.Infow("Transaction logs purged", "deleted", deleted, "cutoff", cutoff)
	return nil
}
