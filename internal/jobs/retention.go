package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const retentionRunTimeout = 30 * time.Second

// IssuePruner deletes issue records created before cutoff.
type IssuePruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionJob periodically drops issue records older than the retention window.
type RetentionJob struct {
	repo      IssuePruner
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	done      chan struct{}
	stopped   chan struct{}
}

func NewRetentionJob(repo IssuePruner, retention, interval time.Duration) *RetentionJob {
	return &RetentionJob{
		repo:      repo,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

func (j *RetentionJob) Start() {
	go j.run()
	log.Info().
		Dur("interval", j.interval).
		Dur("retention", j.retention).
		Msg("issue retention job started")
}

// Stop signals the loop and waits for an in-flight prune to finish.
func (j *RetentionJob) Stop() {
	close(j.done)
	<-j.stopped
	log.Info().Msg("issue retention job stopped")
}

func (j *RetentionJob) run() {
	defer close(j.stopped)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.prune()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.prune()
		}
	}
}

func (j *RetentionJob) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), retentionRunTimeout)
	defer cancel()

	cutoff := j.now().Add(-j.retention)
	count, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Time("cutoff", cutoff).Msg("failed to prune issue records")
		return
	}
	if count > 0 {
		log.Info().Int64("count", count).Time("cutoff", cutoff).Msg("pruned issue records")
	}
}
