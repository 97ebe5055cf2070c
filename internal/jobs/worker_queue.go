package jobs

import (
	"context"
	"time"

	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/models"
	"github.com/vytor/roster/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool.
type WorkerQueue struct {
	syncPool     *worker.Pool
	syncDuration time.Duration
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(syncPool *worker.Pool, syncDuration time.Duration) JobQueue {
	return &WorkerQueue{syncPool: syncPool, syncDuration: syncDuration}
}

func (q *WorkerQueue) RunSync(ctx context.Context, athleteID string, requestedBy models.User) error {
	log := logger.FromContext(ctx).WithField("athlete_id", athleteID)

	done := make(chan error, 1)
	job := &worker.SyncAthleteJob{
		AthleteID:   athleteID,
		RequestedBy: requestedBy.ID,
		Duration:    q.syncDuration,
		Cancel:      ctx.Done(),
		Done:        done,
	}
	if err := q.syncPool.Submit(job); err != nil {
		log.Warn("failed to queue sync job: %v", err)
		return err
	}
	log.Debug("sync job queued, %d pending", q.syncPool.QueueSize())

	select {
	case err := <-done:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
