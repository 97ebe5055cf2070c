package worker

import (
	"context"
	"time"

	"github.com/vytor/roster/internal/logger"
)

// SyncAthleteJob performs the athlete synchronization work. The work is
// simulated by waiting Duration. Done receives the outcome exactly once.
type SyncAthleteJob struct {
	AthleteID   string
	RequestedBy string
	Duration    time.Duration
	// Cancel aborts the job when closed, typically the caller's ctx.Done().
	Cancel <-chan struct{}
	Done   chan<- error
}

func (j *SyncAthleteJob) Name() string { return "sync_athlete" }

func (j *SyncAthleteJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"athlete_id":   j.AthleteID,
		"requested_by": j.RequestedBy,
	})
	log.Info("synchronizing athlete")

	err := j.work(ctx)
	if err != nil {
		log.Warn("synchronization aborted: %v", err)
	}
	if j.Done != nil {
		j.Done <- err
	}
	return err
}

func (j *SyncAthleteJob) work(ctx context.Context) error {
	timer := time.NewTimer(j.Duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-j.Cancel:
		return context.Canceled
	}
}

// Discard reports err to the waiting caller when the job never ran or
// panicked before finishing.
func (j *SyncAthleteJob) Discard(err error) {
	if j.Done != nil {
		j.Done <- err
	}
}
