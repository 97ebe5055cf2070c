package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/roster/internal/jobs"
	"github.com/vytor/roster/internal/models"
	"github.com/vytor/roster/internal/worker"
)

func TestWorkerQueue_RunSyncWaitsForJob(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()
	q := jobs.NewWorkerQueue(pool, 30*time.Millisecond)

	start := time.Now()
	err := q.RunSync(context.Background(), "a1", models.User{ID: "u1"})

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWorkerQueue_CallerCancellation(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()
	q := jobs.NewWorkerQueue(pool, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := q.RunSync(ctx, "a1", models.User{ID: "u1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWorkerQueue_StoppedPool(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Stop()

	err := jobs.NewWorkerQueue(pool, time.Millisecond).RunSync(context.Background(), "a1", models.User{ID: "u1"})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}
