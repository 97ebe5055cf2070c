package jobs

import (
	"context"

	"github.com/vytor/roster/internal/models"
)

// JobQueue runs background jobs on behalf of request handlers.
type JobQueue interface {
	// RunSync queues the synchronization of one athlete and waits for it.
	// It returns early with ctx's error when the caller goes away.
	RunSync(ctx context.Context, athleteID string, requestedBy models.User) error
}
