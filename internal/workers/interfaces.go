// Package workers runs the server's background jobs.
//
// A [Worker] blocks until its context is cancelled. [Workers] starts a set of
// them side by side and waits for all of them to return.
package workers

import (
	"context"
	"time"
)

// Worker is a long-running background job. Run must return once ctx is done.
type Worker interface {
	Run(ctx context.Context)
}

// SessionExpirer persists the offline status of timed-out sessions.
type SessionExpirer interface {
	ExpireSessions(ctx context.Context, seenBefore time.Time) (int64, error)
}
