package export

import (
	"context"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/recruitment/application"
	"github.com/0Omaaar/iRecruitApp/recruitment/tranche"
)

// JobStore keeps job state; entries expire after a retention period
type JobStore interface {
	Save(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id kernel.ExportJobID) (*Job, error)
}

// JobQueue hands job ids to the worker pool
type JobQueue interface {
	// Enqueue adds a job to the ready list
	Enqueue(ctx context.Context, id kernel.ExportJobID) error

	// Dequeue blocks up to timeout; an empty id means nothing was ready
	Dequeue(ctx context.Context, timeout time.Duration) (kernel.ExportJobID, error)

	// EnqueueDelayed schedules a retry
	EnqueueDelayed(ctx context.Context, id kernel.ExportJobID, delay time.Duration) error

	// MoveDelayedToReady moves due retries to the ready list
	MoveDelayedToReady(ctx context.Context) (int, error)

	GetQueueSize(ctx context.Context) (int64, error)
	GetDelayedQueueSize(ctx context.Context) (int64, error)
}

// ProfileSource yields the candidate profiles of a tranche
type ProfileSource interface {
	FindByTranche(ctx context.Context, trancheID kernel.TrancheID) ([]application.CandidateProfile, error)
}

type TrancheReader interface {
	GetTranche(ctx context.Context, id kernel.TrancheID) (*tranche.Tranche, error)
}
