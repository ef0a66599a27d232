package worker

import (
	"context"
	"sync"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/pkg/logx"
	"github.com/0Omaaar/iRecruitApp/recruitment/export"
)

const (
	DefaultDequeueTimeout = 5 * time.Second
	DefaultMoveInterval   = 30 * time.Second
)

// Processor runs one attempt of an export job
type Processor interface {
	ProcessJob(ctx context.Context, id kernel.ExportJobID) error
}

type ExportWorker struct {
	processor      Processor
	queue          export.JobQueue
	workers        int
	dequeueTimeout time.Duration
	moveInterval   time.Duration
	wg             sync.WaitGroup
}

func NewExportWorker(processor Processor, queue export.JobQueue, workers int) *ExportWorker {
	if workers < 1 {
		workers = 1
	}
	return &ExportWorker{
		processor:      processor,
		queue:          queue,
		workers:        workers,
		dequeueTimeout: DefaultDequeueTimeout,
		moveInterval:   DefaultMoveInterval,
	}
}

// WithIntervals overrides the dequeue timeout and the delayed mover period
func (w *ExportWorker) WithIntervals(dequeueTimeout, moveInterval time.Duration) *ExportWorker {
	w.dequeueTimeout = dequeueTimeout
	w.moveInterval = moveInterval
	return w
}

// Start launches the pool; it stops when ctx is cancelled
func (w *ExportWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d export workers", w.workers)

	w.wg.Add(w.workers + 1)
	go w.moveDelayedJobs(ctx)
	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

// Wait blocks until every goroutine started by Start has returned
func (w *ExportWorker) Wait() {
	w.wg.Wait()
}

func (w *ExportWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	logx.Debug("export worker started", "worker", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Debug("export worker stopping", "worker", workerID)
			return
		default:
		}

		id, err := w.queue.Dequeue(ctx, w.dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logx.Error("export dequeue failed", "worker", workerID, "error", err)
			sleep(ctx, time.Second)
			continue
		}
		if id.IsEmpty() {
			continue
		}

		logx.Info("processing export job", "worker", workerID, "job_id", id)
		if err := w.processor.ProcessJob(ctx, id); err != nil {
			logx.Warn("export job attempt failed", "worker", workerID, "job_id", id, "error", err)
		}
	}
}

func (w *ExportWorker) moveDelayedJobs(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.moveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed export jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed export jobs to ready queue", count)
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
