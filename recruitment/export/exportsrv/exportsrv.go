package exportsrv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/0Omaaar/iRecruitApp/pkg/fsx"
	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
	"github.com/0Omaaar/iRecruitApp/pkg/logx"
	"github.com/0Omaaar/iRecruitApp/recruitment/export"
	"github.com/google/uuid"
)

type Service struct {
	jobs     export.JobStore
	queue    export.JobQueue
	tranches export.TrancheReader
	profiles export.ProfileSource
	fs       fsx.FileSystem
	now      func() time.Time
}

func NewExportService(
	jobs export.JobStore,
	queue export.JobQueue,
	tranches export.TrancheReader,
	profiles export.ProfileSource,
	fs fsx.FileSystem,
) *Service {
	return &Service{
		jobs:     jobs,
		queue:    queue,
		tranches: tranches,
		profiles: profiles,
		fs:       fs,
		now:      time.Now,
	}
}

// WithClock overrides the time source, for tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RequestExport queues an export of a tranche's candidates
func (s *Service) RequestExport(ctx context.Context, trancheID kernel.TrancheID, requestedBy kernel.UserID) (*export.Job, error) {
	t, err := s.tranches.GetTranche(ctx, trancheID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load tranche", errx.TypeInternal)
	}

	job := &export.Job{
		ID:          kernel.NewExportJobID(uuid.NewString()),
		TrancheID:   t.ID,
		RequestedBy: requestedBy,
		Status:      export.JobStatusPending,
		MaxAttempts: export.DefaultMaxAttempts,
		CreatedAt:   s.now(),
	}

	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, export.ErrJobCreationFailed().
			WithDetail("tranche_id", t.ID.String()).
			WithCause(err)
	}

	if err := s.queue.Enqueue(ctx, job.ID); err != nil {
		job.MarkFailed("failed to enqueue", s.now())
		_ = s.jobs.Save(ctx, job)

		return nil, export.ErrQueueEnqueueFailed().
			WithDetail("job_id", job.ID.String()).
			WithCause(err)
	}

	logx.Info("export queued", "job_id", job.ID, "tranche_id", job.TrancheID, "requested_by", requestedBy)
	return job, nil
}

func (s *Service) GetJob(ctx context.Context, id kernel.ExportJobID) (*export.Job, error) {
	if id.IsEmpty() {
		return nil, export.ErrJobNotFound()
	}
	return s.jobs.GetByID(ctx, id)
}

// OpenDownload returns the job and a reader over its workbook.
// The caller closes the reader.
func (s *Service) OpenDownload(ctx context.Context, id kernel.ExportJobID) (*export.Job, io.ReadCloser, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !job.IsDownloadable() {
		return nil, nil, export.ErrJobNotReady().
			WithDetail("job_id", id.String()).
			WithDetail("status", string(job.Status))
	}

	rc, err := s.fs.ReadFileStream(ctx, job.FilePath)
	if err != nil {
		return nil, nil, errx.Wrap(err, "failed to open export file", errx.TypeInternal).
			WithDetail("job_id", id.String())
	}
	return job, rc, nil
}

// ProcessJob runs one attempt of a queued export
func (s *Service) ProcessJob(ctx context.Context, id kernel.ExportJobID) error {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, export.ErrJobNotFound()) {
			logx.Warn("export job expired before processing", "job_id", id)
			return nil
		}
		return errx.Wrap(err, "failed to load export job", errx.TypeInternal)
	}

	switch job.Status {
	case export.JobStatusCompleted, export.JobStatusFailed:
		logx.Debug("export job already finished", "job_id", id, "status", job.Status)
		return nil
	}

	job.MarkProcessing(s.now())
	if err := s.jobs.Save(ctx, job); err != nil {
		logx.Error("failed to mark export job as processing", "job_id", id, "error", err)
	}

	profiles, err := s.profiles.FindByTranche(ctx, job.TrancheID)
	if err != nil {
		return s.handleJobError(ctx, job, "profiles_failed", err)
	}

	data, err := BuildWorkbook(profiles)
	if err != nil {
		return s.handleJobError(ctx, job, "workbook_failed", err)
	}

	path := export.StoragePath(job.TrancheID, job.ID)
	if err := s.fs.WriteFile(ctx, path, data); err != nil {
		return s.handleJobError(ctx, job, "storage_failed", err)
	}

	job.MarkCompleted(path, len(profiles), s.now())
	if err := s.jobs.Save(ctx, job); err != nil {
		return errx.Wrap(err, "failed to mark export job as completed", errx.TypeInternal)
	}

	logx.Info("export completed", "job_id", job.ID, "tranche_id", job.TrancheID, "rows", len(profiles))
	return nil
}

// RetryDelay is the backoff before attempt n+1: 2^n minutes
func RetryDelay(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Minute
}

func (s *Service) handleJobError(ctx context.Context, job *export.Job, errorType string, cause error) error {
	job.AttemptCount++
	reason := fmt.Sprintf("%s: %v", errorType, cause)

	if job.CanRetry() {
		delay := RetryDelay(job.AttemptCount)
		next := s.now().Add(delay)

		if err := s.queue.EnqueueDelayed(ctx, job.ID, delay); err != nil {
			logx.Error("failed to schedule export retry", "job_id", job.ID, "error", err)
			job.MarkFailed(errorType+" (retry enqueue failed)", s.now())
			_ = s.jobs.Save(ctx, job)

			return export.ErrMaxRetriesReached().
				WithDetail("job_id", job.ID.String()).
				WithDetail("error_type", errorType).
				WithCause(cause)
		}

		job.MarkRetry(reason, next)
		if err := s.jobs.Save(ctx, job); err != nil {
			logx.Error("failed to update export job for retry", "job_id", job.ID, "error", err)
		}

		logx.Warn("export failed, will retry",
			"job_id", job.ID, "attempt", job.AttemptCount, "max_attempts", job.MaxAttempts,
			"next_retry_at", next, "error_type", errorType)

		return export.ErrJobFailed().
			WithDetail("job_id", job.ID.String()).
			WithDetail("error_type", errorType).
			WithDetail("will_retry", true).
			WithCause(cause)
	}

	logx.Error("export permanently failed",
		"job_id", job.ID, "attempts", job.AttemptCount, "error_type", errorType, "error", cause)

	job.MarkFailed(reason, s.now())
	_ = s.jobs.Save(ctx, job)

	return export.ErrMaxRetriesReached().
		WithDetail("job_id", job.ID.String()).
		WithDetail("error_type", errorType).
		WithDetail("final_attempt", job.AttemptCount).
		WithCause(cause)
}
