package export

import (
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// DefaultMaxAttempts bounds the retries of a failing export
const DefaultMaxAttempts = 3

// Job is a queued spreadsheet export of one tranche's candidates
type Job struct {
	ID          kernel.ExportJobID `json:"id"`
	TrancheID   kernel.TrancheID   `json:"trancheId"`
	RequestedBy kernel.UserID      `json:"requestedBy"`
	Status      JobStatus          `json:"status"`

	AttemptCount int `json:"attemptCount"`
	MaxAttempts  int `json:"maxAttempts"`

	FilePath     string `json:"filePath,omitempty"`
	RowCount     int    `json:"rowCount"`
	ErrorMessage string `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	FailedAt    *time.Time `json:"failedAt,omitempty"`
	NextRetryAt *time.Time `json:"nextRetryAt,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (j *Job) MarkProcessing(now time.Time) {
	j.Status = JobStatusProcessing
	j.StartedAt = &now
	j.NextRetryAt = nil
}

func (j *Job) MarkCompleted(filePath string, rows int, now time.Time) {
	j.Status = JobStatusCompleted
	j.FilePath = filePath
	j.RowCount = rows
	j.ErrorMessage = ""
	j.CompletedAt = &now
}

// MarkRetry records a failed attempt that will be retried at next
func (j *Job) MarkRetry(reason string, next time.Time) {
	j.Status = JobStatusPending
	j.ErrorMessage = reason + " (will retry)"
	j.NextRetryAt = &next
}

func (j *Job) MarkFailed(reason string, now time.Time) {
	j.Status = JobStatusFailed
	j.ErrorMessage = reason
	j.FailedAt = &now
	j.NextRetryAt = nil
}

// CanRetry reports whether another attempt is allowed after the current one
func (j *Job) CanRetry() bool {
	return j.AttemptCount < j.MaxAttempts
}

func (j *Job) IsDownloadable() bool {
	return j.Status == JobStatusCompleted && j.FilePath != ""
}

// FileName is the name offered to browsers on download
func (j *Job) FileName() string {
	return "candidates-" + j.TrancheID.String() + ".xlsx"
}

// StoragePath is where the workbook of a job is written
func StoragePath(trancheID kernel.TrancheID, jobID kernel.ExportJobID) string {
	return "exports/" + trancheID.String() + "/" + jobID.String() + ".xlsx"
}
