package export

import "fmt"

// JobStatusResponse is a job plus a human readable progress message
type JobStatusResponse struct {
	Job
	Message     string `json:"message"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

func NewJobStatusResponse(j Job) JobStatusResponse {
	resp := JobStatusResponse{Job: j}
	switch j.Status {
	case JobStatusPending:
		if j.AttemptCount > 0 {
			resp.Message = fmt.Sprintf("Export pending retry (attempt %d/%d)", j.AttemptCount, j.MaxAttempts)
		} else {
			resp.Message = "Export queued and waiting to be processed"
		}
	case JobStatusProcessing:
		resp.Message = "Export in progress"
	case JobStatusCompleted:
		resp.Message = fmt.Sprintf("Export completed with %d candidates", j.RowCount)
		resp.DownloadURL = "/api/exports/" + j.ID.String() + "/download"
	case JobStatusFailed:
		resp.Message = "Export failed: " + j.ErrorMessage
	}
	return resp
}
