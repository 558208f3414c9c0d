package dto

import (
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// SubmitJobRequest holds the multipart form fields accompanying an upload.
// Pointer fields distinguish "absent" from zero values so defaults can apply.
type SubmitJobRequest struct {
	WhisperModel     string `form:"whisper_model"`
	Language         string `form:"language"`
	Stemming         *bool  `form:"stemming"`
	SuppressNumerals *bool  `form:"suppress_numerals"`
	BatchSize        *int   `form:"batch_size" binding:"omitempty,gte=0"`
}

// Options merges the request over defaults
func (r *SubmitJobRequest) Options(defaults model.JobOptions) model.JobOptions {
	opts := defaults
	if r.WhisperModel != "" {
		opts.ModelName = r.WhisperModel
	}
	opts.Language = r.Language
	if r.Stemming != nil {
		opts.Stemming = *r.Stemming
	}
	if r.SuppressNumerals != nil {
		opts.SuppressNumerals = *r.SuppressNumerals
	}
	if r.BatchSize != nil {
		opts.BatchSize = *r.BatchSize
	}
	return opts
}

// SubmitJobResponse is returned when a job is accepted
type SubmitJobResponse struct {
	JobID    string          `json:"job_id"`
	Status   model.JobStatus `json:"status"`
	Position int             `json:"position"`
}

// JobStatusResponse reports a job's state
type JobStatusResponse struct {
	JobID    string          `json:"job_id"`
	Status   model.JobStatus `json:"status"`
	Position *int            `json:"position,omitempty"`
	Progress string          `json:"progress,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// PendingResultResponse is returned with 202 while a job is not finished
type PendingResultResponse struct {
	JobID   string          `json:"job_id"`
	Status  model.JobStatus `json:"status"`
	Message string          `json:"message"`
}

// MessageResponse carries a plain message
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service health and queue depth
type HealthResponse struct {
	Status         string `json:"status"`
	QueuedJobs     int    `json:"queued_jobs"`
	ProcessingJobs int    `json:"processing_jobs"`
}
