package services

import (
	"context"
	"io"

	"github.com/rroosshhaann/whisper-diarization/internal/api/v1/dto"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// Upload is an uploaded audio file
type Upload struct {
	Filename string
	Content  io.Reader
}

// JobService defines the interface for diarization job operations
type JobService interface {
	SubmitJob(ctx context.Context, upload Upload, req *dto.SubmitJobRequest) (*dto.SubmitJobResponse, error)
	GetJobStatus(ctx context.Context, jobID string) (*dto.JobStatusResponse, error)
	// GetJobResult returns apperrors.ErrStillQueued or ErrStillProcessing while the job is pending
	GetJobResult(ctx context.Context, jobID string) (*model.Transcript, error)
	DeleteJob(ctx context.Context, jobID string) error
	Health(ctx context.Context) *dto.HealthResponse
}
