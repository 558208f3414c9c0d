package services

import (
	"context"
	"io"

	apierrors "github.com/rroosshhaann/whisper-diarization/internal/api/errors"
	"github.com/rroosshhaann/whisper-diarization/internal/api/v1/dto"
	apperrors "github.com/rroosshhaann/whisper-diarization/internal/app/errors"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
	"github.com/rroosshhaann/whisper-diarization/internal/app/scheduler"
)

// JobScheduler is the part of the scheduler the HTTP surface needs
type JobScheduler interface {
	Submit(filename string, audio io.Reader, opts model.JobOptions) (*scheduler.Snapshot, error)
	Status(id string) (*scheduler.Snapshot, error)
	Result(id string) (*model.Job, error)
	Delete(id string) error
	Health() scheduler.Health
}

// JobServiceImpl implements JobService on top of the scheduler
type JobServiceImpl struct {
	scheduler JobScheduler
	defaults  model.JobOptions
}

// NewJobService creates a job service; defaults fill fields absent from a submission
func NewJobService(scheduler JobScheduler, defaults model.JobOptions) *JobServiceImpl {
	return &JobServiceImpl{
		scheduler: scheduler,
		defaults:  defaults,
	}
}

// SubmitJob stores the upload and queues it
func (s *JobServiceImpl) SubmitJob(ctx context.Context, upload Upload, req *dto.SubmitJobRequest) (*dto.SubmitJobResponse, error) {
	snapshot, err := s.scheduler.Submit(upload.Filename, upload.Content, req.Options(s.defaults))
	if err != nil {
		return nil, err
	}
	return &dto.SubmitJobResponse{
		JobID:    snapshot.JobID,
		Status:   snapshot.Status,
		Position: snapshot.Position,
	}, nil
}

// GetJobStatus reports position while queued, stage while processing and error once failed
func (s *JobServiceImpl) GetJobStatus(ctx context.Context, jobID string) (*dto.JobStatusResponse, error) {
	snapshot, err := s.scheduler.Status(jobID)
	if err != nil {
		return nil, err
	}

	resp := &dto.JobStatusResponse{
		JobID:    snapshot.JobID,
		Status:   snapshot.Status,
		Progress: string(snapshot.Progress),
		Error:    snapshot.Error,
	}
	if snapshot.Status == model.JobStatusQueued {
		position := snapshot.Position
		resp.Position = &position
	}
	return resp, nil
}

// GetJobResult returns the transcript of a completed job
func (s *JobServiceImpl) GetJobResult(ctx context.Context, jobID string) (*model.Transcript, error) {
	job, err := s.scheduler.Result(jobID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrJobFailed) {
			return nil, apierrors.NewJobFailedError(jobID, job.Error)
		}
		return nil, err
	}
	return job.Result, nil
}

// DeleteJob removes a job that is not processing
func (s *JobServiceImpl) DeleteJob(ctx context.Context, jobID string) error {
	return s.scheduler.Delete(jobID)
}

// Health reports queue depth
func (s *JobServiceImpl) Health(ctx context.Context) *dto.HealthResponse {
	h := s.scheduler.Health()
	return &dto.HealthResponse{
		Status:         "healthy",
		QueuedJobs:     h.Queued,
		ProcessingJobs: h.Processing,
	}
}
