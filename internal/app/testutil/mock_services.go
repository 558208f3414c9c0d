package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/rroosshhaann/whisper-diarization/internal/api/v1/dto"
	"github.com/rroosshhaann/whisper-diarization/internal/api/v1/services"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// MockJobService is a mock implementation of services.JobService.
// SubmitJob drains the upload so tests can assert on what was received.
type MockJobService struct {
	mock.Mock
}

func NewMockJobService(t *testing.T) *MockJobService {
	m := &MockJobService{}
	m.Test(t)
	return m
}

func (m *MockJobService) SubmitJob(ctx context.Context, upload services.Upload, req *dto.SubmitJobRequest) (*dto.SubmitJobResponse, error) {
	content, _ := io.ReadAll(upload.Content)
	args := m.Called(ctx, upload.Filename, string(content), req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubmitJobResponse), args.Error(1)
}

func (m *MockJobService) GetJobStatus(ctx context.Context, jobID string) (*dto.JobStatusResponse, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobStatusResponse), args.Error(1)
}

func (m *MockJobService) GetJobResult(ctx context.Context, jobID string) (*model.Transcript, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transcript), args.Error(1)
}

func (m *MockJobService) DeleteJob(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *MockJobService) Health(ctx context.Context) *dto.HealthResponse {
	args := m.Called(ctx)
	return args.Get(0).(*dto.HealthResponse)
}
