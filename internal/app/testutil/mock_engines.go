package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
	"github.com/rroosshhaann/whisper-diarization/internal/app/pipeline"
)

// MockEngines holds one mock per pipeline collaborator
type MockEngines struct {
	Transcriber *MockTranscriber
	Aligner     *MockAligner
	Diarizer    *MockDiarizer
	Punctuator  *MockPunctuator
	Separator   *MockSeparator
}

// NewMockEngines creates mocks bound to t
func NewMockEngines(t *testing.T) *MockEngines {
	return &MockEngines{
		Transcriber: NewMockTranscriber(t),
		Aligner:     NewMockAligner(t),
		Diarizer:    NewMockDiarizer(t),
		Punctuator:  NewMockPunctuator(t),
		Separator:   NewMockSeparator(t),
	}
}

// Engines returns the mocks as pipeline collaborators
func (m *MockEngines) Engines() pipeline.Engines {
	return pipeline.Engines{
		Transcriber: m.Transcriber,
		Aligner:     m.Aligner,
		Diarizer:    m.Diarizer,
		Punctuator:  m.Punctuator,
		Separator:   m.Separator,
	}
}

// AssertExpectations asserts every mock
func (m *MockEngines) AssertExpectations(t *testing.T) {
	m.Transcriber.AssertExpectations(t)
	m.Aligner.AssertExpectations(t)
	m.Diarizer.AssertExpectations(t)
	m.Punctuator.AssertExpectations(t)
	m.Separator.AssertExpectations(t)
}

// MockTranscriber is a mock implementation of pipeline.Transcriber
type MockTranscriber struct {
	mock.Mock
}

func NewMockTranscriber(t *testing.T) *MockTranscriber {
	m := &MockTranscriber{}
	m.Test(t)
	return m
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string, opts pipeline.TranscribeOptions) (*pipeline.Transcription, error) {
	args := m.Called(ctx, audioPath, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Transcription), args.Error(1)
}

// MockAligner is a mock implementation of pipeline.Aligner
type MockAligner struct {
	mock.Mock
}

func NewMockAligner(t *testing.T) *MockAligner {
	m := &MockAligner{}
	m.Test(t)
	return m
}

func (m *MockAligner) Align(ctx context.Context, audioPath, transcript, language string, batchSize int) ([]model.TimedWord, error) {
	args := m.Called(ctx, audioPath, transcript, language, batchSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TimedWord), args.Error(1)
}

// MockDiarizer is a mock implementation of pipeline.Diarizer
type MockDiarizer struct {
	mock.Mock
}

func NewMockDiarizer(t *testing.T) *MockDiarizer {
	m := &MockDiarizer{}
	m.Test(t)
	return m
}

func (m *MockDiarizer) Diarize(ctx context.Context, audioPath string) ([]model.SpeakerSegment, error) {
	args := m.Called(ctx, audioPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SpeakerSegment), args.Error(1)
}

// MockPunctuator is a mock implementation of pipeline.Punctuator
type MockPunctuator struct {
	mock.Mock
}

func NewMockPunctuator(t *testing.T) *MockPunctuator {
	m := &MockPunctuator{}
	m.Test(t)
	return m
}

func (m *MockPunctuator) Punctuate(ctx context.Context, words []string) ([]string, error) {
	args := m.Called(ctx, words)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockSeparator is a mock implementation of pipeline.VocalSeparator
type MockSeparator struct {
	mock.Mock
}

func NewMockSeparator(t *testing.T) *MockSeparator {
	m := &MockSeparator{}
	m.Test(t)
	return m
}

// Separate returns the stubbed path, or calls a stubbed func(audioPath, workDir) string
// since the work directory name is only known at call time
func (m *MockSeparator) Separate(ctx context.Context, audioPath, workDir string) (string, error) {
	args := m.Called(ctx, audioPath, workDir)
	if fn, ok := args.Get(0).(func(string, string) string); ok {
		return fn(audioPath, workDir), args.Error(1)
	}
	return args.String(0), args.Error(1)
}
