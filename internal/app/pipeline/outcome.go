package pipeline

import (
	"fmt"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// PipelineError is a stage-aware failure
type PipelineError struct {
	Stage model.Stage
	Err   error
}

// Error formats pipeline failures for logs and job status
func (e *PipelineError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stage == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Outcome is the explicit result of one pipeline run: exactly one of Transcript or Err is set
type Outcome struct {
	Transcript *model.Transcript
	Err        *PipelineError
}

// Succeeded wraps a finished transcript
func Succeeded(transcript *model.Transcript) Outcome {
	return Outcome{Transcript: transcript}
}

// Failed wraps the error of the stage that aborted the run
func Failed(stage model.Stage, err error) Outcome {
	return Outcome{Err: &PipelineError{Stage: stage, Err: err}}
}

// OK reports whether the run produced a transcript
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Message is the failure text stored on the job, verbatim from the failing stage
func (o Outcome) Message() string {
	if o.Err == nil || o.Err.Err == nil {
		return ""
	}
	return o.Err.Err.Error()
}
