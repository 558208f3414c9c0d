package model

import (
	"time"
)

// JobStatus represents the lifecycle state of a diarization job
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether no further transition is possible
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo enforces Queued -> Processing -> {Completed, Failed}
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusQueued:
		return next == JobStatusProcessing
	case JobStatusProcessing:
		return next == JobStatusCompleted || next == JobStatusFailed
	default:
		return false
	}
}

// Stage is the name of one step of the inference pipeline
type Stage string

const (
	StageSeparatingVocals Stage = "separating_vocals"
	StageTranscribing     Stage = "transcribing"
	StageAligning         Stage = "aligning"
	StageDiarizing        Stage = "diarizing"
	StagePostProcessing   Stage = "post_processing"
	StageGeneratingOutput Stage = "generating_output"
)

// Stages lists every stage in execution order
var Stages = []Stage{
	StageSeparatingVocals,
	StageTranscribing,
	StageAligning,
	StageDiarizing,
	StagePostProcessing,
	StageGeneratingOutput,
}

// JobOptions are the per-job inference settings supplied at submission
type JobOptions struct {
	ModelName        string `json:"model_name"`
	Language         string `json:"language,omitempty"`
	Stemming         bool   `json:"stemming"`
	SuppressNumerals bool   `json:"suppress_numerals"`
	BatchSize        int    `json:"batch_size"`
}

// DefaultJobOptions mirrors the submission defaults
func DefaultJobOptions() JobOptions {
	return JobOptions{
		ModelName:        "medium.en",
		Stemming:         true,
		SuppressNumerals: false,
		BatchSize:        8,
	}
}

// Job represents one submitted audio-processing request
type Job struct {
	ID         string      `json:"id"`
	Status     JobStatus   `json:"status"`
	AudioPath  string      `json:"audio_path"`
	Options    JobOptions  `json:"options"`
	CreatedAt  time.Time   `json:"created_at"`
	StartedAt  *time.Time  `json:"started_at,omitempty"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
	Progress   Stage       `json:"progress,omitempty"`
	Result     *Transcript `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// NewJob creates a queued job owning the given audio file
func NewJob(id, audioPath string, options JobOptions, now time.Time) *Job {
	return &Job{
		ID:        id,
		Status:    JobStatusQueued,
		AudioPath: audioPath,
		Options:   options,
		CreatedAt: now,
	}
}

// Clone returns a copy safe to hand out of the registry lock.
// Result is shared: it is written once on completion and never mutated afterwards.
func (j *Job) Clone() *Job {
	c := *j
	if j.StartedAt != nil {
		t := *j.StartedAt
		c.StartedAt = &t
	}
	if j.FinishedAt != nil {
		t := *j.FinishedAt
		c.FinishedAt = &t
	}
	return &c
}
