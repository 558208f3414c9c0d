package pipeline

import (
	"context"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// TranscribeOptions controls one transcription pass
type TranscribeOptions struct {
	Model            string
	Language         string // empty means auto-detect
	BatchSize        int    // >0 selects batched inference
	VADFilter        bool   // set for single-pass inference
	SuppressNumerals bool
}

// Transcription is the raw model transcript
type Transcription struct {
	Text     string
	Language string
}

// Transcriber turns audio into text and a detected language
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts TranscribeOptions) (*Transcription, error)
}

// Aligner maps transcript text onto per-word audio timestamps
type Aligner interface {
	Align(ctx context.Context, audioPath, transcript, language string, batchSize int) ([]model.TimedWord, error)
}

// Diarizer produces speaker-labelled time segments
type Diarizer interface {
	Diarize(ctx context.Context, audioPath string) ([]model.SpeakerSegment, error)
}

// Punctuator predicts one trailing punctuation label per word ("0" or "" for none)
type Punctuator interface {
	Punctuate(ctx context.Context, words []string) ([]string, error)
}

// VocalSeparator isolates the vocal stem into workDir and returns its path
type VocalSeparator interface {
	Separate(ctx context.Context, audioPath, workDir string) (string, error)
}

// Engines bundles the external collaborators used by one orchestrator
type Engines struct {
	Transcriber Transcriber
	Aligner     Aligner
	Diarizer    Diarizer
	Punctuator  Punctuator
	Separator   VocalSeparator
}

// ProgressSink receives the name of each stage just before it starts
type ProgressSink interface {
	Report(stage model.Stage)
}

// ProgressFunc adapts a function to ProgressSink
type ProgressFunc func(stage model.Stage)

// Report calls f(stage)
func (f ProgressFunc) Report(stage model.Stage) {
	f(stage)
}

type discardProgress struct{}

func (discardProgress) Report(model.Stage) {}

// DiscardProgress ignores every report
var DiscardProgress ProgressSink = discardProgress{}
