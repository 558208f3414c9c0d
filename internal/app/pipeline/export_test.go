package pipeline

import (
	"github.com/rroosshhaann/whisper-diarization/internal/app/assembler"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// SetResolver swaps the assembler step so tests can observe when it runs
func SetResolver(o *Orchestrator, resolve func(assembler.Input) ([]model.SpeakerWord, []model.Sentence)) {
	o.resolve = resolve
}
