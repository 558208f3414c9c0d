package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

func TestDisabledStageBarIgnoresReports(t *testing.T) {
	bar := NewStageBar(Config{Enabled: false}, "job")
	bar.Report(model.StageAligning)
	bar.Finish()
	bar.Abort()
	assert.Empty(t, bar.current())
}

func TestStageBarTracksStage(t *testing.T) {
	var out bytes.Buffer
	bar := NewStageBar(Config{Enabled: true, Writer: &out}, "meeting.wav")

	for _, stage := range model.Stages {
		bar.Report(stage)
		assert.Equal(t, stage, bar.current())
	}
	bar.Finish()
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.True(t, ShouldShowProgress(true))
}
