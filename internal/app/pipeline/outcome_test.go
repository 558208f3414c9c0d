package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

func TestOutcome(t *testing.T) {
	ok := Succeeded(&model.Transcript{})
	assert.True(t, ok.OK())
	assert.Empty(t, ok.Message())

	cause := errors.New("diarizer unavailable")
	failed := Failed(model.StageDiarizing, cause)
	assert.False(t, failed.OK())
	assert.Equal(t, "diarizer unavailable", failed.Message())
	assert.Equal(t, "diarizing: diarizer unavailable", failed.Err.Error())
	assert.ErrorIs(t, failed.Err, cause)

	unstaged := Failed("", cause)
	assert.Equal(t, "diarizer unavailable", unstaged.Err.Error())
}
