package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// TwoSpeakerWords is a short aligned exchange between two speakers
var TwoSpeakerWords = []model.TimedWord{
	{Text: "Hello", StartMs: 0, EndMs: 400},
	{Text: "there", StartMs: 450, EndMs: 800},
	{Text: "how", StartMs: 900, EndMs: 1100},
	{Text: "are", StartMs: 1150, EndMs: 1300},
	{Text: "you", StartMs: 1350, EndMs: 1600},
	{Text: "fine", StartMs: 2000, EndMs: 2300},
	{Text: "thanks", StartMs: 2350, EndMs: 2700},
}

// TwoSpeakerSegments diarizes TwoSpeakerWords
var TwoSpeakerSegments = []model.SpeakerSegment{
	{Speaker: "Speaker 0", StartMs: 0, EndMs: 1700},
	{Speaker: "Speaker 1", StartMs: 1900, EndMs: 2800},
}

// TwoSpeakerLabels punctuates TwoSpeakerWords
var TwoSpeakerLabels = []string{"0", "0", "0", "0", "?", "0", "."}

// WriteAudio creates a small placeholder audio file and returns its path
func WriteAudio(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("RIFF....WAVEfmt "), 0o644))
	return path
}
