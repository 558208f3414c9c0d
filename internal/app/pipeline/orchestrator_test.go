package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rroosshhaann/whisper-diarization/internal/app/assembler"
	apperrors "github.com/rroosshhaann/whisper-diarization/internal/app/errors"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
	"github.com/rroosshhaann/whisper-diarization/internal/app/pipeline"
	"github.com/rroosshhaann/whisper-diarization/internal/app/storage"
	"github.com/rroosshhaann/whisper-diarization/internal/app/testutil"
)

type harness struct {
	engines *testutil.MockEngines
	store   *storage.ScratchStore
	orch    *pipeline.Orchestrator
	audio   string
	stages  []model.Stage
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store, err := storage.NewScratchStore(t.TempDir())
	require.NoError(t, err)

	h := &harness{
		engines: testutil.NewMockEngines(t),
		store:   store,
		audio:   testutil.WriteAudio(t, store.Dir(), "job-1.wav"),
	}
	h.orch = pipeline.NewOrchestrator(h.engines.Engines(), store, zaptest.NewLogger(t))
	return h
}

func (h *harness) run(opts model.JobOptions) pipeline.Outcome {
	sink := pipeline.ProgressFunc(func(stage model.Stage) {
		h.stages = append(h.stages, stage)
	})
	return h.orch.Run(context.Background(), h.audio, opts, sink)
}

func (h *harness) workDirs(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(h.store.Dir(), "*-work-*"))
	require.NoError(t, err)
	return matches
}

// writeVocals stands in for a separator that writes its stem into the work directory
func writeVocals(t *testing.T) func(string, string) string {
	return func(_ string, workDir string) string {
		assert.True(t, strings.HasPrefix(filepath.Base(workDir), "job-1-work-"))
		path := filepath.Join(workDir, "vocals.wav")
		require.NoError(t, os.WriteFile(path, []byte("vocals"), 0o644))
		return path
	}
}

func isVocals(path string) bool {
	return filepath.Base(path) == "vocals.wav"
}

func texts(words []model.TimedWord) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}

func TestRunWithStemming(t *testing.T) {
	h := newHarness(t)
	opts := model.DefaultJobOptions()

	h.engines.Separator.On("Separate", mock.Anything, h.audio, mock.AnythingOfType("string")).
		Return(writeVocals(t), nil).Once()
	h.engines.Transcriber.On("Transcribe", mock.Anything, mock.MatchedBy(isVocals), pipeline.TranscribeOptions{
		Model:     "medium.en",
		Language:  "en",
		BatchSize: 8,
	}).Return(&pipeline.Transcription{Text: "hello there how are you fine thanks", Language: "EN"}, nil).Once()
	h.engines.Aligner.On("Align", mock.Anything, mock.MatchedBy(isVocals), "hello there how are you fine thanks", "eng", 8).
		Return(testutil.TwoSpeakerWords, nil).Once()
	h.engines.Diarizer.On("Diarize", mock.Anything, mock.MatchedBy(isVocals)).
		Return(testutil.TwoSpeakerSegments, nil).Once()
	h.engines.Punctuator.On("Punctuate", mock.Anything, texts(testutil.TwoSpeakerWords)).
		Return(testutil.TwoSpeakerLabels, nil).Once()

	outcome := h.run(opts)

	require.True(t, outcome.OK(), outcome.Message())
	assert.Equal(t, model.Stages, h.stages)
	assert.Equal(t, "medium.en", outcome.Transcript.Metadata.ModelInfo.Name)
	require.Len(t, outcome.Transcript.Results.Utterances, 2)
	assert.Equal(t, "Hello there how are you?", outcome.Transcript.Results.Utterances[0].Transcript)
	assert.Equal(t, 1, outcome.Transcript.Results.Utterances[1].Speaker)
	assert.Empty(t, h.workDirs(t), "separation directory must be removed")
	assert.FileExists(t, h.audio, "the uploaded file belongs to the scheduler")
	h.engines.AssertExpectations(t)
}

func TestRunSeparationFallsBackToOriginalAudio(t *testing.T) {
	h := newHarness(t)

	h.engines.Separator.On("Separate", mock.Anything, h.audio, mock.AnythingOfType("string")).
		Return("", errors.New("demucs exited with status 1")).Once()
	h.engines.Transcriber.On("Transcribe", mock.Anything, h.audio, mock.Anything).
		Return(&pipeline.Transcription{Text: "hi", Language: "en"}, nil).Once()
	h.engines.Aligner.On("Align", mock.Anything, h.audio, "hi", "eng", 8).
		Return([]model.TimedWord{{Text: "hi", StartMs: 0, EndMs: 200}}, nil).Once()
	h.engines.Diarizer.On("Diarize", mock.Anything, h.audio).
		Return([]model.SpeakerSegment{}, nil).Once()
	h.engines.Punctuator.On("Punctuate", mock.Anything, []string{"hi"}).
		Return([]string{"."}, nil).Once()

	outcome := h.run(model.DefaultJobOptions())

	require.True(t, outcome.OK())
	assert.Equal(t, model.Stages, h.stages)
	assert.Equal(t, "hi.", outcome.Transcript.Results.Channels[0].Alternatives[0].Words[0].PunctuatedWord)
	assert.Empty(t, h.workDirs(t))
	h.engines.AssertExpectations(t)
}

func TestRunWithoutStemming(t *testing.T) {
	h := newHarness(t)
	opts := model.JobOptions{ModelName: "large-v3", Language: "German", BatchSize: 0}

	h.engines.Transcriber.On("Transcribe", mock.Anything, h.audio, pipeline.TranscribeOptions{
		Model:     "large-v3",
		Language:  "de",
		BatchSize: 0,
		VADFilter: true,
	}).Return(&pipeline.Transcription{Text: "hallo", Language: "de"}, nil).Once()
	h.engines.Aligner.On("Align", mock.Anything, h.audio, "hallo", "deu", 0).
		Return([]model.TimedWord{{Text: "hallo", StartMs: 0, EndMs: 300}}, nil).Once()
	h.engines.Diarizer.On("Diarize", mock.Anything, h.audio).
		Return([]model.SpeakerSegment{{Speaker: "Speaker 2", StartMs: 0, EndMs: 500}}, nil).Once()
	h.engines.Punctuator.On("Punctuate", mock.Anything, []string{"hallo"}).
		Return([]string{"0"}, nil).Once()

	outcome := h.run(opts)

	require.True(t, outcome.OK())
	assert.Equal(t, model.Stages[1:], h.stages)
	assert.Equal(t, 2, outcome.Transcript.Results.Utterances[0].Speaker)
	h.engines.Separator.AssertNotCalled(t, "Separate", mock.Anything, mock.Anything, mock.Anything)
	h.engines.AssertExpectations(t)
}

func TestRunEnglishModelOverridesLanguage(t *testing.T) {
	h := newHarness(t)
	opts := model.JobOptions{ModelName: "small.en", Language: "fr", BatchSize: 4}

	h.engines.Transcriber.On("Transcribe", mock.Anything, h.audio, mock.MatchedBy(func(o pipeline.TranscribeOptions) bool {
		return o.Language == "en" && o.BatchSize == 4 && !o.VADFilter
	})).Return(&pipeline.Transcription{Text: "ok", Language: ""}, nil).Once()
	h.engines.Aligner.On("Align", mock.Anything, h.audio, "ok", "eng", 4).
		Return([]model.TimedWord{}, nil).Once()
	h.engines.Diarizer.On("Diarize", mock.Anything, h.audio).
		Return([]model.SpeakerSegment{}, nil).Once()
	h.engines.Punctuator.On("Punctuate", mock.Anything, []string{}).
		Return([]string{}, nil).Once()

	outcome := h.run(opts)

	require.True(t, outcome.OK())
	assert.NotNil(t, outcome.Transcript.Results.Utterances)
	assert.Empty(t, outcome.Transcript.Results.Utterances)
	h.engines.AssertExpectations(t)
}

func TestRunUnsupportedPunctuationLanguage(t *testing.T) {
	h := newHarness(t)
	opts := model.JobOptions{ModelName: "large-v3", BatchSize: 8}

	h.engines.Transcriber.On("Transcribe", mock.Anything, h.audio, mock.Anything).
		Return(&pipeline.Transcription{Text: "konnichiwa genki", Language: "ja"}, nil).Once()
	h.engines.Aligner.On("Align", mock.Anything, h.audio, "konnichiwa genki", "jpn", 8).
		Return([]model.TimedWord{
			{Text: "konnichiwa", StartMs: 0, EndMs: 500},
			{Text: "genki", StartMs: 600, EndMs: 900},
		}, nil).Once()
	h.engines.Diarizer.On("Diarize", mock.Anything, h.audio).
		Return([]model.SpeakerSegment{{Speaker: "Speaker 0", StartMs: 0, EndMs: 1000}}, nil).Once()

	outcome := h.run(opts)

	require.True(t, outcome.OK())
	words := outcome.Transcript.Results.Channels[0].Alternatives[0].Words
	require.Len(t, words, 2)
	assert.Equal(t, "konnichiwa", words[0].PunctuatedWord)
	assert.Equal(t, "genki", words[1].PunctuatedWord)
	h.engines.Punctuator.AssertNotCalled(t, "Punctuate", mock.Anything, mock.Anything)
}

func TestRunStageFailures(t *testing.T) {
	boom := errors.New("CUDA out of memory")

	testCases := []struct {
		name     string
		setup    func(h *harness)
		stage    model.Stage
		reported []model.Stage
	}{
		{
			name: "transcription",
			setup: func(h *harness) {
				h.engines.Transcriber.On("Transcribe", mock.Anything, h.audio, mock.Anything).Return(nil, boom).Once()
			},
			stage:    model.StageTranscribing,
			reported: model.Stages[1:2],
		},
		{
			name: "alignment",
			setup: func(h *harness) {
				h.engines.Transcriber.On("Transcribe", mock.Anything, h.audio, mock.Anything).
					Return(&pipeline.Transcription{Text: "x", Language: "en"}, nil).Once()
				h.engines.Aligner.On("Align", mock.Anything, h.audio, "x", "eng", 8).Return(nil, boom).Once()
			},
			stage:    model.StageAligning,
			reported: model.Stages[1:3],
		},
		{
			name: "diarization",
			setup: func(h *harness) {
				h.engines.Transcriber.On("Transcribe", mock.Anything, h.audio, mock.Anything).
					Return(&pipeline.Transcription{Text: "x", Language: "en"}, nil).Once()
				h.engines.Aligner.On("Align", mock.Anything, h.audio, "x", "eng", 8).
					Return([]model.TimedWord{{Text: "x"}}, nil).Once()
				h.engines.Diarizer.On("Diarize", mock.Anything, h.audio).Return(nil, boom).Once()
			},
			stage:    model.StageDiarizing,
			reported: model.Stages[1:4],
		},
		{
			name: "punctuation",
			setup: func(h *harness) {
				h.engines.Transcriber.On("Transcribe", mock.Anything, h.audio, mock.Anything).
					Return(&pipeline.Transcription{Text: "x", Language: "en"}, nil).Once()
				h.engines.Aligner.On("Align", mock.Anything, h.audio, "x", "eng", 8).
					Return([]model.TimedWord{{Text: "x"}}, nil).Once()
				h.engines.Diarizer.On("Diarize", mock.Anything, h.audio).
					Return([]model.SpeakerSegment{}, nil).Once()
				h.engines.Punctuator.On("Punctuate", mock.Anything, []string{"x"}).Return(nil, boom).Once()
			},
			stage:    model.StagePostProcessing,
			reported: model.Stages[1:5],
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			tc.setup(h)

			opts := model.DefaultJobOptions()
			opts.Stemming = false
			outcome := h.run(opts)

			require.False(t, outcome.OK())
			assert.Nil(t, outcome.Transcript)
			assert.Equal(t, tc.stage, outcome.Err.Stage)
			assert.Equal(t, boom.Error(), outcome.Message())
			assert.ErrorIs(t, outcome.Err, boom)
			assert.Equal(t, tc.reported, h.stages)
			h.engines.AssertExpectations(t)
		})
	}
}

func TestRunUnknownLanguage(t *testing.T) {
	h := newHarness(t)
	opts := model.JobOptions{ModelName: "large-v3", Language: "klingon", Stemming: true}

	outcome := h.run(opts)

	require.False(t, outcome.OK())
	assert.Empty(t, outcome.Err.Stage)
	assert.ErrorIs(t, outcome.Err, apperrors.ErrUnsupportedLanguage)
	assert.Empty(t, h.stages)
	assert.Empty(t, h.workDirs(t))
}

func TestRunFailureRemovesWorkDir(t *testing.T) {
	h := newHarness(t)

	h.engines.Separator.On("Separate", mock.Anything, h.audio, mock.AnythingOfType("string")).
		Return(writeVocals(t), nil).Once()
	h.engines.Transcriber.On("Transcribe", mock.Anything, mock.MatchedBy(isVocals), mock.Anything).
		Return(nil, errors.New("model not found")).Once()

	outcome := h.run(model.DefaultJobOptions())

	require.False(t, outcome.OK())
	assert.Equal(t, model.StageTranscribing, outcome.Err.Stage)
	assert.Empty(t, h.workDirs(t))
}

func TestRunResolvesSpeakersDuringPostProcessing(t *testing.T) {
	h := newHarness(t)
	opts := model.JobOptions{ModelName: "medium.en", BatchSize: 8}

	h.engines.Transcriber.On("Transcribe", mock.Anything, h.audio, mock.Anything).
		Return(&pipeline.Transcription{Text: "hello there how are you fine thanks", Language: "en"}, nil).Once()
	h.engines.Aligner.On("Align", mock.Anything, h.audio, mock.Anything, "eng", 8).
		Return(testutil.TwoSpeakerWords, nil).Once()
	h.engines.Diarizer.On("Diarize", mock.Anything, h.audio).
		Return(testutil.TwoSpeakerSegments, nil).Once()
	h.engines.Punctuator.On("Punctuate", mock.Anything, mock.Anything).
		Return(testutil.TwoSpeakerLabels, nil).Once()

	var resolvedAt model.Stage
	pipeline.SetResolver(h.orch, func(in assembler.Input) ([]model.SpeakerWord, []model.Sentence) {
		resolvedAt = h.stages[len(h.stages)-1]
		return assembler.Resolve(in)
	})

	outcome := h.run(opts)

	require.True(t, outcome.OK(), outcome.Message())
	assert.Equal(t, model.StagePostProcessing, resolvedAt)
	assert.Equal(t, model.StageGeneratingOutput, h.stages[len(h.stages)-1])
	require.Len(t, outcome.Transcript.Results.Utterances, 2)
	h.engines.AssertExpectations(t)
}
