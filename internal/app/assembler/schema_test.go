package assembler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

var (
	exchangeWords = []model.TimedWord{
		{Text: "Hello", StartMs: 0, EndMs: 400},
		{Text: "there", StartMs: 450, EndMs: 800},
		{Text: "how", StartMs: 900, EndMs: 1100},
		{Text: "are", StartMs: 1150, EndMs: 1300},
		{Text: "you", StartMs: 1350, EndMs: 1600},
		{Text: "fine", StartMs: 2000, EndMs: 2300},
		{Text: "thanks", StartMs: 2350, EndMs: 2700},
	}
	exchangeSegments = []model.SpeakerSegment{
		{Speaker: "Speaker 0", StartMs: 0, EndMs: 1700},
		{Speaker: "Speaker 1", StartMs: 1900, EndMs: 2800},
	}
	exchangeLabels = []string{"0", "0", "0", "0", "?", "0", "."}
)

func TestAssemble(t *testing.T) {
	transcript := Assemble(Input{
		Words:     exchangeWords,
		Segments:  exchangeSegments,
		ModelName: "medium.en",
		Punctuate: true,
		Labels:    exchangeLabels,
	})

	require.NotNil(t, transcript)
	assert.Equal(t, "medium.en", transcript.Metadata.ModelInfo.Name)
	assert.NotEmpty(t, transcript.Metadata.RequestID)
	assert.InDelta(t, 2.7, transcript.Metadata.Duration, 1e-9)

	require.Len(t, transcript.Results.Channels, 1)
	require.Len(t, transcript.Results.Channels[0].Alternatives, 1)
	alt := transcript.Results.Channels[0].Alternatives[0]
	assert.Equal(t, "Hello there how are you? fine thanks.", alt.Transcript)
	assert.Equal(t, WordConfidence, alt.Confidence)
	require.Len(t, alt.Words, 7)

	first := alt.Words[0]
	assert.Equal(t, "Hello", first.Word)
	assert.Equal(t, "Hello", first.PunctuatedWord)
	assert.InDelta(t, 0.0, first.Start, 1e-9)
	assert.InDelta(t, 0.4, first.End, 1e-9)
	assert.Equal(t, 0, first.Speaker)
	assert.Equal(t, SpeakerConfidence, first.SpeakerConfidence)
	assert.Equal(t, 1, alt.Words[6].Speaker)

	utterances := transcript.Results.Utterances
	require.Len(t, utterances, 2)
	assert.Equal(t, "Hello there how are you?", utterances[0].Transcript)
	assert.Equal(t, 0, utterances[0].Speaker)
	assert.InDelta(t, 1.6, utterances[0].End, 1e-9)
	assert.Len(t, utterances[0].Words, 5)
	assert.Equal(t, "fine thanks.", utterances[1].Transcript)
	assert.Equal(t, 1, utterances[1].Speaker)
	assert.Len(t, utterances[1].Words, 2)
	assert.NotEqual(t, utterances[0].ID, utterances[1].ID)
}

func TestResolve(t *testing.T) {
	words, sentences := Resolve(Input{
		Words:     exchangeWords,
		Segments:  exchangeSegments,
		Punctuate: true,
		Labels:    exchangeLabels,
	})

	require.Len(t, words, 7)
	assert.Equal(t, "you?", words[4].Text)
	assert.Equal(t, "Speaker 1", words[5].Speaker)
	require.Len(t, sentences, 2)
	assert.Equal(t, "Speaker 0", sentences[0].Speaker)
	assert.Equal(t, "fine thanks.", sentences[1].Text)
}

func TestAssembleWithoutPunctuation(t *testing.T) {
	transcript := Assemble(Input{
		Words:    exchangeWords,
		Segments: exchangeSegments,
		Labels:   exchangeLabels,
	})

	alt := transcript.Results.Channels[0].Alternatives[0]
	assert.Equal(t, "you", alt.Words[4].Word)
	// no sentence ending anywhere: the whole stream is one utterance
	require.Len(t, transcript.Results.Utterances, 1)
	assert.Len(t, transcript.Results.Utterances[0].Words, 7)
}

func TestBuildEmpty(t *testing.T) {
	transcript := Build(nil, GroupSentences(nil), "tiny")

	data, err := json.Marshal(transcript)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	results := decoded["results"].(map[string]any)
	assert.Equal(t, []any{}, results["utterances"])

	alt := results["channels"].([]any)[0].(map[string]any)["alternatives"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{}, alt["words"])
	assert.Equal(t, "", alt["transcript"])
	assert.Zero(t, transcript.Metadata.Duration)
}

func TestWordsWithin(t *testing.T) {
	words := []model.Word{
		{Word: "early", Start: 0.9, End: 1.0},
		{Word: "inside", Start: 1.0, End: 1.5},
		{Word: "slack", Start: 1.8, End: 2.05},
		{Word: "late", Start: 1.9, End: 2.2},
	}

	within := wordsWithin(words, 1.0, 2.0)
	require.Len(t, within, 2)
	assert.Equal(t, "inside", within[0].Word)
	assert.Equal(t, "slack", within[1].Word)
}
