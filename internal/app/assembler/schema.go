package assembler

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// Placeholder confidences: the models expose no per-word scores
const (
	WordConfidence    = 0.95
	SpeakerConfidence = 0.85
)

// UtteranceTolerance is the forward slack, in seconds, when collecting an utterance's words.
// It absorbs aligner rounding and is a tuned value worth revalidating on real timing data.
const UtteranceTolerance = 0.1

// Input is everything needed to assemble a transcript
type Input struct {
	Words     []model.TimedWord
	Segments  []model.SpeakerSegment
	ModelName string
	Punctuate bool     // restore punctuation from Labels
	Labels    []string // one predicted mark per word, used when Punctuate is set
	MaxWords  int      // realignment window, MaxSentenceWords when zero
}

// Assemble resolves the words and builds the schema in one step
func Assemble(in Input) *model.Transcript {
	words, sentences := Resolve(in)
	return Build(words, sentences, in.ModelName)
}

// Resolve runs speaker mapping, punctuation, realignment and sentence grouping
func Resolve(in Input) ([]model.SpeakerWord, []model.Sentence) {
	words := MapSpeakers(in.Words, in.Segments)
	if in.Punctuate {
		words = ApplyPunctuation(words, in.Labels)
	}
	words = Realign(words, in.MaxWords)
	return words, GroupSentences(words)
}

// Build produces the response schema from speaker-resolved words and their sentences
func Build(words []model.SpeakerWord, sentences []model.Sentence, modelName string) *model.Transcript {
	schemaWords := lo.Map(words, func(w model.SpeakerWord, _ int) model.Word {
		text := strings.TrimSpace(w.Text)
		return model.Word{
			Word:              text,
			Start:             msToSeconds(w.StartMs),
			End:               msToSeconds(w.EndMs),
			Confidence:        WordConfidence,
			Speaker:           ParseSpeakerID(w.Speaker),
			SpeakerConfidence: SpeakerConfidence,
			PunctuatedWord:    text,
		}
	})

	utterances := lo.Map(sentences, func(s model.Sentence, _ int) model.Utterance {
		start, end := msToSeconds(s.StartMs), msToSeconds(s.EndMs)
		return model.Utterance{
			Start:      start,
			End:        end,
			Confidence: WordConfidence,
			Channel:    0,
			Transcript: strings.TrimSpace(s.Text),
			Words:      wordsWithin(schemaWords, start, end),
			Speaker:    ParseSpeakerID(s.Speaker),
			ID:         uuid.NewString(),
		}
	})

	duration := 0.0
	if len(schemaWords) > 0 {
		duration = schemaWords[len(schemaWords)-1].End
	}

	return &model.Transcript{
		Metadata: model.Metadata{
			RequestID: uuid.NewString(),
			ModelInfo: model.ModelInfo{Name: modelName},
			Duration:  duration,
		},
		Results: model.Results{
			Channels: []model.Channel{{
				Alternatives: []model.Alternative{{
					Transcript: strings.Join(lo.Map(schemaWords, func(w model.Word, _ int) string { return w.Word }), " "),
					Confidence: WordConfidence,
					Words:      schemaWords,
				}},
			}},
			Utterances: utterances,
		},
	}
}

func wordsWithin(words []model.Word, start, end float64) []model.Word {
	return lo.Filter(words, func(w model.Word, _ int) bool {
		return w.Start >= start && w.End <= end+UtteranceTolerance
	})
}

func msToSeconds(ms int64) float64 {
	return float64(ms) / 1000.0
}
