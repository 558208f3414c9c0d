package assembler

import (
	"strings"

	"github.com/samber/lo"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// GroupSentences partitions the word stream into sentences.
// Only a word ending in sentence-ending punctuation closes a sentence; a speaker change on
// its own never does. Each sentence is attributed to its dominant speaker.
func GroupSentences(words []model.SpeakerWord) []model.Sentence {
	sentences := make([]model.Sentence, 0)

	start := 0
	for i, w := range words {
		if !isSentenceEnd(w.Text) && i != len(words)-1 {
			continue
		}
		sentences = append(sentences, newSentence(words[start:i+1]))
		start = i + 1
	}
	return sentences
}

func newSentence(group []model.SpeakerWord) model.Sentence {
	speaker, _ := dominantSpeaker(group)

	texts := lo.FilterMap(group, func(w model.SpeakerWord, _ int) (string, bool) {
		t := strings.TrimSpace(w.Text)
		return t, t != ""
	})

	return model.Sentence{
		Speaker: speaker,
		StartMs: group[0].StartMs,
		EndMs:   group[len(group)-1].EndMs,
		Text:    strings.Join(texts, " "),
	}
}
