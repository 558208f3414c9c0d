package assembler

import (
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// MaxSentenceWords bounds how far realignment looks for a sentence's edges
const MaxSentenceWords = 50

// Realign relabels sentences that straddle a speaker change with their dominant speaker.
// A sentence is only relabelled when both its edges are found within maxWords and the
// dominant speaker owns at least half (rounded down) of its words.
func Realign(words []model.SpeakerWord, maxWords int) []model.SpeakerWord {
	if maxWords <= 0 {
		maxWords = MaxSentenceWords
	}

	out := make([]model.SpeakerWord, len(words))
	copy(out, words)

	n := len(out)
	for k := 0; k < n; k++ {
		if k == n-1 || out[k].Speaker == out[k+1].Speaker || isSentenceEnd(out[k].Text) {
			continue
		}

		left := sentenceStart(out, k, maxWords)
		if left < 0 {
			continue
		}
		right := sentenceEnd(out, k, maxWords-k+left-1)
		if right < 0 {
			continue
		}

		span := out[left : right+1]
		speaker, count := dominantSpeaker(span)
		if count < len(span)/2 {
			continue
		}
		for i := range span {
			span[i].Speaker = speaker
		}
		k = right
	}
	return out
}

// sentenceStart walks back from idx over same-speaker words to the first word of the
// sentence, returning -1 when the start is not reached within maxWords.
func sentenceStart(words []model.SpeakerWord, idx, maxWords int) int {
	left := idx
	for left > 0 && idx-left < maxWords &&
		words[left-1].Speaker == words[left].Speaker && !isSentenceEnd(words[left-1].Text) {
		left--
	}
	if left == 0 || isSentenceEnd(words[left-1].Text) {
		return left
	}
	return -1
}

// sentenceEnd walks forward from idx to the word closing the sentence, returning -1 when
// it is not reached within maxWords.
func sentenceEnd(words []model.SpeakerWord, idx, maxWords int) int {
	right := idx
	last := len(words) - 1
	for right < last && right-idx < maxWords && !isSentenceEnd(words[right].Text) {
		right++
	}
	if right == last || isSentenceEnd(words[right].Text) {
		return right
	}
	return -1
}

// dominantSpeaker returns the most frequent label; ties go to the label seen first
func dominantSpeaker(words []model.SpeakerWord) (string, int) {
	counts := make(map[string]int, 4)
	var order []string
	for _, w := range words {
		if counts[w.Speaker] == 0 {
			order = append(order, w.Speaker)
		}
		counts[w.Speaker]++
	}

	best, bestCount := "", 0
	for _, label := range order {
		if counts[label] > bestCount {
			best, bestCount = label, counts[label]
		}
	}
	return best, bestCount
}
