package assembler

import (
	"regexp"
	"strings"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

const (
	// SentenceEndings terminate a sentence
	SentenceEndings = ".?!"
	// PunctuationMarks are the marks the punctuation model can emit
	PunctuationMarks = ".,;:!?"
)

// AcronymPattern matches multi-period acronyms such as "U.S." which still receive a
// predicted sentence ending. Tuned against English transcripts; revalidate for others.
var AcronymPattern = regexp.MustCompile(`^(?:[a-zA-Z]\.){2,}$`)

// ApplyPunctuation appends each predicted sentence ending to its word.
// labels[i] belongs to words[i]; extra entries on either side are ignored.
func ApplyPunctuation(words []model.SpeakerWord, labels []string) []model.SpeakerWord {
	out := make([]model.SpeakerWord, len(words))
	copy(out, words)

	for i := range out {
		if i >= len(labels) {
			break
		}
		out[i].Text = punctuate(out[i].Text, labels[i])
	}
	return out
}

func punctuate(word, label string) string {
	if word == "" || len(label) != 1 || !strings.Contains(SentenceEndings, label) {
		return word
	}
	if strings.ContainsRune(PunctuationMarks, lastRune(word)) && !AcronymPattern.MatchString(word) {
		return word
	}

	word += label
	if strings.HasSuffix(word, "..") {
		word = strings.TrimRight(word, ".") + "."
	}
	return word
}

func lastRune(s string) rune {
	r := []rune(s)
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1]
}

func isSentenceEnd(word string) bool {
	word = strings.TrimSpace(word)
	return word != "" && strings.ContainsRune(SentenceEndings, lastRune(word))
}
