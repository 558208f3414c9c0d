package assembler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// DefaultSpeaker labels words when diarization produced no segments
const DefaultSpeaker = "Speaker 0"

const speakerPrefix = "Speaker"

// SpeakerLabel formats a numeric diarization speaker as "Speaker N"
func SpeakerLabel(id int) string {
	return fmt.Sprintf("%s %d", speakerPrefix, id)
}

// ParseSpeakerID extracts N from "Speaker N", returning 0 for anything else
func ParseSpeakerID(label string) int {
	if !strings.HasPrefix(label, speakerPrefix) {
		return 0
	}
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0
	}
	id, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0
	}
	return id
}

// MapSpeakers attributes every word to the speaker whose segment contains the word's start.
// A word falling in a gap takes the nearest preceding segment (greatest end not after the
// word's start, ties broken by the later start); a word before every segment takes the first.
func MapSpeakers(words []model.TimedWord, segments []model.SpeakerSegment) []model.SpeakerWord {
	sorted := make([]model.SpeakerSegment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartMs < sorted[j].StartMs
	})

	mapped := make([]model.SpeakerWord, 0, len(words))
	for _, w := range words {
		mapped = append(mapped, model.SpeakerWord{
			Text:    w.Text,
			StartMs: w.StartMs,
			EndMs:   w.EndMs,
			Speaker: speakerAt(sorted, w.StartMs),
		})
	}
	return mapped
}

func speakerAt(segments []model.SpeakerSegment, ms int64) string {
	if len(segments) == 0 {
		return DefaultSpeaker
	}

	preceding := -1
	for i, s := range segments {
		if s.StartMs > ms {
			// sorted by start: nothing later can contain ms
			break
		}
		if ms <= s.EndMs {
			return s.Speaker
		}
		if preceding == -1 || s.EndMs >= segments[preceding].EndMs {
			preceding = i
		}
	}

	if preceding == -1 {
		return segments[0].Speaker
	}
	return segments[preceding].Speaker
}
