package model

// TimedWord is one aligned word with millisecond timestamps
type TimedWord struct {
	Text    string `json:"text"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
}

// SpeakerSegment is one diarized speaker turn
type SpeakerSegment struct {
	Speaker string `json:"speaker"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
}

// SpeakerWord is an aligned word attributed to a speaker label
type SpeakerWord struct {
	Text    string
	StartMs int64
	EndMs   int64
	Speaker string
}

// Sentence is a group of consecutive words forming one utterance
type Sentence struct {
	Speaker string
	StartMs int64
	EndMs   int64
	Text    string
}

// Transcript is the Deepgram-compatible response schema
type Transcript struct {
	Metadata Metadata `json:"metadata"`
	Results  Results  `json:"results"`
}

// Metadata describes the request that produced a transcript
type Metadata struct {
	RequestID string    `json:"request_id"`
	ModelInfo ModelInfo `json:"model_info"`
	Duration  float64   `json:"duration"`
}

// ModelInfo names the transcription model
type ModelInfo struct {
	Name string `json:"name"`
}

// Results holds channel alternatives and utterances
type Results struct {
	Channels   []Channel   `json:"channels"`
	Utterances []Utterance `json:"utterances"`
}

// Channel holds the alternatives for one audio channel
type Channel struct {
	Alternatives []Alternative `json:"alternatives"`
}

// Alternative is one full transcript hypothesis
type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Words      []Word  `json:"words"`
}

// Word is a speaker-attributed word with timestamps in seconds
type Word struct {
	Word              string  `json:"word"`
	Start             float64 `json:"start"`
	End               float64 `json:"end"`
	Confidence        float64 `json:"confidence"`
	Speaker           int     `json:"speaker"`
	SpeakerConfidence float64 `json:"speaker_confidence"`
	PunctuatedWord    string  `json:"punctuated_word"`
}

// Utterance is a sentence-level group of words attributed to one speaker
type Utterance struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
	Channel    int     `json:"channel"`
	Transcript string  `json:"transcript"`
	Words      []Word  `json:"words"`
	Speaker    int     `json:"speaker"`
	ID         string  `json:"id"`
}
