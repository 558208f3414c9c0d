package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/rroosshhaann/whisper-diarization/internal/app/pipeline"
)

// Transcriber implements pipeline.Transcriber with the OpenAI transcription API.
// Model, batch size and numeral suppression are server-side choices and are ignored.
type Transcriber struct {
	client *openai.Client
}

// NewTranscriber creates a transcriber using client
func NewTranscriber(client *openai.Client) *Transcriber {
	return &Transcriber{client: client}
}

// NewTranscriberFromKey creates a transcriber authenticated with apiKey
func NewTranscriberFromKey(apiKey string) *Transcriber {
	return NewTranscriber(openai.NewClient(apiKey))
}

// Transcribe uploads the audio and returns its text and detected language code
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string, opts pipeline.TranscribeOptions) (*pipeline.Transcription, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Language: opts.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("createTranscription failed: %w", err)
	}

	// verbose JSON reports the language by name ("english")
	language, _, err := pipeline.ResolveLanguage(resp.Language, "")
	if err != nil {
		return nil, err
	}
	return &pipeline.Transcription{Text: resp.Text, Language: language}, nil
}
