package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rroosshhaann/whisper-diarization/internal/app/assembler"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
	"github.com/rroosshhaann/whisper-diarization/internal/app/pipeline"
)

// PunctuationChunkSize is the number of words the punctuation model sees per window
const PunctuationChunkSize = 230

// Config configures the model sidecar client
type Config struct {
	BaseURL       string            `yaml:"base_url"`
	Timeout       time.Duration     `yaml:"timeout"`
	CustomHeaders map[string]string `yaml:"custom_headers"`
}

// Client talks to the HTTP inference sidecar hosting the speech models.
// It implements every pipeline collaborator.
type Client struct {
	config Config
	client *http.Client
}

var (
	_ pipeline.Transcriber    = (*Client)(nil)
	_ pipeline.Aligner        = (*Client)(nil)
	_ pipeline.Diarizer       = (*Client)(nil)
	_ pipeline.Punctuator     = (*Client)(nil)
	_ pipeline.VocalSeparator = (*Client)(nil)
)

// NewClient creates a sidecar client
func NewClient(config Config) *Client {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		// inference on long recordings is slow
		config.Timeout = 30 * time.Minute
	}
	if config.CustomHeaders == nil {
		config.CustomHeaders = make(map[string]string)
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

type transcribeResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type alignResponse struct {
	Words []model.TimedWord `json:"words"`
}

type diarizeSegment struct {
	Speaker int   `json:"speaker"`
	StartMs int64 `json:"start_ms"`
	EndMs   int64 `json:"end_ms"`
}

type diarizeResponse struct {
	Segments []diarizeSegment `json:"segments"`
}

type punctuateRequest struct {
	Words     []string `json:"words"`
	ChunkSize int      `json:"chunk_size"`
}

type punctuateResponse struct {
	Labels []string `json:"labels"`
}

// Transcribe runs speech recognition over the audio
func (c *Client) Transcribe(ctx context.Context, audioPath string, opts pipeline.TranscribeOptions) (*pipeline.Transcription, error) {
	fields := map[string]string{
		"model":             opts.Model,
		"batch_size":        strconv.Itoa(opts.BatchSize),
		"suppress_numerals": strconv.FormatBool(opts.SuppressNumerals),
		"vad_filter":        strconv.FormatBool(opts.VADFilter),
	}
	if opts.Language != "" {
		fields["language"] = opts.Language
	}

	var resp transcribeResponse
	if err := c.postFile(ctx, "/transcribe", audioPath, fields, &resp); err != nil {
		return nil, err
	}
	return &pipeline.Transcription{Text: resp.Text, Language: resp.Language}, nil
}

// Align force-aligns the transcript against the audio
func (c *Client) Align(ctx context.Context, audioPath, transcript, language string, batchSize int) ([]model.TimedWord, error) {
	fields := map[string]string{
		"text":       transcript,
		"language":   language,
		"batch_size": strconv.Itoa(batchSize),
	}

	var resp alignResponse
	if err := c.postFile(ctx, "/align", audioPath, fields, &resp); err != nil {
		return nil, err
	}
	if resp.Words == nil {
		return []model.TimedWord{}, nil
	}
	return resp.Words, nil
}

// Diarize returns speaker turns labelled "Speaker N"
func (c *Client) Diarize(ctx context.Context, audioPath string) ([]model.SpeakerSegment, error) {
	var resp diarizeResponse
	if err := c.postFile(ctx, "/diarize", audioPath, nil, &resp); err != nil {
		return nil, err
	}

	segments := make([]model.SpeakerSegment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, model.SpeakerSegment{
			Speaker: assembler.SpeakerLabel(s.Speaker),
			StartMs: s.StartMs,
			EndMs:   s.EndMs,
		})
	}
	return segments, nil
}

// Punctuate predicts a trailing punctuation label for each word
func (c *Client) Punctuate(ctx context.Context, words []string) ([]string, error) {
	payload, err := json.Marshal(punctuateRequest{Words: words, ChunkSize: PunctuationChunkSize})
	if err != nil {
		return nil, fmt.Errorf("failed to encode punctuation request: %w", err)
	}

	var resp punctuateResponse
	if err := c.do(ctx, "/punctuate", bytes.NewReader(payload), "application/json", &resp); err != nil {
		return nil, err
	}
	if len(resp.Labels) != len(words) {
		return nil, &Error{
			Code:     "label_mismatch",
			Endpoint: "/punctuate",
			Message:  fmt.Sprintf("expected %d labels, got %d", len(words), len(resp.Labels)),
		}
	}
	return resp.Labels, nil
}

// Separate extracts the vocal stem into workDir and returns its path
func (c *Client) Separate(ctx context.Context, audioPath, workDir string) (string, error) {
	body, contentType, err := multipartBody(audioPath, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.send(ctx, "/separate", body, contentType)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	out := filepath.Join(workDir, base+"_vocals.wav")
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("failed to create vocals file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return "", &Error{Code: "response_read_failed", Endpoint: "/separate", Message: err.Error(), Retryable: true}
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write vocals file: %w", err)
	}
	return out, nil
}

// HealthCheck verifies the sidecar is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Code: "request_failed", Endpoint: "/health", Message: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &Error{Code: "unhealthy", Endpoint: "/health", Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return nil
}

func (c *Client) postFile(ctx context.Context, path, audioPath string, fields map[string]string, out interface{}) error {
	body, contentType, err := multipartBody(audioPath, fields)
	if err != nil {
		return err
	}
	return c.do(ctx, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, path string, body io.Reader, contentType string, out interface{}) error {
	resp, err := c.send(ctx, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Code: "response_read_failed", Endpoint: path, Message: err.Error(), Retryable: true}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Code: "response_parse_failed", Endpoint: path, Message: err.Error()}
	}
	return nil
}

// send posts body and returns the response when the status is 200
func (c *Client) send(ctx context.Context, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	for key, value := range c.config.CustomHeaders {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Code: "request_failed", Endpoint: path, Message: err.Error(), Retryable: true}
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &Error{
			Code:      "api_error",
			Endpoint:  path,
			Message:   fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
			Retryable: resp.StatusCode >= 500,
		}
	}
	return resp, nil
}

func multipartBody(audioPath string, fields map[string]string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open audio: %w", err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy audio: %w", err)
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
