package inference

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
	"github.com/rroosshhaann/whisper-diarization/internal/app/pipeline"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF audio"), 0o644))
	return path
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		BaseURL:       server.URL + "/",
		CustomHeaders: map[string]string{"X-Api-Key": "secret"},
	})
}

func TestTranscribe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transcribe", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "medium.en", r.FormValue("model"))
		assert.Equal(t, "0", r.FormValue("batch_size"))
		assert.Equal(t, "true", r.FormValue("vad_filter"))
		assert.Equal(t, "false", r.FormValue("suppress_numerals"))
		assert.Equal(t, "en", r.FormValue("language"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "meeting.wav", header.Filename)
		assert.Equal(t, "RIFF audio", string(data))

		_ = json.NewEncoder(w).Encode(map[string]string{"text": "hello world", "language": "en"})
	})

	got, err := client.Transcribe(context.Background(), writeAudio(t), pipeline.TranscribeOptions{
		Model:     "medium.en",
		Language:  "en",
		VADFilter: true,
	})
	require.NoError(t, err)
	assert.Equal(t, &pipeline.Transcription{Text: "hello world", Language: "en"}, got)
}

func TestTranscribeOmitsEmptyLanguage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, present := r.MultipartForm.Value["language"]
		assert.False(t, present)
		_, _ = w.Write([]byte(`{"text":"","language":"de"}`))
	})

	got, err := client.Transcribe(context.Background(), writeAudio(t), pipeline.TranscribeOptions{Model: "large-v3", BatchSize: 8})
	require.NoError(t, err)
	assert.Equal(t, "de", got.Language)
}

func TestAlign(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/align", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "hello world", r.FormValue("text"))
		assert.Equal(t, "eng", r.FormValue("language"))
		assert.Equal(t, "8", r.FormValue("batch_size"))
		_, _ = w.Write([]byte(`{"words":[{"text":"hello","start_ms":0,"end_ms":400},{"text":"world","start_ms":450,"end_ms":900}]}`))
	})

	words, err := client.Align(context.Background(), writeAudio(t), "hello world", "eng", 8)
	require.NoError(t, err)
	assert.Equal(t, []model.TimedWord{
		{Text: "hello", StartMs: 0, EndMs: 400},
		{Text: "world", StartMs: 450, EndMs: 900},
	}, words)
}

func TestAlignEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	words, err := client.Align(context.Background(), writeAudio(t), "", "eng", 8)
	require.NoError(t, err)
	assert.NotNil(t, words)
	assert.Empty(t, words)
}

func TestDiarize(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/diarize", r.URL.Path)
		_, _ = w.Write([]byte(`{"segments":[{"speaker":0,"start_ms":0,"end_ms":1500},{"speaker":1,"start_ms":1500,"end_ms":3000}]}`))
	})

	segments, err := client.Diarize(context.Background(), writeAudio(t))
	require.NoError(t, err)
	assert.Equal(t, []model.SpeakerSegment{
		{Speaker: "Speaker 0", StartMs: 0, EndMs: 1500},
		{Speaker: "Speaker 1", StartMs: 1500, EndMs: 3000},
	}, segments)
}

func TestPunctuate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req punctuateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, PunctuationChunkSize, req.ChunkSize)

		labels := make([]string, len(req.Words))
		for i := range labels {
			labels[i] = "0"
		}
		if len(labels) > 0 {
			labels[len(labels)-1] = "."
		}
		_ = json.NewEncoder(w).Encode(punctuateResponse{Labels: labels})
	})

	labels, err := client.Punctuate(context.Background(), []string{"so", "it", "begins"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "0", "."}, labels)
}

func TestPunctuateLabelMismatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"labels":["."]}`))
	})

	_, err := client.Punctuate(context.Background(), []string{"a", "b"})
	var inferenceErr *Error
	require.ErrorAs(t, err, &inferenceErr)
	assert.Equal(t, "label_mismatch", inferenceErr.Code)
}

func TestSeparate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/separate", r.URL.Path)
		_, _ = w.Write([]byte("vocal stem"))
	})

	workDir := t.TempDir()
	path, err := client.Separate(context.Background(), writeAudio(t), workDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, "meeting_vocals.wav"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "vocal stem", string(data))
}

func TestErrorResponses(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		body      string
		code      string
		retryable bool
	}{
		{name: "server error", status: http.StatusServiceUnavailable, body: "model loading", code: "api_error", retryable: true},
		{name: "client error", status: http.StatusBadRequest, body: "unsupported language", code: "api_error"},
		{name: "bad json", status: http.StatusOK, body: "{", code: "response_parse_failed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.Diarize(context.Background(), writeAudio(t))
			var inferenceErr *Error
			require.True(t, errors.As(err, &inferenceErr))
			assert.Equal(t, tc.code, inferenceErr.Code)
			assert.Equal(t, tc.retryable, inferenceErr.Retryable)
			assert.Equal(t, "/diarize", inferenceErr.Endpoint)
		})
	}
}

func TestMissingAudio(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := client.Diarize(context.Background(), filepath.Join(t.TempDir(), "gone.wav"))
	assert.ErrorContains(t, err, "failed to open audio")
}

func TestHealthCheck(t *testing.T) {
	healthy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
	})
	assert.NoError(t, healthy.HealthCheck(context.Background()))

	unhealthy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.ErrorContains(t, unhealthy.HealthCheck(context.Background()), "unhealthy")
}
