package config

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/rroosshhaann/whisper-diarization/internal/app/errors"
)

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	checks := []error{
		ValidatePort(c.Server.Port, "server"),
		ValidateTimeout(c.Server.ReadTimeout, time.Hour, "server read"),
		ValidateTimeout(c.Server.WriteTimeout, time.Hour, "server write"),
		ValidateTimeout(c.Engine.Timeout, 6*time.Hour, "engine"),
		ValidateTTL(c.Scheduler.JobTTL),
		ValidateBackend(c.Engine.Separator, "separator", BackendInference, BackendDemucs),
		ValidateBackend(c.Engine.Transcriber, "transcriber", BackendInference, BackendOpenAI),
		ValidateBatchSize(c.Defaults.BatchSize),
	}
	if c.Scheduler.UploadDir == "" {
		checks = append(checks, fmt.Errorf("scheduler upload_dir is required"))
	}
	if c.Engine.Separator == BackendInference || c.Engine.Transcriber == BackendInference {
		checks = append(checks, ValidateURL(c.Engine.BaseURL, "engine"))
	}
	if c.Engine.Transcriber == BackendOpenAI && c.OpenAIKey == "" {
		checks = append(checks, fmt.Errorf("transcriber %q requires OPENAI_API_KEY", BackendOpenAI))
	}

	for _, err := range checks {
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrInvalidConfig.Error())
		}
	}
	return nil
}

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout, max time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > max {
		return fmt.Errorf("%s timeout too large (max %s)", name, max)
	}
	return nil
}

// ValidateTTL validates the terminal job expiry
func ValidateTTL(ttl time.Duration) error {
	if ttl < time.Second {
		return fmt.Errorf("job_ttl must be at least 1s, got %s", ttl)
	}
	return nil
}

// ValidatePort validates port number
func ValidatePort(port int, name string) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s port %d out of range", name, port)
	}
	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}
	return nil
}

// ValidateBackend checks value against the allowed backend names
func ValidateBackend(value, name string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("unknown %s backend %q (want one of %s)", name, value, strings.Join(allowed, ", "))
}

// ValidateBatchSize rejects negative batch sizes; zero selects single-pass inference
func ValidateBatchSize(batchSize int) error {
	if batchSize < 0 {
		return fmt.Errorf("batch_size cannot be negative")
	}
	return nil
}
