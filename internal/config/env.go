package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// envPaths are searched in order; the first .env found is loaded
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads environment variables from the first .env file found.
// A missing file is not an error: variables may be set system-wide.
// It returns the loaded path, empty when none was found.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("error loading %s file: %w", envPath, err)
		}
		return envPath, nil
	}
	return "", nil
}

// OpenAIKey returns OPENAI_API_KEY, validating its format when set
func OpenAIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if key == "" {
		return "", nil
	}
	if !strings.HasPrefix(key, "sk-") {
		return "", fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
	}
	if len(key) < 20 {
		return "", fmt.Errorf("invalid OPENAI_API_KEY format: too short")
	}
	return key, nil
}
