package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// DefaultConfigPath is read when DIARIZE_CONFIG is unset
const DefaultConfigPath = "config/diarize.yaml"

// Separator and transcriber backends
const (
	BackendInference = "inference"
	BackendDemucs    = "demucs"
	BackendOpenAI    = "openai"
)

// Config is the complete service configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Engine    EngineConfig    `yaml:"engine"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Log       LogConfig       `yaml:"log"`

	// OpenAIKey comes from the environment only
	OpenAIKey string `yaml:"-"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	Environment  string        `yaml:"environment"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

// SchedulerConfig configures job storage and expiry
type SchedulerConfig struct {
	UploadDir string        `yaml:"upload_dir"`
	JobTTL    time.Duration `yaml:"job_ttl"`
}

// EngineConfig selects and configures the inference backends
type EngineConfig struct {
	BaseURL     string            `yaml:"base_url"`
	Timeout     time.Duration     `yaml:"timeout"`
	Headers     map[string]string `yaml:"headers"`
	Device      string            `yaml:"device"`
	Separator   string            `yaml:"separator"`
	Transcriber string            `yaml:"transcriber"`
	PythonBin   string            `yaml:"python_bin"`
}

// DefaultsConfig holds submission defaults
type DefaultsConfig struct {
	WhisperModel     string `yaml:"whisper_model"`
	Stemming         bool   `yaml:"stemming"`
	SuppressNumerals bool   `yaml:"suppress_numerals"`
	BatchSize        int    `yaml:"batch_size"`
}

// LogConfig configures zap
type LogConfig struct {
	Development bool `yaml:"development"`
}

// Default returns the built-in configuration
func Default() *Config {
	opts := model.DefaultJobOptions()
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8000,
			ReadTimeout:  5 * time.Minute,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  2 * time.Minute,
			Environment:  "production",
			CORSOrigins:  []string{"*"},
		},
		Scheduler: SchedulerConfig{
			UploadDir: "/tmp/diarization_uploads",
			JobTTL:    time.Hour,
		},
		Engine: EngineConfig{
			BaseURL:     "http://127.0.0.1:9000",
			Timeout:     30 * time.Minute,
			Device:      "cuda",
			Separator:   BackendInference,
			Transcriber: BackendInference,
			PythonBin:   "python3",
		},
		Defaults: DefaultsConfig{
			WhisperModel:     opts.ModelName,
			Stemming:         opts.Stemming,
			SuppressNumerals: opts.SuppressNumerals,
			BatchSize:        opts.BatchSize,
		},
	}
}

// Load reads the YAML file at path over the defaults and applies environment overrides.
// A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Initialize loads .env and then the config file named by DIARIZE_CONFIG
func Initialize() (*Config, error) {
	if _, err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	path := os.Getenv("DIARIZE_CONFIG")
	if path == "" {
		path = DefaultConfigPath
	}
	return Load(path)
}

// JobDefaults returns the submission defaults as job options
func (c *Config) JobDefaults() model.JobOptions {
	return model.JobOptions{
		ModelName:        c.Defaults.WhisperModel,
		Stemming:         c.Defaults.Stemming,
		SuppressNumerals: c.Defaults.SuppressNumerals,
		BatchSize:        c.Defaults.BatchSize,
	}
}

// Address returns host:port for the HTTP listener
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DIARIZE_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("DIARIZE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DIARIZE_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("DIARIZE_ENV"); v != "" {
		c.Server.Environment = v
	}
	if v := os.Getenv("DIARIZE_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = lo.Map(strings.Split(v, ","), func(o string, _ int) string {
			return strings.TrimSpace(o)
		})
	}
	if v := os.Getenv("DIARIZE_UPLOAD_DIR"); v != "" {
		c.Scheduler.UploadDir = v
	}
	if v := os.Getenv("DIARIZE_JOB_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DIARIZE_JOB_TTL %q: %w", v, err)
		}
		c.Scheduler.JobTTL = ttl
	}
	if v := os.Getenv("DIARIZE_ENGINE_URL"); v != "" {
		c.Engine.BaseURL = v
	}
	if v := os.Getenv("DIARIZE_DEVICE"); v != "" {
		c.Engine.Device = v
	}
	if v := os.Getenv("DIARIZE_SEPARATOR"); v != "" {
		c.Engine.Separator = v
	}
	if v := os.Getenv("DIARIZE_TRANSCRIBER"); v != "" {
		c.Engine.Transcriber = v
	}
	if v := os.Getenv("DIARIZE_LOG_DEVELOPMENT"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DIARIZE_LOG_DEVELOPMENT %q: %w", v, err)
		}
		c.Log.Development = dev
	}

	key, err := OpenAIKey()
	if err != nil {
		return err
	}
	c.OpenAIKey = key
	return nil
}
