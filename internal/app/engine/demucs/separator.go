package demucs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const modelName = "htdemucs"

// commandRunner abstracts process execution for tests
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stderr string, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stderr.String(), err
}

// Separator isolates vocals with a local Demucs installation
type Separator struct {
	pythonBin string
	device    string
	runner    commandRunner
	stat      func(name string) (os.FileInfo, error)
	logger    *zap.Logger
}

// NewSeparator creates a Demucs separator invoking pythonBin on device ("cuda" or "cpu")
func NewSeparator(pythonBin, device string, logger *zap.Logger) *Separator {
	if pythonBin == "" {
		pythonBin = "python3"
	}
	if device == "" {
		device = "cpu"
	}
	return &Separator{
		pythonBin: pythonBin,
		device:    device,
		runner:    execRunner{},
		stat:      os.Stat,
		logger:    logger,
	}
}

// Separate runs two-stem separation and returns the vocals track inside workDir
func (s *Separator) Separate(ctx context.Context, audioPath, workDir string) (string, error) {
	args := []string{
		"-m", "demucs.separate",
		"-n", modelName,
		"--two-stems=vocals",
		audioPath,
		"-o", workDir,
		"--device", s.device,
	}
	s.logger.Debug("running demucs", zap.String("python", s.pythonBin), zap.Strings("args", args))

	stderr, err := s.runner.Run(ctx, s.pythonBin, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("demucs exited with code %d: %s", exitErr.ExitCode(), tail(stderr))
		}
		return "", fmt.Errorf("demucs failed: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	vocals := filepath.Join(workDir, modelName, base, "vocals.wav")
	if _, err := s.stat(vocals); err != nil {
		return "", fmt.Errorf("demucs produced no vocals track: %w", err)
	}
	return vocals, nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	const limit = 512
	if len(s) > limit {
		return s[len(s)-limit:]
	}
	return s
}
