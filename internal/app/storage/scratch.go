package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/rroosshhaann/whisper-diarization/internal/app/errors"
)

const defaultExtension = ".wav"

// ScratchStore owns the directory holding uploaded audio until its job finishes
type ScratchStore struct {
	dir string
}

// NewScratchStore creates the upload directory if needed
func NewScratchStore(dir string) (*ScratchStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &ScratchStore{dir: dir}, nil
}

// Dir returns the upload directory
func (s *ScratchStore) Dir() string {
	return s.dir
}

// PathFor returns the file path for a job: <dir>/<jobID><ext of filename>, .wav when absent
func (s *ScratchStore) PathFor(jobID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || ext == "." {
		ext = defaultExtension
	}
	return filepath.Join(s.dir, jobID+ext)
}

// Save writes the uploaded audio for a job and returns its path
func (s *ScratchStore) Save(jobID, filename string, content io.Reader) (string, error) {
	path := s.PathFor(jobID, filename)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrFileWriteFailed, "create %s: %v", path, err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return "", apperrors.Wrapf(apperrors.ErrFileWriteFailed, "write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", apperrors.Wrapf(apperrors.ErrFileWriteFailed, "close %s: %v", path, err)
	}
	return path, nil
}

// Remove deletes a file if it still exists
func (s *ScratchStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether the file is present
func (s *ScratchStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// NewWorkDir creates a scratch directory for intermediate artifacts under the upload directory
func (s *ScratchStore) NewWorkDir(prefix string) (string, error) {
	return os.MkdirTemp(s.dir, prefix+"-work-")
}

// RemoveWorkDir deletes a scratch directory and everything under it
func (s *ScratchStore) RemoveWorkDir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}
