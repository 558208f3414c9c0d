package errors

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// Job lifecycle errors
	ErrJobNotFound       = New("job not found")
	ErrJobExists         = New("job already exists")
	ErrJobProcessing     = New("cannot delete job while processing")
	ErrInvalidTransition = New("invalid job status transition")
	ErrStillQueued       = New("job is still queued")
	ErrStillProcessing   = New("job is still processing")
	ErrJobFailed         = New("job failed")
	ErrSchedulerStopped  = New("scheduler is stopped")

	// Pipeline errors
	ErrUnsupportedLanguage = New("unsupported language")

	// Configuration errors
	ErrInvalidConfig = New("invalid configuration")

	// File errors
	ErrFileWriteFailed = New("file write failed")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// Is forwards to the standard library so callers need a single errors import
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As forwards to the standard library
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// JobNotFound returns ErrJobNotFound annotated with the job id
func JobNotFound(jobID string) error {
	return Wrapf(ErrJobNotFound, "job %s", jobID)
}

// UnsupportedLanguage returns ErrUnsupportedLanguage annotated with the language
func UnsupportedLanguage(language string) error {
	return Wrapf(ErrUnsupportedLanguage, "language %q", language)
}
