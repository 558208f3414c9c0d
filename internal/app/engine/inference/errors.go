package inference

import "fmt"

// Error describes a failed sidecar call
type Error struct {
	Code      string
	Endpoint  string
	Message   string
	Retryable bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("inference %s %s: %s", e.Endpoint, e.Code, e.Message)
}
