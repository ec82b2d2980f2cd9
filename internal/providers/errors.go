package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable indicates a provider was not wired or not configured.
var ErrProviderUnavailable = errors.New("provider unavailable")

// RateLimitError captures rate limit responses from upstream sources.
type RateLimitError struct {
	Source     string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "source rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// StatusError captures a non-2xx upstream response. 4xx responses are
// permanent and must not be retried; 5xx responses are transient.
type StatusError struct {
	Source     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Source, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Source, e.StatusCode)
}

// Permanent reports whether the response must not be retried.
func (e *StatusError) Permanent() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ExhaustedError aggregates a failed retry loop.
type ExhaustedError struct {
	Source   string
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: request failed after %d attempts: %v", e.Source, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }
