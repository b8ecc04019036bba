package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable marks transport or auth failure against an upstream
// provider. The aggregator treats it as "try the next source".
var ErrProviderUnavailable = errors.New("provider unavailable")

// ErrNotFound marks a valid id that no longer resolves to a record.
var ErrNotFound = errors.New("record not found")

// RateLimitError captures rate limit responses from upstream providers. It is
// the provider telling us to back off, distinct from the local quota
// scheduler refusing admission.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status=%d)", e.Provider, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// CredentialsError marks a missing or rejected API key. Its message is the
// exact string surfaced to users for auth/config failures, and it unwraps to
// ErrProviderUnavailable so fallback handling stays uniform.
type CredentialsError struct {
	Provider string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("Unable to access %s API, please add an API key or check with your system admin.", e.Provider)
}

func (e *CredentialsError) Unwrap() error {
	return ErrProviderUnavailable
}

// AsCredentialsError attempts to unwrap an error into a CredentialsError.
func AsCredentialsError(err error) (*CredentialsError, bool) {
	var credErr *CredentialsError
	if errors.As(err, &credErr) {
		return credErr, true
	}
	return nil, false
}
