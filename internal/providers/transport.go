package providers

import (
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPDoer abstracts the HTTP client so adapter tests can inject transports.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResolveHTTPClient returns the provided client or a default with a timeout.
func ResolveHTTPClient(client *http.Client) HTTPDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// NormalizeBaseURL strips a trailing slash, falling back to def when empty.
func NormalizeBaseURL(raw, def string) string {
	if raw == "" {
		raw = def
	}
	return strings.TrimSuffix(raw, "/")
}

// ParseRetryAfter interprets a Retry-After header as a delay. Only the
// delta-seconds form is handled; anything else yields zero.
func ParseRetryAfter(header string) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	if secs, err := time.ParseDuration(header + "s"); err == nil && secs > 0 {
		return secs
	}
	return 0
}
