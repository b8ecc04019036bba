package providers

import (
	"fmt"
	"net/http"
)

// ClassifyStatus maps a non-200 upstream status onto the shared error
// taxonomy: 401/403 as credentials failures, 404 as not found, 429 as a
// provider-signaled rate limit, everything else as unavailable.
func ClassifyStatus(provider string, resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return &CredentialsError{Provider: provider}
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", provider, ErrNotFound)
	case http.StatusTooManyRequests:
		return &RateLimitError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			RetryAfter: ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	default:
		return fmt.Errorf("%s: unexpected status %d: %w", provider, resp.StatusCode, ErrProviderUnavailable)
	}
}
