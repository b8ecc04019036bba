package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"game-data-service/internal/providers"
)

// tokenSource caches an app access token from the client-credentials grant
// and refreshes it when it expires or when Helix rejects it. The token
// endpoint is its own rate domain, so refreshes draw from a separate budget
// through the admit hook rather than the Helix one.
type tokenSource struct {
	authURL      string
	clientID     string
	clientSecret string
	admit        func(context.Context) error
	httpClient   providers.HTTPDoer
	now          func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func newTokenSource(cfg Config, httpClient providers.HTTPDoer, now func() time.Time) *tokenSource {
	return &tokenSource{
		authURL:      providers.NormalizeBaseURL(cfg.AuthURL, defaultAuthURL),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		admit:        cfg.AuthAdmit,
		httpClient:   httpClient,
		now:          now,
	}
}

// Token returns a valid access token, fetching a fresh one when the cached
// token is absent or within the expiry slack of its deadline.
func (s *tokenSource) Token(ctx context.Context) (string, error) {
	if s.clientID == "" || s.clientSecret == "" {
		return "", &providers.CredentialsError{Provider: providerName}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Add(tokenExpirySlack).Before(s.expiresAt) {
		return s.token, nil
	}

	if s.admit != nil {
		if err := s.admit(ctx); err != nil {
			return "", err
		}
	}

	form := url.Values{}
	form.Set("client_id", s.clientID)
	form.Set("client_secret", s.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %v: %w", providerName, err, providers.ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", &providers.CredentialsError{Provider: providerName}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: token endpoint status %d: %w", providerName, resp.StatusCode, providers.ErrProviderUnavailable)
	}

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%s: decoding token response: %w", providerName, err)
	}
	if payload.AccessToken == "" {
		return "", &providers.CredentialsError{Provider: providerName}
	}

	s.token = payload.AccessToken
	s.expiresAt = s.now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	return s.token, nil
}

// Invalidate drops the cached token so the next call fetches a fresh one.
func (s *tokenSource) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}
