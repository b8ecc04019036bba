package gamalytic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"game-data-service/internal/domain"
	"game-data-service/internal/normalize"
	"game-data-service/internal/providers"
)

// Config controls how the Gamalytic client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches sales and market intelligence from the Gamalytic API. Its
// ids are Steam app ids.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient providers.HTTPDoer
	breaker    *breaker
	now        func() time.Time
}

// NewClient constructs a Gamalytic client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    providers.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		apiKey:     cfg.APIKey,
		httpClient: providers.ResolveHTTPClient(cfg.HTTPClient),
		breaker:    newBreaker(time.Now),
		now:        time.Now,
	}
}

func (c *Client) Name() domain.Provider { return domain.ProviderGamalytic }

func (c *Client) FieldMap() normalize.FieldMap { return fieldMap }

func (c *Client) ExactMatchThreshold() float64 { return exactMatchThreshold }

// Search queries the Steam games list by free-text name.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
	if c.apiKey == "" {
		return nil, &providers.CredentialsError{Provider: providerName}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/steam-games/list", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("search", query)
	q.Set("limit", strconv.Itoa(searchLimit))
	req.URL.RawQuery = q.Encode()

	var payload listResponse
	if err := c.doJSON(endpointSearch, req, &payload); err != nil {
		return nil, err
	}
	return mapCandidates(query, payload.Result), nil
}

// FetchDetails retrieves market intelligence for one Steam app id.
func (c *Client) FetchDetails(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error) {
	if c.apiKey == "" {
		return domain.RawRecord{}, &providers.CredentialsError{Provider: providerName}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/game/"+string(id), nil)
	if err != nil {
		return domain.RawRecord{}, err
	}

	var payload gameResponse
	if err := c.doJSON(endpointDetails, req, &payload); err != nil {
		return domain.RawRecord{}, err
	}
	if payload.SteamID == 0 && payload.Name == "" {
		return domain.RawRecord{}, fmt.Errorf("%s: empty detail payload: %w", providerName, providers.ErrNotFound)
	}

	return domain.RawRecord{
		Provider:  domain.ProviderGamalytic,
		ID:        id,
		Values:    mapDetails(payload),
		FetchedAt: c.now(),
	}, nil
}

// doJSON runs one upstream call behind the endpoint's circuit breaker. Only
// infrastructure failures trip the breaker; not-found and rate-limit answers
// prove the endpoint is alive.
func (c *Client) doJSON(endpoint string, req *http.Request, out any) error {
	if !c.breaker.Allow(endpoint) {
		return fmt.Errorf("%s: circuit open for %s: %w", providerName, endpoint, providers.ErrProviderUnavailable)
	}
	req.Header.Set(headerAPIKey, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.RecordFailure(endpoint)
		return fmt.Errorf("%s: %v: %w", providerName, err, providers.ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	if err := providers.ClassifyStatus(providerName, resp); err != nil {
		if c.tripsBreaker(err) {
			c.breaker.RecordFailure(endpoint)
		} else {
			c.breaker.RecordSuccess(endpoint)
		}
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.breaker.RecordFailure(endpoint)
		return fmt.Errorf("%s: decoding response: %w", providerName, err)
	}
	c.breaker.RecordSuccess(endpoint)
	return nil
}

func (c *Client) tripsBreaker(err error) bool {
	if errors.Is(err, providers.ErrNotFound) {
		return false
	}
	if _, ok := providers.AsRateLimitError(err); ok {
		return false
	}
	return true
}
