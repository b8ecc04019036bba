package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"game-data-service/internal/domain"
	"game-data-service/internal/normalize"
	"game-data-service/internal/providers"
)

// Config controls how the Twitch client reaches the Helix API and its OAuth
// token endpoint. AuthAdmit, when set, gates each token refresh through its
// own scheduler budget; Helix calls are throttled by the adapter decorators.
type Config struct {
	BaseURL      string
	AuthURL      string
	ClientID     string
	ClientSecret string
	AuthAdmit    func(context.Context) error
	HTTPClient   *http.Client
}

// Client fetches live streaming activity from the Twitch Helix API. Game ids
// are Helix category ids.
type Client struct {
	baseURL    string
	clientID   string
	httpClient providers.HTTPDoer
	tokens     *tokenSource
	now        func() time.Time
}

// NewClient constructs a Twitch client with the provided configuration.
func NewClient(cfg Config) *Client {
	httpClient := providers.ResolveHTTPClient(cfg.HTTPClient)
	return &Client{
		baseURL:    providers.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		clientID:   cfg.ClientID,
		httpClient: httpClient,
		tokens:     newTokenSource(cfg, httpClient, time.Now),
		now:        time.Now,
	}
}

func (c *Client) Name() domain.Provider { return domain.ProviderTwitch }

func (c *Client) FieldMap() normalize.FieldMap { return fieldMap }

func (c *Client) ExactMatchThreshold() float64 { return exactMatchThreshold }

// Search looks a game up in the Helix category index.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
	params := map[string]string{
		"query": query,
		"first": strconv.Itoa(searchFirst),
	}
	var payload searchCategoriesResponse
	if err := c.getJSON(ctx, "/search/categories", params, &payload); err != nil {
		return nil, err
	}
	return mapCandidates(query, payload.Data), nil
}

// FetchDetails aggregates the first page of live streams for one category id
// into total viewer and stream counts.
func (c *Client) FetchDetails(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error) {
	params := map[string]string{
		"game_id": string(id),
		"first":   strconv.Itoa(streamsFirst),
	}
	var payload streamsResponse
	if err := c.getJSON(ctx, "/streams", params, &payload); err != nil {
		return domain.RawRecord{}, err
	}

	return domain.RawRecord{
		Provider:  domain.ProviderTwitch,
		ID:        id,
		Values:    mapStreams(payload.Data),
		FetchedAt: c.now(),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params map[string]string, out any) error {
	resp, err := c.doAuthorized(ctx, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := providers.ClassifyStatus(providerName, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", providerName, err)
	}
	return nil
}

// doAuthorized issues an authenticated Helix request. A 401 invalidates the
// cached token and retries once with a fresh one.
func (c *Client) doAuthorized(ctx context.Context, path string, params map[string]string) (*http.Response, error) {
	resp, err := c.doOnce(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close()
	c.tokens.Invalidate()
	return c.doOnce(ctx, path, params)
}

func (c *Client) doOnce(ctx context.Context, path string, params map[string]string) (*http.Response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set(headerClientID, c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", providerName, err, providers.ErrProviderUnavailable)
	}
	return resp, nil
}
