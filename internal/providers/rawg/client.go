package rawg

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

// Config controls how the RAWG client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	PageSize   int
}

// Client fetches game metadata and review data from the RAWG database.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient providers.HTTPDoer
	pageSize   int
	now        func() time.Time
}

// NewClient constructs a RAWG client with the provided configuration.
func NewClient(cfg Config) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		baseURL:    providers.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		apiKey:     cfg.APIKey,
		httpClient: providers.ResolveHTTPClient(cfg.HTTPClient),
		pageSize:   pageSize,
		now:        time.Now,
	}
}

func (c *Client) Name() domain.Provider { return domain.ProviderRAWG }

func (c *Client) FieldMap() normalize.FieldMap { return fieldMap }

func (c *Client) ExactMatchThreshold() float64 { return exactMatchThreshold }

// Search queries the RAWG games index by free-text name.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
	if c.apiKey == "" {
		return nil, &providers.CredentialsError{Provider: providerName}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("search", query)
	q.Set("page_size", strconv.Itoa(c.pageSize))
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	var payload searchResponse
	if err := c.doJSON(req, &payload); err != nil {
		return nil, err
	}
	return mapCandidates(query, payload.Results), nil
}

// FetchDetails retrieves full metadata for one RAWG game id.
func (c *Client) FetchDetails(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error) {
	if c.apiKey == "" {
		return domain.RawRecord{}, &providers.CredentialsError{Provider: providerName}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games/"+string(id), nil)
	if err != nil {
		return domain.RawRecord{}, err
	}
	q := req.URL.Query()
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	var payload gameResponse
	if err := c.doJSON(req, &payload); err != nil {
		return domain.RawRecord{}, err
	}
	if payload.ID == 0 {
		return domain.RawRecord{}, fmt.Errorf("%s: empty detail payload: %w", providerName, providers.ErrNotFound)
	}

	return domain.RawRecord{
		Provider:  domain.ProviderRAWG,
		ID:        id,
		Values:    mapDetails(payload),
		FetchedAt: c.now(),
	}, nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %v: %w", providerName, err, providers.ErrProviderUnavailable)
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
