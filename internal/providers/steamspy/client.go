package steamspy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"game-data-service/internal/domain"
	"game-data-service/internal/normalize"
	"game-data-service/internal/providers"
)

// Config controls how the SteamSpy client reaches the analytics mirror.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client fetches ownership and playtime statistics from the SteamSpy mirror.
// The mirror is keyless; its ids are Steam app ids.
type Client struct {
	baseURL    string
	httpClient providers.HTTPDoer
	now        func() time.Time
}

// NewClient constructs a SteamSpy client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    providers.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		httpClient: providers.ResolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

func (c *Client) Name() domain.Provider { return domain.ProviderSteamSpy }

func (c *Client) FieldMap() normalize.FieldMap { return fieldMap }

func (c *Client) ExactMatchThreshold() float64 { return exactMatchThreshold }

// Search scans the first page of the bulk catalog and filters by name. The
// caller routes this through the slow bulk quota tier.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
	req, err := c.buildRequest(ctx, map[string]string{
		"request": requestAll,
		"page":    searchPage,
	})
	if err != nil {
		return nil, err
	}

	var catalog map[string]catalogEntry
	if err := c.doJSON(req, &catalog); err != nil {
		return nil, err
	}
	return mapCandidates(query, catalog), nil
}

// FetchDetails retrieves the mirror's statistics for one Steam app id.
func (c *Client) FetchDetails(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error) {
	req, err := c.buildRequest(ctx, map[string]string{
		"request": requestAppDetails,
		"appid":   string(id),
	})
	if err != nil {
		return domain.RawRecord{}, err
	}

	var payload appDetailsResponse
	if err := c.doJSON(req, &payload); err != nil {
		return domain.RawRecord{}, err
	}
	// The mirror answers unknown ids with 200 and a null name.
	if payload.Name == "" {
		return domain.RawRecord{}, fmt.Errorf("%s: app %s: %w", providerName, id, providers.ErrNotFound)
	}

	return domain.RawRecord{
		Provider:  domain.ProviderSteamSpy,
		ID:        id,
		Values:    mapDetails(payload),
		FetchedAt: c.now(),
	}, nil
}

func (c *Client) buildRequest(ctx context.Context, params map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()
	return req, nil
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
