package steam

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

// Config controls how the Steam client reaches the Web and Store APIs.
type Config struct {
	WebBaseURL   string
	StoreBaseURL string
	APIKey       string
	HTTPClient   *http.Client
}

// Client combines the Steam Store API (search, app details) with the Web API
// (live player counts). The store endpoints are keyless; the Web API key is
// attached when configured.
type Client struct {
	webBaseURL   string
	storeBaseURL string
	apiKey       string
	httpClient   providers.HTTPDoer
	now          func() time.Time
}

// NewClient constructs a Steam client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		webBaseURL:   providers.NormalizeBaseURL(cfg.WebBaseURL, defaultWebBaseURL),
		storeBaseURL: providers.NormalizeBaseURL(cfg.StoreBaseURL, defaultStoreBaseURL),
		apiKey:       cfg.APIKey,
		httpClient:   providers.ResolveHTTPClient(cfg.HTTPClient),
		now:          time.Now,
	}
}

func (c *Client) Name() domain.Provider { return domain.ProviderSteam }

func (c *Client) FieldMap() normalize.FieldMap { return fieldMap }

func (c *Client) ExactMatchThreshold() float64 { return exactMatchThreshold }

// Search queries the Steam store search endpoint by name.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.storeBaseURL+"/storesearch/", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("term", query)
	q.Set("cc", countryCode)
	q.Set("l", language)
	req.URL.RawQuery = q.Encode()

	var payload storeSearchResponse
	if err := c.doJSON(req, &payload); err != nil {
		return nil, err
	}
	return mapCandidates(query, payload.Items), nil
}

// FetchDetails combines store app details with the live player count into one
// provider-native record. A failed player count lookup degrades to store data
// only; a missing store entry is ErrNotFound.
func (c *Client) FetchDetails(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error) {
	details, err := c.fetchAppDetails(ctx, id)
	if err != nil {
		return domain.RawRecord{}, err
	}

	values := mapDetails(details)

	if count, countErr := c.fetchPlayerCount(ctx, id); countErr == nil {
		values["player_count"] = count
	}

	return domain.RawRecord{
		Provider:  domain.ProviderSteam,
		ID:        id,
		Values:    values,
		FetchedAt: c.now(),
	}, nil
}

func (c *Client) fetchAppDetails(ctx context.Context, id domain.ProviderID) (appDetailsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.storeBaseURL+"/appdetails", nil)
	if err != nil {
		return appDetailsData{}, err
	}
	q := req.URL.Query()
	q.Set("appids", string(id))
	q.Set("cc", countryCode)
	q.Set("l", language)
	req.URL.RawQuery = q.Encode()

	var payload map[string]appDetailsEntry
	if err := c.doJSON(req, &payload); err != nil {
		return appDetailsData{}, err
	}

	entry, ok := payload[string(id)]
	if !ok || !entry.Success {
		return appDetailsData{}, fmt.Errorf("%s: app %s: %w", providerName, id, providers.ErrNotFound)
	}
	return entry.Data, nil
}

func (c *Client) fetchPlayerCount(ctx context.Context, id domain.ProviderID) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.webBaseURL+playerCountPath, nil)
	if err != nil {
		return 0, err
	}
	q := req.URL.Query()
	q.Set("appid", string(id))
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	req.URL.RawQuery = q.Encode()

	var payload playerCountResponse
	if err := c.doJSON(req, &payload); err != nil {
		return 0, err
	}
	if payload.Response.Result != 1 {
		return 0, fmt.Errorf("%s: no player count for app %s: %w", providerName, id, providers.ErrNotFound)
	}
	return payload.Response.PlayerCount, nil
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
