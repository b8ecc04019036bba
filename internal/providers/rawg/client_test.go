package rawg

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"game-data-service/internal/providers"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestSearchSendsKeyAndMapsCandidates(t *testing.T) {
	var capturedQuery string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/games" {
			t.Fatalf("expected /games path, got %s", req.URL.Path)
		}
		capturedQuery = req.URL.RawQuery
		return jsonResponse(http.StatusOK, `{
			"results": [
				{"id": 274, "name": "Hades"},
				{"id": 9999, "name": "Hades II"}
			]
		}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
	})

	candidates, err := client.Search(context.Background(), "Hades")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(capturedQuery, "key=secret") {
		t.Fatalf("api key missing from query %q", capturedQuery)
	}
	if !strings.Contains(capturedQuery, "search=Hades") {
		t.Fatalf("search term missing from query %q", capturedQuery)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].ID != "274" || candidates[0].Confidence != 1.0 {
		t.Fatalf("unexpected exact candidate %+v", candidates[0])
	}
	if candidates[1].Confidence != confidenceSubstring {
		t.Fatalf("expected substring confidence for %q, got %v", candidates[1].DisplayName, candidates[1].Confidence)
	}
}

func TestSearchWithoutKeyFailsWithCredentialsError(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://example.com"})

	_, err := client.Search(context.Background(), "Hades")
	credErr, ok := providers.AsCredentialsError(err)
	if !ok {
		t.Fatalf("expected CredentialsError, got %v", err)
	}
	want := "Unable to access rawg API, please add an API key or check with your system admin."
	if credErr.Error() != want {
		t.Fatalf("unexpected message %q", credErr.Error())
	}
	if !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatal("credentials failure must unwrap to ErrProviderUnavailable")
	}
}

func TestFetchDetailsMapsNativeValues(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/games/274" {
			t.Fatalf("expected /games/274 path, got %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{
			"id": 274,
			"name": "Hades",
			"released": "2020-09-17",
			"rating": 4.5,
			"ratings_count": 4100,
			"metacritic": 93,
			"playtime": 21,
			"genres": [{"name": "Action"}, {"name": "Indie"}]
		}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
	})

	record, err := client.FetchDetails(context.Background(), "274")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if record.Values["rating"] != 4.5 {
		t.Fatalf("unexpected rating %v", record.Values["rating"])
	}
	if record.Values["playtime"] != 21 {
		t.Fatalf("unexpected playtime %v", record.Values["playtime"])
	}
	genres, ok := record.Values["genres"].([]string)
	if !ok || len(genres) != 2 || genres[0] != "Action" {
		t.Fatalf("unexpected genres %v", record.Values["genres"])
	}
	if record.FetchedAt.IsZero() {
		t.Fatal("expected fetch timestamp")
	}
}

func TestFetchDetailsEmptyPayloadIsNotFound(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
	})

	_, err := client.FetchDetails(context.Background(), "274")
	if !errors.Is(err, providers.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRateLimitResponseCarriesRetryAfter(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, `{}`)
		resp.Header.Set("Retry-After", "7")
		return resp, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
	})

	_, err := client.Search(context.Background(), "Hades")
	rlErr, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rlErr.RetryAfter.Seconds() != 7 {
		t.Fatalf("unexpected retry-after %v", rlErr.RetryAfter)
	}
}

func TestUnauthorizedResponseIsCredentialsError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		APIKey:     "rejected",
		HTTPClient: &http.Client{Transport: rt},
	})

	_, err := client.Search(context.Background(), "Hades")
	if _, ok := providers.AsCredentialsError(err); !ok {
		t.Fatalf("expected CredentialsError, got %v", err)
	}
}
