package steamspy

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

func TestSearchScansBulkCatalog(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Get("request") != requestAll || q.Get("page") != searchPage {
			t.Fatalf("unexpected bulk query %q", req.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `{
			"1145360": {"appid": 1145360, "name": "Hades"},
			"1145361": {"appid": 1145361, "name": "Hades II"},
			"570": {"appid": 570, "name": "Dota 2"}
		}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com/api.php",
		HTTPClient: &http.Client{Transport: rt},
	})

	candidates, err := client.Search(context.Background(), "hades")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(candidates))
	}
	// The exact name match sorts first with full confidence.
	if candidates[0].ID != "1145360" || candidates[0].Confidence != confidenceExact {
		t.Fatalf("unexpected first candidate %+v", candidates[0])
	}
	if candidates[1].Confidence != confidenceSubstring {
		t.Fatalf("unexpected second candidate %+v", candidates[1])
	}
}

func TestFetchDetailsMapsOwnershipStats(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Get("request") != requestAppDetails || q.Get("appid") != "1145360" {
			t.Fatalf("unexpected details query %q", req.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `{
			"appid": 1145360,
			"name": "Hades",
			"owners": "1,000,000 .. 2,000,000",
			"average_forever": 1320,
			"median_forever": 840,
			"ccu": 17500,
			"price": "2499",
			"positive": 210000,
			"negative": 4100,
			"genre": "Action, Indie, RPG"
		}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com/api.php",
		HTTPClient: &http.Client{Transport: rt},
	})

	record, err := client.FetchDetails(context.Background(), "1145360")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if record.Values["owners"] != "1,000,000 .. 2,000,000" {
		t.Fatalf("unexpected owners %v", record.Values["owners"])
	}
	if record.Values["average_forever"] != 1320 {
		t.Fatalf("unexpected playtime %v", record.Values["average_forever"])
	}
	if record.Values["review_count"] != 214100 {
		t.Fatalf("expected positive+negative review count, got %v", record.Values["review_count"])
	}
	genres, ok := record.Values["genres"].([]string)
	if !ok || len(genres) != 3 || genres[2] != "RPG" {
		t.Fatalf("unexpected genres %v", record.Values["genres"])
	}
}

func TestFetchDetailsUnknownAppIsNotFound(t *testing.T) {
	// The mirror answers unknown ids with a 200 and a null name.
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"appid": 0, "name": ""}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com/api.php",
		HTTPClient: &http.Client{Transport: rt},
	})

	_, err := client.FetchDetails(context.Background(), "424242")
	if !errors.Is(err, providers.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMapDetailsOmitsZeroValues(t *testing.T) {
	values := mapDetails(appDetailsResponse{Name: "Bare Game"})

	for _, key := range []string{"ccu", "owners", "price", "review_count", "genres"} {
		if _, ok := values[key]; ok {
			t.Fatalf("zero-valued %s must be omitted, got %v", key, values[key])
		}
	}
}
