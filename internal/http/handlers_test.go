package http

import (
	"context"
	"fmt"
	nethttp "net/http"
	"strings"
	"testing"
	"time"

	"game-data-service/internal/aggregate"
	"game-data-service/internal/domain"
	"game-data-service/internal/metrics"
	"game-data-service/internal/normalize"
	"game-data-service/internal/providers"
	"game-data-service/internal/quota"
	"game-data-service/internal/resolver"
	"game-data-service/internal/testutil"
)

func newTestRouter(adapters ...providers.Adapter) nethttp.Handler {
	res := resolver.New(nil, metrics.NewRecorder(), nil)
	agg := aggregate.New(adapters, res, nil)
	sched := quota.NewScheduler()
	sched.Register("steam", quota.Policy{Limit: 1, Window: time.Second})
	return NewRouter(NewHandler(agg, sched, 5*time.Second, nil))
}

func healthySteam() *testutil.StubAdapter {
	return &testutil.StubAdapter{
		Provider: domain.ProviderSteam,
		SearchFn: func(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
			return []domain.SearchCandidate{{ID: "1145360", DisplayName: "Hades", Confidence: 1.0}}, nil
		},
		DetailsFn: func(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error) {
			return domain.RawRecord{
				Provider:  domain.ProviderSteam,
				ID:        id,
				Values:    map[string]any{"player_count": float64(18000)},
				FetchedAt: time.Now(),
			}, nil
		},
		Map: normalize.FieldMap{
			{Native: "player_count", Field: domain.FieldPlayerCount, Kind: normalize.Number, Unit: "players"},
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	rr := testutil.Serve(newTestRouter(), nethttp.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
}

func TestQueryHappyPath(t *testing.T) {
	router := newTestRouter(healthySteam())

	body := `{"game": "Hades", "fields": ["playerCount"]}`
	rr := testutil.Serve(router, nethttp.MethodPost, "/query", strings.NewReader(body))
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	var resp queryResponse
	testutil.DecodeJSON(t, rr, &resp)

	if resp.Record.Key.CanonicalName != "Hades" {
		t.Fatalf("unexpected canonical name %q", resp.Record.Key.CanonicalName)
	}
	values := resp.Record.Fields[domain.FieldPlayerCount]
	if len(values) != 1 || values[0].Provider != domain.ProviderSteam {
		t.Fatalf("unexpected field values %v", values)
	}
	if resp.Chart.Type != domain.ChartBar || resp.Chart.Source != domain.ProviderSteam {
		t.Fatalf("unexpected chart intent %+v", resp.Chart)
	}
	if len(resp.Sources) != 1 || resp.Sources[0] != domain.ProviderSteam {
		t.Fatalf("unexpected sources %v", resp.Sources)
	}
}

func TestQueryRejectsUnknownField(t *testing.T) {
	router := newTestRouter(healthySteam())

	body := `{"game": "Hades", "fields": ["bogus"]}`
	rr := testutil.Serve(router, nethttp.MethodPost, "/query", strings.NewReader(body))
	testutil.AssertStatus(t, rr, nethttp.StatusBadRequest)

	var resp errorResponse
	testutil.DecodeJSON(t, rr, &resp)
	if !strings.Contains(resp.Error, "bogus") {
		t.Fatalf("error should name the field, got %q", resp.Error)
	}
}

func TestQueryRequiresGameName(t *testing.T) {
	rr := testutil.Serve(newTestRouter(healthySteam()), nethttp.MethodPost, "/query", strings.NewReader(`{}`))
	testutil.AssertStatus(t, rr, nethttp.StatusBadRequest)
}

func TestQueryRejectsGet(t *testing.T) {
	rr := testutil.Serve(newTestRouter(healthySteam()), nethttp.MethodGet, "/query", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusMethodNotAllowed)
}

func TestQueryUnresolvableNameIs404(t *testing.T) {
	empty := healthySteam()
	empty.SearchFn = func(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
		return nil, nil
	}
	router := newTestRouter(empty)

	body := `{"game": "definitely not a game", "fields": ["playerCount"]}`
	rr := testutil.Serve(router, nethttp.MethodPost, "/query", strings.NewReader(body))
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)
}

func TestQueryQuotaStarvedResolutionIs429(t *testing.T) {
	starved := healthySteam()
	starved.SearchFn = func(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
		return nil, fmt.Errorf("steam: budget spent: %w", quota.ErrQuotaExceeded)
	}
	router := newTestRouter(starved)

	// Quota starvation means the name was never actually looked up, so the
	// response must invite a retry rather than claim the game is unknown.
	body := `{"game": "Hades", "fields": ["playerCount"]}`
	rr := testutil.Serve(router, nethttp.MethodPost, "/query", strings.NewReader(body))
	testutil.AssertStatus(t, rr, nethttp.StatusTooManyRequests)
}

func TestQueryAllSourcesFailedIs502(t *testing.T) {
	broken := healthySteam()
	broken.DetailsFn = func(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error) {
		return domain.RawRecord{}, providers.ErrProviderUnavailable
	}
	router := newTestRouter(broken)

	body := `{"game": "Hades", "fields": ["playerCount"]}`
	rr := testutil.Serve(router, nethttp.MethodPost, "/query", strings.NewReader(body))
	testutil.AssertStatus(t, rr, nethttp.StatusBadGateway)

	var resp errorResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Failures[domain.FieldPlayerCount]) == 0 {
		t.Fatalf("expected per-field failure report, got %+v", resp)
	}
}

func TestProvidersEndpointListsBudgets(t *testing.T) {
	rr := testutil.Serve(newTestRouter(), nethttp.MethodGet, "/providers", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	var resp providersResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Providers) != 1 || resp.Providers[0].Key != "steam" {
		t.Fatalf("unexpected providers %+v", resp.Providers)
	}
	if resp.Providers[0].Usage.Limit != 1 {
		t.Fatalf("unexpected usage %+v", resp.Providers[0].Usage)
	}
}
