package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"game-data-service/internal/config"
	"game-data-service/internal/metrics"
	"game-data-service/internal/quota"
)

type stubHTTPServer struct {
	addr          string
	handler       http.Handler
	listenCalls   int
	shutdownCalls int
	listenErr     error
	shutdownErr   error
}

func (s *stubHTTPServer) ListenAndServe() error {
	s.listenCalls++
	return s.listenErr
}

func (s *stubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.shutdownCalls++
	return s.shutdownErr
}

func (s *stubHTTPServer) Addr() string {
	return s.addr
}

func (s *stubHTTPServer) Handler() http.Handler {
	return s.handler
}

func testConfig() config.Config {
	cfg := config.Load()
	cfg.Port = "0"
	cfg.QueryTimeout = time.Second
	cfg.Metrics.Enabled = false
	return cfg
}

func TestProviderFactoryRegistersBudgets(t *testing.T) {
	sched := quota.NewScheduler()
	factory := newProviderFactory(nil, metrics.NewRecorder(), sched)

	adapters := factory.build(testConfig())
	if len(adapters) != 5 {
		t.Fatalf("expected 5 provider adapters, got %d", len(adapters))
	}

	names := make([]string, 0, len(adapters))
	for _, a := range adapters {
		names = append(names, string(a.Name()))
	}
	wantNames := []string{"rawg", "steam", "steamspy", "twitch", "gamalytic"}
	for i, want := range wantNames {
		if names[i] != want {
			t.Fatalf("expected adapter %d to be %s, got %s", i, want, names[i])
		}
	}

	keys := sched.Keys()
	sort.Strings(keys)
	wantKeys := []string{"gamalytic", "rawg", "steam", "steamspy", "steamspy:bulk", "twitch", "twitch:auth"}
	if len(keys) != len(wantKeys) {
		t.Fatalf("expected %d budgets, got %v", len(wantKeys), keys)
	}
	for i, want := range wantKeys {
		if keys[i] != want {
			t.Fatalf("expected budget %s, got %s", want, keys[i])
		}
	}

	bulk, ok := sched.Usage("steamspy:bulk")
	if !ok {
		t.Fatal("expected steamspy bulk budget to be registered")
	}
	if bulk.Limit != 1 || bulk.Window != 60*time.Second {
		t.Fatalf("expected bulk budget of 1 per 60s, got %d per %s", bulk.Limit, bulk.Window)
	}
}

func TestNewServerMetricsSetupFailureFallsBack(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig()
	cfg.Metrics.Enabled = true

	srv := New(cfg, nil)
	if srv.metrics == nil {
		t.Fatal("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatal("expected no metrics listener after setup failure")
	}
}

func TestNewServerMetricsDisabledSkipsListener(t *testing.T) {
	srv := New(testConfig(), nil)
	if srv.metrics == nil {
		t.Fatal("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatal("expected no metrics listener when disabled")
	}
}

func TestServerHandlerServesHealth(t *testing.T) {
	srv := New(testConfig(), nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rr.Code)
	}
}

func TestRunShutsDownOnContextCancel(t *testing.T) {
	srv := New(testConfig(), nil)
	stub := &stubHTTPServer{addr: ":0"}
	srv.httpServer = stub

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to return after context cancel")
	}

	if stub.shutdownCalls != 1 {
		t.Fatalf("expected one shutdown call, got %d", stub.shutdownCalls)
	}
}

func TestListenFailureStopsServer(t *testing.T) {
	srv := New(testConfig(), nil)
	stub := &stubHTTPServer{addr: ":0", listenErr: errors.New("bind failed")}
	srv.httpServer = stub

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected listen failure to cancel the run context")
	}
}
