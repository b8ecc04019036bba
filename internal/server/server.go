package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"game-data-service/internal/aggregate"
	"game-data-service/internal/config"
	httpapi "game-data-service/internal/http"
	"game-data-service/internal/logging"
	"game-data-service/internal/metrics"
	"game-data-service/internal/quota"
	"game-data-service/internal/resolver"
	"game-data-service/internal/resolver/cachedb"
)

var metricsSetup = metrics.Setup

// Server owns the engine's runtime pieces: the quota scheduler, the decorated
// provider adapters, the aggregator, and the HTTP and metrics listeners.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	sched         *quota.Scheduler
	aggregator    *aggregate.Aggregator
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	cacheClose    func() error
}

// New constructs a server with default provider wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	sched := quota.NewScheduler()
	adapters := newProviderFactory(logger, recorder, sched).build(cfg)

	cache, cacheClose := buildResolverCache(cfg, logger)
	res := resolver.New(cache, recorder, logger)
	agg := aggregate.New(adapters, res, logger)

	handler := httpapi.NewHandler(agg, sched, time.Duration(cfg.QueryTimeout), logger)
	router := httpapi.NewRouter(handler)
	wrapped := httpapi.LoggingMiddleware(logger, httpapi.MetricsMiddleware(recorder, router))

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		sched:         sched,
		aggregator:    agg,
		httpServer:    newAPIListener(cfg.Port, wrapped),
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		cacheClose:    cacheClose,
	}
}

// buildResolverCache opens the persistent cache when a path is configured.
// Failure falls back to the in-process cache; resolved ids just won't
// survive a restart.
func buildResolverCache(cfg config.Config, logger *slog.Logger) (resolver.Cache, func() error) {
	if cfg.ResolverCache == "" {
		return nil, nil
	}
	store, err := cachedb.Open(cfg.ResolverCache, logger)
	if err != nil {
		logging.Warn(logger, "resolver cache unavailable, using in-memory cache",
			"path", cfg.ResolverCache, "error", err)
		return nil, nil
	}
	return store, store.Close
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newMetricsListener(recCfg.Port, handler)
	}
	return rec, metricsSrv, shutdown
}

// Run starts the HTTP and metrics servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}
	if s.cacheClose != nil {
		if err := s.cacheClose(); err != nil {
			logging.Warn(s.logger, "resolver cache close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
