package config

import "time"

const (
	envPort         = "PORT"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envQueryTimeout = "QUERY_TIMEOUT"
	envResolverDB   = "RESOLVER_CACHE_PATH"

	defaultPort        = "4000"
	defaultMetricsPort = "9090"
	// Upper bound on one aggregation request; every upstream call inherits it.
	defaultQueryTimeout = 30 * Duration(time.Second)
)
