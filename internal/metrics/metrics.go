package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	quotaRejections int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type resolverStats struct {
	lookups int
	hits    int
	misses  int
}

// Recorder captures lightweight, in-memory metrics about provider calls,
// quota decisions, and identity resolution. It is intentionally simple so it
// can be swapped for a real backend later.
type Recorder struct {
	mu       sync.Mutex
	stats    map[string]*providerStats
	resolver resolverStats
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordQuotaRejection tracks a call the local scheduler refused to admit
// within the caller's deadline.
func (r *Recorder) RecordQuotaRejection(provider string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStatsLocked(provider).quotaRejections++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordQuotaRejection(provider)
	}
}

// RecordResolution tracks an identity cache lookup.
func (r *Recorder) RecordResolution(provider string, cacheHit bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.resolver.lookups++
	if cacheHit {
		r.resolver.hits++
	} else {
		r.resolver.misses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordResolution(provider, cacheHit)
	}
}

// RecordHTTPRequest tracks an inbound HTTP request.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderSnapshot is a read-only view of one provider's counters.
type ProviderSnapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	QuotaRejections int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

// Snapshot returns a copy of the counters for a provider.
func (r *Recorder) Snapshot(provider string) ProviderSnapshot {
	if r == nil {
		return ProviderSnapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		return ProviderSnapshot{}
	}
	return ProviderSnapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		QuotaRejections: stats.quotaRejections,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// ResolverLookups returns total, hit, and miss counts for the identity cache.
func (r *Recorder) ResolverLookups() (lookups, hits, misses int) {
	if r == nil {
		return 0, 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolver.lookups, r.resolver.hits, r.resolver.misses
}

// ensureStatsLocked returns the provider's counters, creating them on first
// use. Callers must hold r.mu for the lifetime of the returned pointer.
func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
