package providers

import (
	"context"
	"errors"
	"time"

	"game-data-service/internal/domain"
	"game-data-service/internal/metrics"
	"game-data-service/internal/normalize"
	"game-data-service/internal/quota"
)

// instrumentedAdapter records per-call metrics around an Adapter.
type instrumentedAdapter struct {
	next     Adapter
	recorder *metrics.Recorder
}

// NewInstrumentedAdapter wraps next so calls feed the metrics recorder.
func NewInstrumentedAdapter(next Adapter, recorder *metrics.Recorder) Adapter {
	if recorder == nil {
		return next
	}
	return &instrumentedAdapter{next: next, recorder: recorder}
}

func (a *instrumentedAdapter) Name() domain.Provider { return a.next.Name() }

func (a *instrumentedAdapter) FieldMap() normalize.FieldMap { return a.next.FieldMap() }

func (a *instrumentedAdapter) ExactMatchThreshold() float64 { return a.next.ExactMatchThreshold() }

func (a *instrumentedAdapter) Search(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
	start := time.Now()
	candidates, err := a.next.Search(ctx, query)
	a.record(start, err)
	return candidates, err
}

func (a *instrumentedAdapter) FetchDetails(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error) {
	start := time.Now()
	record, err := a.next.FetchDetails(ctx, id)
	a.record(start, err)
	return record, err
}

func (a *instrumentedAdapter) record(start time.Time, err error) {
	name := string(a.next.Name())
	a.recorder.RecordProviderAttempt(name, time.Since(start), err)
	if rlErr, ok := AsRateLimitError(err); ok {
		a.recorder.RecordRateLimit(name, rlErr.RetryAfter)
	}
	// The instrumented adapter sits outside the throttle, so scheduler
	// refusals surface here as quota errors.
	if errors.Is(err, quota.ErrQuotaExceeded) {
		a.recorder.RecordQuotaRejection(name)
	}
}
