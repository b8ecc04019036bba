package providers

import (
	"context"
	"log/slog"

	"game-data-service/internal/domain"
	"game-data-service/internal/logging"
	"game-data-service/internal/normalize"
	"game-data-service/internal/quota"
)

// ThrottleKeys names the scheduler budgets a throttled adapter draws from.
// Search and details may use different tiers (SteamSpy's bulk search shares
// the slow 60s window while appdetails uses the steady per-second budget).
// DetailsDraws covers adapters whose details fetch fans out into more than
// one upstream request; each wire call gets its own admission (zero means
// one).
type ThrottleKeys struct {
	Search       string
	Details      string
	DetailsDraws int
}

// throttledAdapter gates every call through the quota scheduler before
// delegating. Admission is counted before the upstream request is sent, so
// the quota invariant holds even when the call later fails.
type throttledAdapter struct {
	next   Adapter
	sched  *quota.Scheduler
	keys   ThrottleKeys
	logger *slog.Logger
}

// NewThrottledAdapter wraps next so every capability call first passes the
// scheduler's Admit for the matching budget key.
func NewThrottledAdapter(next Adapter, sched *quota.Scheduler, keys ThrottleKeys, logger *slog.Logger) Adapter {
	if keys.Search == "" {
		keys.Search = string(next.Name())
	}
	if keys.Details == "" {
		keys.Details = string(next.Name())
	}
	if keys.DetailsDraws < 1 {
		keys.DetailsDraws = 1
	}
	return &throttledAdapter{next: next, sched: sched, keys: keys, logger: logger}
}

func (a *throttledAdapter) Name() domain.Provider { return a.next.Name() }

func (a *throttledAdapter) FieldMap() normalize.FieldMap { return a.next.FieldMap() }

func (a *throttledAdapter) ExactMatchThreshold() float64 { return a.next.ExactMatchThreshold() }

func (a *throttledAdapter) Search(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
	if err := a.sched.Admit(ctx, a.keys.Search); err != nil {
		logging.Warn(a.logger, "search not admitted",
			slog.String(logging.FieldProvider, string(a.next.Name())), "error", err)
		return nil, err
	}
	return a.next.Search(ctx, query)
}

func (a *throttledAdapter) FetchDetails(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error) {
	for i := 0; i < a.keys.DetailsDraws; i++ {
		if err := a.sched.Admit(ctx, a.keys.Details); err != nil {
			logging.Warn(a.logger, "details fetch not admitted",
				slog.String(logging.FieldProvider, string(a.next.Name())), "error", err)
			return domain.RawRecord{}, err
		}
	}
	return a.next.FetchDetails(ctx, id)
}
