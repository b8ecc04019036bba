package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"game-data-service/internal/domain"
	"game-data-service/internal/logging"
	"game-data-service/internal/normalize"
	"game-data-service/internal/providers"
	"game-data-service/internal/resolver"
)

// ErrNoData marks a query where every requested field failed across every
// source in its chain.
var ErrNoData = errors.New("no data from any source")

// Result is the outcome of one aggregated query: the merged record plus,
// for each requested field no source could supply, the full list of sources
// tried and why each one failed.
type Result struct {
	Record        domain.CanonicalRecord
	FieldFailures map[domain.FieldName]*AllSourcesFailed
}

// Aggregator walks each requested field's fallback chain, fetching from
// providers at most once per query, and merges whatever real data came back.
// Absent data stays absent; nothing is ever fabricated to fill a gap.
type Aggregator struct {
	adapters map[domain.Provider]providers.Adapter
	resolver *resolver.Resolver
	logger   *slog.Logger
}

// New constructs an Aggregator over the given adapters.
func New(adapters []providers.Adapter, res *resolver.Resolver, logger *slog.Logger) *Aggregator {
	byName := make(map[domain.Provider]providers.Adapter, len(adapters))
	for _, a := range adapters {
		byName[a.Name()] = a
	}
	return &Aggregator{adapters: byName, resolver: res, logger: logger}
}

// Query resolves the game's identity, then runs every requested field's
// fallback chain concurrently. It fails outright only when the name resolves
// on no provider or when not a single field could be answered.
func (a *Aggregator) Query(ctx context.Context, q domain.Query) (Result, error) {
	fields := q.Fields
	if len(fields) == 0 {
		fields = domain.KnownFields()
	}
	for _, f := range fields {
		if !domain.IsKnownField(f) {
			return Result{}, fmt.Errorf("unknown field %q", f)
		}
	}

	var resolveWith []providers.Adapter
	for _, p := range chainProviders(fields) {
		if adapter, ok := a.adapters[p]; ok {
			resolveWith = append(resolveWith, adapter)
		}
	}
	key, err := a.resolver.Resolve(ctx, q.GameName, resolveWith)
	if err != nil {
		return Result{}, err
	}

	fetch := newFetcher(a.adapters, key)

	var (
		mu       sync.Mutex
		failures = make(map[domain.FieldName]*AllSourcesFailed)
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, field := range fields {
		field := field
		g.Go(func() error {
			failure := a.walkChain(gctx, fetch, key, field)
			if failure != nil {
				mu.Lock()
				failures[field] = failure
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()

	maps := make(map[domain.Provider]normalize.FieldMap, len(a.adapters))
	for p, adapter := range a.adapters {
		maps[p] = adapter.FieldMap()
	}
	record := normalize.Merge(key, fields, fetch.fetched(), maps)

	if len(record.Fields) == 0 {
		return Result{Record: record, FieldFailures: failures},
			fmt.Errorf("%q: %w", q.GameName, ErrNoData)
	}
	return Result{Record: record, FieldFailures: failures}, nil
}

// walkChain tries the field's sources in order, stopping at the first that
// supplies a value. It returns the accumulated attempts when every source
// fails, nil on success.
func (a *Aggregator) walkChain(ctx context.Context, fetch *fetcher, key domain.CanonicalGameKey, field domain.FieldName) *AllSourcesFailed {
	chain := Chain(field)
	if len(chain) == 0 {
		return &AllSourcesFailed{Field: field, Attempts: []Attempt{{Reason: "no source covers this field"}}}
	}

	var attempts []Attempt
	for _, provider := range chain {
		adapter, ok := a.adapters[provider]
		if !ok {
			attempts = append(attempts, Attempt{Provider: provider, Reason: "provider not configured"})
			continue
		}
		if _, ok := key.ProviderIDs[provider]; !ok {
			attempts = append(attempts, Attempt{Provider: provider, Reason: "identity not resolved"})
			continue
		}

		raw, err := fetch.fetch(ctx, provider)
		if err != nil {
			attempts = append(attempts, Attempt{Provider: provider, Reason: err.Error()})
			logging.Warn(a.logger, "source failed, trying next in chain",
				logging.FieldProvider, string(provider),
				logging.FieldField, string(field),
				"error", err)
			continue
		}
		if !hasField(adapter.FieldMap(), raw, field) {
			attempts = append(attempts, Attempt{Provider: provider, Reason: "value absent from payload"})
			continue
		}
		return nil
	}
	return &AllSourcesFailed{Field: field, Attempts: attempts}
}

// hasField reports whether the raw payload carries any native value that
// maps onto the canonical field.
func hasField(m normalize.FieldMap, raw domain.RawRecord, field domain.FieldName) bool {
	for _, entry := range m {
		if entry.Field != field {
			continue
		}
		if v, ok := raw.Values[entry.Native]; ok && v != nil {
			return true
		}
	}
	return false
}
