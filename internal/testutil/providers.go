package testutil

import (
	"context"

	"game-data-service/internal/domain"
	"game-data-service/internal/normalize"
)

// StubAdapter is a configurable fake provider for resolver and aggregator
// tests. Unset functions return empty results.
type StubAdapter struct {
	Provider  domain.Provider
	SearchFn  func(ctx context.Context, query string) ([]domain.SearchCandidate, error)
	DetailsFn func(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error)
	Map       normalize.FieldMap
	Threshold float64
}

func (s *StubAdapter) Name() domain.Provider { return s.Provider }

func (s *StubAdapter) Search(ctx context.Context, query string) ([]domain.SearchCandidate, error) {
	if s.SearchFn == nil {
		return nil, nil
	}
	return s.SearchFn(ctx, query)
}

func (s *StubAdapter) FetchDetails(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error) {
	if s.DetailsFn == nil {
		return domain.RawRecord{Provider: s.Provider, ID: id}, nil
	}
	return s.DetailsFn(ctx, id)
}

func (s *StubAdapter) FieldMap() normalize.FieldMap { return s.Map }

func (s *StubAdapter) ExactMatchThreshold() float64 {
	if s.Threshold == 0 {
		return 0.95
	}
	return s.Threshold
}
