package providers

import (
	"context"

	"game-data-service/internal/domain"
	"game-data-service/internal/normalize"
)

// Adapter wraps one upstream gaming data source behind a uniform capability
// surface. Implementations return provider-native payloads; normalization is
// the merge layer's job, driven by the adapter's FieldMap.
type Adapter interface {
	// Name identifies the provider for logging, metrics, and provenance.
	Name() domain.Provider

	// Search looks up candidate games for a free-text query, ordered by
	// provider-reported relevance. No match is an empty slice, not an error;
	// transport or auth failure is ErrProviderUnavailable.
	Search(ctx context.Context, query string) ([]domain.SearchCandidate, error)

	// FetchDetails retrieves the provider-native record for an id. It fails
	// with ErrNotFound when the id no longer resolves, ErrProviderUnavailable
	// on transport/auth failure, and *RateLimitError when the provider
	// signals throttling.
	FetchDetails(ctx context.Context, id domain.ProviderID) (domain.RawRecord, error)

	// FieldMap returns the adapter's static field/unit translation table.
	FieldMap() normalize.FieldMap

	// ExactMatchThreshold is the confidence at or above which a search
	// candidate counts as an exact match for identity resolution.
	ExactMatchThreshold() float64
}
