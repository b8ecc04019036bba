package aggregate

import (
	"context"
	"sync"

	"game-data-service/internal/domain"
	"game-data-service/internal/providers"
)

// fetcher deduplicates detail fetches within one query. Several field chains
// often point at the same provider; each provider is fetched at most once
// per query regardless of how many chains need it.
type fetcher struct {
	adapters map[domain.Provider]providers.Adapter
	key      domain.CanonicalGameKey

	mu      sync.Mutex
	entries map[domain.Provider]*fetchEntry
}

type fetchEntry struct {
	once sync.Once
	raw  domain.RawRecord
	err  error
}

func newFetcher(adapters map[domain.Provider]providers.Adapter, key domain.CanonicalGameKey) *fetcher {
	return &fetcher{
		adapters: adapters,
		key:      key,
		entries:  make(map[domain.Provider]*fetchEntry),
	}
}

func (f *fetcher) fetch(ctx context.Context, provider domain.Provider) (domain.RawRecord, error) {
	f.mu.Lock()
	entry, ok := f.entries[provider]
	if !ok {
		entry = &fetchEntry{}
		f.entries[provider] = entry
	}
	f.mu.Unlock()

	entry.once.Do(func() {
		entry.raw, entry.err = f.adapters[provider].FetchDetails(ctx, f.key.ProviderIDs[provider])
	})
	return entry.raw, entry.err
}

// fetched returns every successfully fetched payload in stable provider
// order. Call only after all chain walks have finished.
func (f *fetcher) fetched() []domain.RawRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.RawRecord
	for _, p := range domain.Providers() {
		if entry, ok := f.entries[p]; ok && entry.err == nil {
			out = append(out, entry.raw)
		}
	}
	return out
}
