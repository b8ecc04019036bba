package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"game-data-service/internal/domain"
	"game-data-service/internal/logging"
	"game-data-service/internal/metrics"
	"game-data-service/internal/providers"
)

var errNoMatch = errors.New("no matching candidates")

// Resolver maps user-supplied game names onto per-provider ids and maintains
// the canonical key for each normalized name. Concurrent resolutions of the
// same name share one round of provider searches.
type Resolver struct {
	cache   Cache
	group   singleflight.Group
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// New constructs a Resolver. A nil cache falls back to an in-process map.
func New(cache Cache, recorder *metrics.Recorder, logger *slog.Logger) *Resolver {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Resolver{cache: cache, metrics: recorder, logger: logger}
}

// Resolve returns the canonical key for name, searching each adapter that
// does not yet have a mapping. Resolving the same name twice is idempotent:
// mapped providers are served from the cache without another search. The
// call fails only when no provider maps the name at all.
func (r *Resolver) Resolve(ctx context.Context, name string, adapters []providers.Adapter) (domain.CanonicalGameKey, error) {
	normalized := NormalizeName(name)

	result, err, _ := r.group.Do(normalized, func() (any, error) {
		return r.resolve(ctx, name, normalized, adapters)
	})
	if err != nil {
		return domain.CanonicalGameKey{}, err
	}
	return result.(domain.CanonicalGameKey), nil
}

func (r *Resolver) resolve(ctx context.Context, name, normalized string, adapters []providers.Adapter) (domain.CanonicalGameKey, error) {
	key, cached := r.cache.Get(normalized)
	key = cloneKey(key)
	if !cached {
		key.ProviderIDs = make(map[domain.Provider]domain.ProviderID)
	}

	var pending []providers.Adapter
	for _, adapter := range adapters {
		if _, ok := key.ProviderIDs[adapter.Name()]; ok {
			r.record(adapter.Name(), true)
			continue
		}
		pending = append(pending, adapter)
	}
	if len(pending) == 0 {
		logging.Debug(r.logger, "identity served from cache",
			logging.FieldGame, normalized, logging.FieldCount, len(key.ProviderIDs))
		return key, nil
	}

	variations := Variations(name)

	var (
		mu             sync.Mutex
		causes         = make(map[domain.Provider]error)
		canonicalExact = key.CanonicalName != ""
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, adapter := range pending {
		adapter := adapter
		g.Go(func() error {
			m, err := r.searchProvider(gctx, adapter, variations)
			provider := adapter.Name()
			r.record(provider, false)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				causes[provider] = err
				logging.Warn(r.logger, "identity resolution failed",
					logging.FieldProvider, string(provider),
					logging.FieldGame, name,
					"error", err)
				return nil
			}
			key.ProviderIDs[provider] = m.candidate.ID
			if m.approximate {
				if key.Approximate == nil {
					key.Approximate = make(map[domain.Provider]bool)
				}
				key.Approximate[provider] = true
			}
			// An exact match's display name wins over an approximate one.
			if key.CanonicalName == "" || (!m.approximate && !canonicalExact) {
				key.CanonicalName = m.candidate.DisplayName
				canonicalExact = !m.approximate
			}
			return nil
		})
	}
	g.Wait()

	if len(key.ProviderIDs) == 0 {
		return domain.CanonicalGameKey{}, &ResolutionFailure{
			Name:       name,
			Variations: variations,
			Causes:     causes,
		}
	}
	if key.CanonicalName == "" {
		key.CanonicalName = strings.Join(strings.Fields(name), " ")
	}
	r.cache.Put(normalized, key)
	return key, nil
}

type match struct {
	candidate   domain.SearchCandidate
	approximate bool
}

// searchProvider tries each variation in order, accepting the first exact
// match. When no variation matches exactly, the highest-confidence candidate
// of the first variation that returned anything is accepted as approximate.
// A transport error aborts immediately rather than burning quota on more
// variations.
func (r *Resolver) searchProvider(ctx context.Context, adapter providers.Adapter, variations []string) (match, error) {
	var fallback *domain.SearchCandidate
	for _, variation := range variations {
		candidates, err := adapter.Search(ctx, variation)
		if err != nil {
			return match{}, err
		}
		if len(candidates) == 0 {
			continue
		}
		for _, c := range candidates {
			if c.Confidence >= adapter.ExactMatchThreshold() || strings.EqualFold(c.DisplayName, variation) {
				return match{candidate: c}, nil
			}
		}
		if fallback == nil {
			top := candidates[0]
			for _, c := range candidates[1:] {
				if c.Confidence > top.Confidence {
					top = c
				}
			}
			fallback = &top
		}
	}
	if fallback != nil {
		return match{candidate: *fallback, approximate: true}, nil
	}
	return match{}, errNoMatch
}

func (r *Resolver) record(provider domain.Provider, cacheHit bool) {
	if r.metrics != nil {
		r.metrics.RecordResolution(string(provider), cacheHit)
	}
}

// cloneKey deep-copies the maps so cached keys are never mutated in place.
func cloneKey(key domain.CanonicalGameKey) domain.CanonicalGameKey {
	out := domain.CanonicalGameKey{CanonicalName: key.CanonicalName}
	if key.ProviderIDs != nil {
		out.ProviderIDs = make(map[domain.Provider]domain.ProviderID, len(key.ProviderIDs))
		for p, id := range key.ProviderIDs {
			out.ProviderIDs[p] = id
		}
	}
	if key.Approximate != nil {
		out.Approximate = make(map[domain.Provider]bool, len(key.Approximate))
		for p, v := range key.Approximate {
			out.Approximate[p] = v
		}
	}
	return out
}
