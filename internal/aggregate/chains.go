package aggregate

import "game-data-service/internal/domain"

// fallbackChains orders the sources tried for each canonical field. Within a
// chain the sources run strictly in order and the walk stops at the first
// provider that actually supplies the field; later sources are never called
// for it. Order encodes trust: the most authoritative source comes first.
var fallbackChains = map[domain.FieldName][]domain.Provider{
	domain.FieldPlayerCount:     {domain.ProviderSteam, domain.ProviderSteamSpy},
	domain.FieldPeakPlayerCount: {domain.ProviderSteamSpy},
	domain.FieldOwners:          {domain.ProviderSteamSpy},
	domain.FieldAvgPlaytime:     {domain.ProviderSteamSpy, domain.ProviderRAWG, domain.ProviderGamalytic},
	domain.FieldMedianPlaytime:  {domain.ProviderSteamSpy},
	domain.FieldReviewScore:     {domain.ProviderRAWG, domain.ProviderSteamSpy, domain.ProviderGamalytic},
	domain.FieldReviewCount:     {domain.ProviderRAWG, domain.ProviderSteamSpy, domain.ProviderGamalytic},
	domain.FieldMetacriticScore: {domain.ProviderRAWG, domain.ProviderSteam},
	domain.FieldPrice:           {domain.ProviderSteam, domain.ProviderSteamSpy, domain.ProviderGamalytic},
	domain.FieldViewerCount:     {domain.ProviderTwitch},
	domain.FieldStreamCount:     {domain.ProviderTwitch},
	domain.FieldCopiesSold:      {domain.ProviderGamalytic},
	domain.FieldRevenue:         {domain.ProviderGamalytic},
	domain.FieldReleaseDate:     {domain.ProviderRAWG, domain.ProviderSteam, domain.ProviderGamalytic},
	domain.FieldGenres:          {domain.ProviderRAWG, domain.ProviderSteam, domain.ProviderSteamSpy, domain.ProviderGamalytic},
	domain.FieldSimilarGames:    {domain.ProviderGamalytic},
}

// Chain returns the fallback order for a field, nil when no source covers it.
func Chain(field domain.FieldName) []domain.Provider {
	return fallbackChains[field]
}

// chainProviders returns the union of providers across the chains of the
// requested fields, in stable provider order.
func chainProviders(fields []domain.FieldName) []domain.Provider {
	needed := make(map[domain.Provider]bool)
	for _, f := range fields {
		for _, p := range fallbackChains[f] {
			needed[p] = true
		}
	}
	var out []domain.Provider
	for _, p := range domain.Providers() {
		if needed[p] {
			out = append(out, p)
		}
	}
	return out
}
