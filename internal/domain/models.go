package domain

import "time"

// Provider identifies one upstream gaming data source.
type Provider string

const (
	ProviderRAWG      Provider = "rawg"
	ProviderSteam     Provider = "steam"
	ProviderSteamSpy  Provider = "steamspy"
	ProviderTwitch    Provider = "twitch"
	ProviderGamalytic Provider = "gamalytic"
)

// Providers lists every configured source in a stable order.
func Providers() []Provider {
	return []Provider{ProviderRAWG, ProviderSteam, ProviderSteamSpy, ProviderTwitch, ProviderGamalytic}
}

// ProviderID is an upstream identifier whose semantics are private to one
// provider. IDs are never compared across providers.
type ProviderID string

// FieldName is a logical, provider-independent field of the canonical record.
type FieldName string

const (
	FieldPlayerCount      FieldName = "playerCount"
	FieldPeakPlayerCount  FieldName = "peakPlayerCount"
	FieldOwners           FieldName = "owners"
	FieldAvgPlaytime      FieldName = "averagePlaytimeMinutes"
	FieldMedianPlaytime   FieldName = "medianPlaytimeMinutes"
	FieldReviewScore      FieldName = "reviewScore"
	FieldReviewCount      FieldName = "reviewCount"
	FieldMetacriticScore  FieldName = "metacriticScore"
	FieldPrice            FieldName = "priceUSDCents"
	FieldViewerCount      FieldName = "viewerCount"
	FieldStreamCount      FieldName = "streamCount"
	FieldCopiesSold       FieldName = "copiesSold"
	FieldRevenue          FieldName = "revenueUSDCents"
	FieldReleaseDate      FieldName = "releaseDate"
	FieldGenres           FieldName = "genres"
	FieldSimilarGames     FieldName = "similarGames"
)

// KnownFields returns every logical field the engine can answer.
func KnownFields() []FieldName {
	return []FieldName{
		FieldPlayerCount, FieldPeakPlayerCount, FieldOwners,
		FieldAvgPlaytime, FieldMedianPlaytime,
		FieldReviewScore, FieldReviewCount, FieldMetacriticScore,
		FieldPrice, FieldViewerCount, FieldStreamCount,
		FieldCopiesSold, FieldRevenue,
		FieldReleaseDate, FieldGenres, FieldSimilarGames,
	}
}

// IsKnownField reports whether name is a field the engine can answer.
func IsKnownField(name FieldName) bool {
	for _, f := range KnownFields() {
		if f == name {
			return true
		}
	}
	return false
}

// SearchCandidate is one result from a provider's search capability.
// Confidence is provider-defined: 1.0 means the provider reported an exact
// match, lower values are fuzzier.
type SearchCandidate struct {
	ID          ProviderID `json:"id"`
	DisplayName string     `json:"displayName"`
	Confidence  float64    `json:"confidence"`
}

// CanonicalGameKey is the resolver's stable identity for one game across
// providers. At most one key exists per normalized name at any time.
type CanonicalGameKey struct {
	CanonicalName string                  `json:"canonicalName"`
	ProviderIDs   map[Provider]ProviderID `json:"providerIds"`
	// Approximate marks mappings accepted without an exact-match signal.
	Approximate map[Provider]bool `json:"approximate,omitempty"`
}

// FieldValue is one normalized datum with its provenance.
type FieldValue struct {
	Value     any       `json:"value"`
	Provider  Provider  `json:"source"`
	Unit      string    `json:"unit,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CanonicalRecord is the merged, unit-normalized view of one game. Fields
// keep one FieldValue per contributing provider so provenance survives the
// merge; requested fields no provider answered land in Missing.
type CanonicalRecord struct {
	Key     CanonicalGameKey           `json:"key"`
	Fields  map[FieldName][]FieldValue `json:"fields"`
	Missing []FieldName                `json:"missing,omitempty"`
}

// Sources returns the distinct providers that contributed at least one field.
func (r CanonicalRecord) Sources() []Provider {
	seen := make(map[Provider]bool)
	var out []Provider
	for _, values := range r.Fields {
		for _, v := range values {
			if !seen[v.Provider] {
				seen[v.Provider] = true
				out = append(out, v.Provider)
			}
		}
	}
	return out
}

// RawRecord is a provider-native payload plus the provider that produced it.
// Values keep the provider's own field names and units; the normalize package
// translates them via the adapter's field map.
type RawRecord struct {
	Provider  Provider       `json:"provider"`
	ID        ProviderID     `json:"id"`
	Values    map[string]any `json:"values"`
	FetchedAt time.Time      `json:"fetchedAt"`
}

// Query is the inbound logical query descriptor from the intent layer.
type Query struct {
	GameName string      `json:"game"`
	Fields   []FieldName `json:"fields"`
}
