package steamspy

import (
	"sort"
	"strconv"
	"strings"

	"game-data-service/internal/domain"
	"game-data-service/internal/normalize"
)

// ccu is yesterday's peak concurrent count; the mirror serves it both as the
// live player estimate and the peak figure.
var fieldMap = normalize.FieldMap{
	{Native: "ccu", Field: domain.FieldPlayerCount, Kind: normalize.Number, Unit: "players"},
	{Native: "ccu", Field: domain.FieldPeakPlayerCount, Kind: normalize.Number, Unit: "players"},
	{Native: "owners", Field: domain.FieldOwners, Kind: normalize.OwnerRange, Unit: "estimated_owners"},
	{Native: "average_forever", Field: domain.FieldAvgPlaytime, Kind: normalize.Number, Unit: "minutes"},
	{Native: "median_forever", Field: domain.FieldMedianPlaytime, Kind: normalize.Number, Unit: "minutes"},
	{Native: "price", Field: domain.FieldPrice, Kind: normalize.Number, Unit: "usd_cents"},
	{Native: "userscore", Field: domain.FieldReviewScore, Kind: normalize.Number, Unit: "percent"},
	{Native: "review_count", Field: domain.FieldReviewCount, Kind: normalize.Number, Unit: "reviews"},
	{Native: "genres", Field: domain.FieldGenres, Kind: normalize.StringList},
}

func mapCandidates(query string, catalog map[string]catalogEntry) []domain.SearchCandidate {
	queryLower := strings.ToLower(query)
	var candidates []domain.SearchCandidate

	for appID, entry := range catalog {
		if _, err := strconv.Atoi(appID); err != nil {
			continue
		}
		nameLower := strings.ToLower(entry.Name)
		if !strings.Contains(nameLower, queryLower) {
			continue
		}
		conf := confidenceSubstring
		if nameLower == queryLower {
			conf = confidenceExact
		}
		candidates = append(candidates, domain.SearchCandidate{
			ID:          domain.ProviderID(appID),
			DisplayName: entry.Name,
			Confidence:  conf,
		})
	}

	// Map iteration is unordered; sort for a deterministic, relevance-first list.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].DisplayName < candidates[j].DisplayName
	})
	if len(candidates) > maxSearchMatches {
		candidates = candidates[:maxSearchMatches]
	}
	return candidates
}

func mapDetails(payload appDetailsResponse) map[string]any {
	values := map[string]any{
		"name": payload.Name,
	}
	if payload.CCU > 0 {
		values["ccu"] = payload.CCU
	}
	if payload.Owners != "" {
		values["owners"] = payload.Owners
	}
	if payload.AverageForever > 0 {
		values["average_forever"] = payload.AverageForever
	}
	if payload.MedianForever > 0 {
		values["median_forever"] = payload.MedianForever
	}
	if payload.Price != "" && payload.Price != "0" {
		values["price"] = payload.Price
	}
	if payload.Userscore > 0 {
		values["userscore"] = payload.Userscore
	}
	if total := payload.Positive + payload.Negative; total > 0 {
		values["review_count"] = total
	}
	if payload.Genre != "" {
		genres := strings.Split(payload.Genre, ",")
		for i := range genres {
			genres[i] = strings.TrimSpace(genres[i])
		}
		values["genres"] = genres
	}
	return values
}
