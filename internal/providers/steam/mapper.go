package steam

import (
	"strconv"
	"strings"

	"game-data-service/internal/domain"
	"game-data-service/internal/normalize"
)

// Store prices are already integer USD cents.
var fieldMap = normalize.FieldMap{
	{Native: "player_count", Field: domain.FieldPlayerCount, Kind: normalize.Number, Unit: "players"},
	{Native: "price_cents", Field: domain.FieldPrice, Kind: normalize.Number, Unit: "usd_cents"},
	{Native: "metacritic", Field: domain.FieldMetacriticScore, Kind: normalize.Number, Unit: "score"},
	{Native: "recommendations", Field: domain.FieldReviewCount, Kind: normalize.Number, Unit: "reviews"},
	{Native: "release_date", Field: domain.FieldReleaseDate, Kind: normalize.Date, Unit: "date"},
	{Native: "genres", Field: domain.FieldGenres, Kind: normalize.StringList},
}

func mapCandidates(query string, items []storeSearchItem) []domain.SearchCandidate {
	candidates := make([]domain.SearchCandidate, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, domain.SearchCandidate{
			ID:          domain.ProviderID(strconv.Itoa(item.ID)),
			DisplayName: item.Name,
			Confidence:  confidence(query, item.Name),
		})
	}
	return candidates
}

func confidence(query, name string) float64 {
	switch {
	case strings.EqualFold(query, name):
		return confidenceExact
	case strings.Contains(strings.ToLower(name), strings.ToLower(query)):
		return confidenceSubstring
	default:
		return confidenceFuzzy
	}
}

func mapDetails(data appDetailsData) map[string]any {
	values := map[string]any{
		"name": data.Name,
	}
	if data.PriceOverview != nil && data.PriceOverview.Final > 0 {
		values["price_cents"] = data.PriceOverview.Final
	}
	if data.Metacritic != nil && data.Metacritic.Score > 0 {
		values["metacritic"] = data.Metacritic.Score
	}
	if data.Recommendations != nil && data.Recommendations.Total > 0 {
		values["recommendations"] = data.Recommendations.Total
	}
	if data.ReleaseDate.Date != "" {
		values["release_date"] = data.ReleaseDate.Date
	}
	if len(data.Genres) > 0 {
		genres := make([]string, 0, len(data.Genres))
		for _, g := range data.Genres {
			genres = append(genres, g.Description)
		}
		values["genres"] = genres
	}
	return values
}
