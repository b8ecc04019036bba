package rawg

import (
	"strconv"
	"strings"

	"game-data-service/internal/domain"
	"game-data-service/internal/normalize"
)

// RAWG ratings are 0-5 stars and playtime is reported in hours; both are
// scaled to the canonical percent / minute units here.
var fieldMap = normalize.FieldMap{
	{Native: "rating", Field: domain.FieldReviewScore, Kind: normalize.Number, Unit: "percent", Scale: 20},
	{Native: "ratings_count", Field: domain.FieldReviewCount, Kind: normalize.Number, Unit: "reviews"},
	{Native: "metacritic", Field: domain.FieldMetacriticScore, Kind: normalize.Number, Unit: "score"},
	{Native: "playtime", Field: domain.FieldAvgPlaytime, Kind: normalize.Number, Unit: "minutes", Scale: 60},
	{Native: "released", Field: domain.FieldReleaseDate, Kind: normalize.Date, Unit: "date"},
	{Native: "genres", Field: domain.FieldGenres, Kind: normalize.StringList},
}

func mapCandidates(query string, results []gameResponse) []domain.SearchCandidate {
	candidates := make([]domain.SearchCandidate, 0, len(results))
	for _, g := range results {
		candidates = append(candidates, domain.SearchCandidate{
			ID:          domain.ProviderID(strconv.Itoa(g.ID)),
			DisplayName: g.Name,
			Confidence:  confidence(query, g.Name),
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

func mapDetails(g gameResponse) map[string]any {
	values := map[string]any{
		"name": g.Name,
	}
	if g.Rating > 0 {
		values["rating"] = g.Rating
	}
	if g.RatingsCount > 0 {
		values["ratings_count"] = g.RatingsCount
	}
	if g.Metacritic > 0 {
		values["metacritic"] = g.Metacritic
	}
	if g.Playtime > 0 {
		values["playtime"] = g.Playtime
	}
	if g.Released != "" {
		values["released"] = g.Released
	}
	if len(g.Genres) > 0 {
		genres := make([]string, 0, len(g.Genres))
		for _, genre := range g.Genres {
			genres = append(genres, genre.Name)
		}
		values["genres"] = genres
	}
	return values
}
