package gamalytic

import (
	"strconv"
	"strings"

	"game-data-service/internal/domain"
	"game-data-service/internal/normalize"
)

// Monetary figures arrive in whole dollars and are scaled to cents. Playtime
// arrives in hours and is scaled to minutes.
var fieldMap = normalize.FieldMap{
	{Native: "copies_sold", Field: domain.FieldCopiesSold, Kind: normalize.Number, Unit: "copies"},
	{Native: "revenue", Field: domain.FieldRevenue, Kind: normalize.Number, Unit: "usd_cents", Scale: 100},
	{Native: "price", Field: domain.FieldPrice, Kind: normalize.Number, Unit: "usd_cents", Scale: 100},
	{Native: "review_score", Field: domain.FieldReviewScore, Kind: normalize.Number, Unit: "percent"},
	{Native: "reviews", Field: domain.FieldReviewCount, Kind: normalize.Number, Unit: "reviews"},
	{Native: "avg_playtime", Field: domain.FieldAvgPlaytime, Kind: normalize.Number, Unit: "minutes", Scale: 60},
	{Native: "release_date", Field: domain.FieldReleaseDate, Kind: normalize.Date},
	{Native: "genres", Field: domain.FieldGenres, Kind: normalize.StringList},
	{Native: "similar_games", Field: domain.FieldSimilarGames, Kind: normalize.StringList},
}

func mapCandidates(query string, entries []listEntry) []domain.SearchCandidate {
	queryLower := strings.ToLower(query)
	candidates := make([]domain.SearchCandidate, 0, len(entries))
	for _, e := range entries {
		if e.SteamID == 0 || e.Name == "" {
			continue
		}
		conf := confidencePartial
		if strings.ToLower(e.Name) == queryLower {
			conf = confidenceExact
		}
		candidates = append(candidates, domain.SearchCandidate{
			ID:          domain.ProviderID(strconv.FormatInt(e.SteamID, 10)),
			DisplayName: e.Name,
			Confidence:  conf,
		})
	}
	return candidates
}

func mapDetails(payload gameResponse) map[string]any {
	values := map[string]any{
		"name": payload.Name,
	}
	if payload.CopiesSold > 0 {
		values["copies_sold"] = payload.CopiesSold
	}
	if payload.Revenue > 0 {
		values["revenue"] = payload.Revenue
	}
	if payload.Price > 0 {
		values["price"] = payload.Price
	}
	if payload.ReviewScore > 0 {
		values["review_score"] = payload.ReviewScore
	}
	if payload.Reviews > 0 {
		values["reviews"] = payload.Reviews
	}
	if payload.AvgPlaytime > 0 {
		values["avg_playtime"] = payload.AvgPlaytime
	}
	if payload.ReleaseDate > 0 {
		values["release_date"] = payload.ReleaseDate
	}
	if len(payload.Genres) > 0 {
		values["genres"] = payload.Genres
	}
	if similar := similarGames(payload); len(similar) > 0 {
		values["similar_games"] = similar
	}
	return values
}

// similarGames merges the alsoPlayed and audienceOverlap lists, preferring
// alsoPlayed entries and dropping duplicates.
func similarGames(payload gameResponse) []string {
	seen := make(map[string]bool)
	var names []string
	for _, list := range [][]relatedEntry{payload.AlsoPlayed, payload.AudienceOverlap} {
		for _, e := range list {
			if e.Name == "" || seen[e.Name] {
				continue
			}
			seen[e.Name] = true
			names = append(names, e.Name)
			if len(names) == maxSimilarGames {
				return names
			}
		}
	}
	return names
}
