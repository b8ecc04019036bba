package twitch

import (
	"strings"

	"game-data-service/internal/domain"
	"game-data-service/internal/normalize"
)

var fieldMap = normalize.FieldMap{
	{Native: "viewer_count", Field: domain.FieldViewerCount, Kind: normalize.Number, Unit: "viewers"},
	{Native: "stream_count", Field: domain.FieldStreamCount, Kind: normalize.Number, Unit: "streams"},
}

func mapCandidates(query string, categories []categoryPayload) []domain.SearchCandidate {
	queryLower := strings.ToLower(query)
	candidates := make([]domain.SearchCandidate, 0, len(categories))
	for _, cat := range categories {
		if cat.ID == "" || cat.Name == "" {
			continue
		}
		conf := confidencePartial
		if strings.ToLower(cat.Name) == queryLower {
			conf = confidenceExact
		}
		candidates = append(candidates, domain.SearchCandidate{
			ID:          domain.ProviderID(cat.ID),
			DisplayName: cat.Name,
			Confidence:  conf,
		})
	}
	return candidates
}

// mapStreams folds one page of live streams into viewer and stream totals. A
// category with no live streams still yields zero counts, which is real data
// ("nobody is streaming this"), not an absence.
func mapStreams(streams []streamPayload) map[string]any {
	totalViewers := 0
	for _, s := range streams {
		totalViewers += s.ViewerCount
	}
	values := map[string]any{
		"viewer_count": totalViewers,
		"stream_count": len(streams),
	}
	if len(streams) > 0 {
		values["name"] = streams[0].GameName
	}
	return values
}
