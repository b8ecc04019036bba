// Package registry declares how an answered query should be presented. The
// core never renders charts; it emits a chart intent (type, source, title)
// the presentation layer can act on.
package registry

import (
	"fmt"

	"game-data-service/internal/domain"
)

type entry struct {
	chartType domain.ChartType
	// title is a format string receiving the canonical game name.
	title string
}

var entries = map[domain.FieldName]entry{
	domain.FieldPlayerCount:     {domain.ChartBar, "Current players of %s"},
	domain.FieldPeakPlayerCount: {domain.ChartBar, "Peak players of %s"},
	domain.FieldOwners:          {domain.ChartBar, "Estimated owners of %s"},
	domain.FieldAvgPlaytime:     {domain.ChartBar, "Average playtime of %s"},
	domain.FieldMedianPlaytime:  {domain.ChartBar, "Median playtime of %s"},
	domain.FieldReviewScore:     {domain.ChartBar, "Review score of %s"},
	domain.FieldReviewCount:     {domain.ChartBar, "Review count of %s"},
	domain.FieldMetacriticScore: {domain.ChartBar, "Metacritic score of %s"},
	domain.FieldPrice:           {domain.ChartBar, "Price of %s"},
	domain.FieldViewerCount:     {domain.ChartBar, "Twitch viewers of %s"},
	domain.FieldStreamCount:     {domain.ChartBar, "Live streams of %s"},
	domain.FieldCopiesSold:      {domain.ChartBar, "Copies sold of %s"},
	domain.FieldRevenue:         {domain.ChartBar, "Revenue of %s"},
	domain.FieldReleaseDate:     {domain.ChartList, "Release date of %s"},
	domain.FieldGenres:          {domain.ChartList, "Genres of %s"},
	domain.FieldSimilarGames:    {domain.ChartList, "Games players of %s also play"},
}

// Intent declares the chart for an answered record. A single answered field
// gets its registered chart; a multi-field answer becomes a bar chart of the
// game's statistics. Source is the provider that answered the leading field.
func Intent(record domain.CanonicalRecord, requested []domain.FieldName) domain.ChartIntent {
	name := record.Key.CanonicalName

	var answered []domain.FieldName
	for _, f := range requested {
		if len(record.Fields[f]) > 0 {
			answered = append(answered, f)
		}
	}

	if len(answered) == 1 {
		field := answered[0]
		e, ok := entries[field]
		if ok {
			return domain.ChartIntent{
				Type:   e.chartType,
				Source: record.Fields[field][0].Provider,
				Title:  fmt.Sprintf(e.title, name),
			}
		}
	}

	intent := domain.ChartIntent{
		Type:  domain.ChartBar,
		Title: fmt.Sprintf("Game statistics for %s", name),
	}
	if len(answered) > 0 {
		intent.Source = record.Fields[answered[0]][0].Provider
	}
	return intent
}
