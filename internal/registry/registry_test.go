package registry

import (
	"testing"

	"game-data-service/internal/domain"
)

func recordWith(fields map[domain.FieldName][]domain.FieldValue) domain.CanonicalRecord {
	return domain.CanonicalRecord{
		Key:    domain.CanonicalGameKey{CanonicalName: "Hades"},
		Fields: fields,
	}
}

func TestIntentSingleNumericField(t *testing.T) {
	record := recordWith(map[domain.FieldName][]domain.FieldValue{
		domain.FieldPlayerCount: {{Value: float64(18000), Provider: domain.ProviderSteam}},
	})

	intent := Intent(record, []domain.FieldName{domain.FieldPlayerCount})

	if intent.Type != domain.ChartBar {
		t.Fatalf("expected bar chart, got %s", intent.Type)
	}
	if intent.Source != domain.ProviderSteam {
		t.Fatalf("expected steam source, got %s", intent.Source)
	}
	if intent.Title != "Current players of Hades" {
		t.Fatalf("unexpected title %q", intent.Title)
	}
}

func TestIntentSimilarGamesIsList(t *testing.T) {
	record := recordWith(map[domain.FieldName][]domain.FieldValue{
		domain.FieldSimilarGames: {{Value: []string{"Dead Cells"}, Provider: domain.ProviderGamalytic}},
	})

	intent := Intent(record, []domain.FieldName{domain.FieldSimilarGames})

	if intent.Type != domain.ChartList {
		t.Fatalf("expected list chart, got %s", intent.Type)
	}
	if intent.Title != "Games players of Hades also play" {
		t.Fatalf("unexpected title %q", intent.Title)
	}
}

func TestIntentMultiFieldIsStatsBar(t *testing.T) {
	record := recordWith(map[domain.FieldName][]domain.FieldValue{
		domain.FieldPlayerCount: {{Value: float64(18000), Provider: domain.ProviderSteam}},
		domain.FieldOwners:      {{Value: float64(1500000), Provider: domain.ProviderSteamSpy}},
	})

	intent := Intent(record, []domain.FieldName{domain.FieldPlayerCount, domain.FieldOwners})

	if intent.Type != domain.ChartBar {
		t.Fatalf("expected bar chart, got %s", intent.Type)
	}
	if intent.Title != "Game statistics for Hades" {
		t.Fatalf("unexpected title %q", intent.Title)
	}
	if intent.Source != domain.ProviderSteam {
		t.Fatalf("expected source of leading field, got %s", intent.Source)
	}
}

func TestIntentUnansweredFieldsIgnored(t *testing.T) {
	record := recordWith(map[domain.FieldName][]domain.FieldValue{
		domain.FieldOwners: {{Value: float64(1500000), Provider: domain.ProviderSteamSpy}},
	})

	// viewerCount was requested but nothing answered it; owners drives the chart.
	intent := Intent(record, []domain.FieldName{domain.FieldViewerCount, domain.FieldOwners})

	if intent.Title != "Estimated owners of Hades" {
		t.Fatalf("unexpected title %q", intent.Title)
	}
	if intent.Source != domain.ProviderSteamSpy {
		t.Fatalf("unexpected source %s", intent.Source)
	}
}

func TestEveryKnownFieldHasAnEntry(t *testing.T) {
	for _, f := range domain.KnownFields() {
		if _, ok := entries[f]; !ok {
			t.Fatalf("field %s has no chart entry", f)
		}
	}
}
