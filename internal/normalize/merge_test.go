package normalize

import (
	"testing"
	"time"

	"game-data-service/internal/domain"
)

func testKey() domain.CanonicalGameKey {
	return domain.CanonicalGameKey{
		CanonicalName: "Hades",
		ProviderIDs: map[domain.Provider]domain.ProviderID{
			domain.ProviderRAWG:     "274",
			domain.ProviderSteamSpy: "1145360",
		},
	}
}

func TestMergeScalesHoursToMinutes(t *testing.T) {
	fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	maps := map[domain.Provider]FieldMap{
		domain.ProviderRAWG: {
			{Native: "playtime", Field: domain.FieldAvgPlaytime, Kind: Number, Unit: "minutes", Scale: 60},
		},
	}
	raws := []domain.RawRecord{{
		Provider:  domain.ProviderRAWG,
		ID:        "274",
		Values:    map[string]any{"playtime": float64(21)},
		FetchedAt: fetched,
	}}

	record := Merge(testKey(), []domain.FieldName{domain.FieldAvgPlaytime}, raws, maps)

	values := record.Fields[domain.FieldAvgPlaytime]
	if len(values) != 1 {
		t.Fatalf("expected 1 value, got %d", len(values))
	}
	if got := values[0].Value.(float64); got != 1260 {
		t.Fatalf("expected 21 hours to become 1260 minutes, got %v", got)
	}
	if values[0].Unit != "minutes" {
		t.Fatalf("expected unit minutes, got %q", values[0].Unit)
	}
	if !values[0].Timestamp.Equal(fetched) {
		t.Fatalf("expected fetch timestamp to survive the merge")
	}
}

func TestMergeRatingToPercent(t *testing.T) {
	maps := map[domain.Provider]FieldMap{
		domain.ProviderRAWG: {
			{Native: "rating", Field: domain.FieldReviewScore, Kind: Number, Unit: "percent", Scale: 20},
		},
	}
	raws := []domain.RawRecord{{
		Provider: domain.ProviderRAWG,
		Values:   map[string]any{"rating": 4.5},
	}}

	record := Merge(testKey(), []domain.FieldName{domain.FieldReviewScore}, raws, maps)

	got := record.Fields[domain.FieldReviewScore][0].Value.(float64)
	if got != 90 {
		t.Fatalf("expected 4.5/5 to become 90 percent, got %v", got)
	}
}

func TestMergeOwnerRangeMidpoint(t *testing.T) {
	maps := map[domain.Provider]FieldMap{
		domain.ProviderSteamSpy: {
			{Native: "owners", Field: domain.FieldOwners, Kind: OwnerRange, Unit: "estimated_owners"},
		},
	}
	raws := []domain.RawRecord{{
		Provider: domain.ProviderSteamSpy,
		Values:   map[string]any{"owners": "1,000,000 .. 2,000,000"},
	}}

	record := Merge(testKey(), []domain.FieldName{domain.FieldOwners}, raws, maps)

	got := record.Fields[domain.FieldOwners][0].Value.(float64)
	if got != 1500000 {
		t.Fatalf("expected midpoint 1500000, got %v", got)
	}
}

func TestMergeNumericStringCents(t *testing.T) {
	maps := map[domain.Provider]FieldMap{
		domain.ProviderSteamSpy: {
			{Native: "price", Field: domain.FieldPrice, Kind: Number, Unit: "usd_cents"},
		},
	}
	raws := []domain.RawRecord{{
		Provider: domain.ProviderSteamSpy,
		Values:   map[string]any{"price": "2499"},
	}}

	record := Merge(testKey(), []domain.FieldName{domain.FieldPrice}, raws, maps)

	got := record.Fields[domain.FieldPrice][0].Value.(float64)
	if got != 2499 {
		t.Fatalf("expected 2499 cents, got %v", got)
	}
}

func TestMergeDateFormats(t *testing.T) {
	cases := []struct {
		name   string
		native any
	}{
		{"iso", "2020-09-17"},
		{"steam store", "17 Sep, 2020"},
		{"unix seconds", float64(1600300800)},
		{"unix milliseconds", float64(1600300800000)},
		{"unix milliseconds int64", int64(1600300800000)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			maps := map[domain.Provider]FieldMap{
				domain.ProviderRAWG: {
					{Native: "released", Field: domain.FieldReleaseDate, Kind: Date},
				},
			}
			raws := []domain.RawRecord{{
				Provider: domain.ProviderRAWG,
				Values:   map[string]any{"released": tc.native},
			}}

			record := Merge(testKey(), []domain.FieldName{domain.FieldReleaseDate}, raws, maps)

			values := record.Fields[domain.FieldReleaseDate]
			if len(values) != 1 {
				t.Fatalf("expected a release date, got none")
			}
			if got := values[0].Value.(string); got != "2020-09-17" {
				t.Fatalf("expected 2020-09-17, got %q", got)
			}
		})
	}
}

func TestMergeKeepsDisagreeingProvidersSeparate(t *testing.T) {
	maps := map[domain.Provider]FieldMap{
		domain.ProviderSteam: {
			{Native: "player_count", Field: domain.FieldPlayerCount, Kind: Number, Unit: "players"},
		},
		domain.ProviderSteamSpy: {
			{Native: "ccu", Field: domain.FieldPlayerCount, Kind: Number, Unit: "players"},
		},
	}
	raws := []domain.RawRecord{
		{Provider: domain.ProviderSteam, Values: map[string]any{"player_count": float64(18000)}},
		{Provider: domain.ProviderSteamSpy, Values: map[string]any{"ccu": float64(17500)}},
	}

	record := Merge(testKey(), []domain.FieldName{domain.FieldPlayerCount}, raws, maps)

	values := record.Fields[domain.FieldPlayerCount]
	if len(values) != 2 {
		t.Fatalf("expected both providers' values, got %d", len(values))
	}
	if values[0].Provider == values[1].Provider {
		t.Fatal("expected distinct provenance per value")
	}
}

func TestMergeUnansweredFieldsLandInMissing(t *testing.T) {
	record := Merge(testKey(),
		[]domain.FieldName{domain.FieldViewerCount, domain.FieldGenres},
		nil, nil)

	if len(record.Fields) != 0 {
		t.Fatalf("expected no fields, got %d", len(record.Fields))
	}
	if len(record.Missing) != 2 {
		t.Fatalf("expected 2 missing fields, got %v", record.Missing)
	}
}

func TestMergeIgnoresUnrequestedNatives(t *testing.T) {
	maps := map[domain.Provider]FieldMap{
		domain.ProviderSteamSpy: {
			{Native: "ccu", Field: domain.FieldPlayerCount, Kind: Number, Unit: "players"},
			{Native: "owners", Field: domain.FieldOwners, Kind: OwnerRange, Unit: "estimated_owners"},
		},
	}
	raws := []domain.RawRecord{{
		Provider: domain.ProviderSteamSpy,
		Values: map[string]any{
			"ccu":    float64(100),
			"owners": "0 .. 20,000",
		},
	}}

	record := Merge(testKey(), []domain.FieldName{domain.FieldPlayerCount}, raws, maps)

	if _, ok := record.Fields[domain.FieldOwners]; ok {
		t.Fatal("owners was not requested and must not appear")
	}
	if len(record.Fields[domain.FieldPlayerCount]) != 1 {
		t.Fatal("requested field missing")
	}
}

func TestMergeStringListFromGenres(t *testing.T) {
	maps := map[domain.Provider]FieldMap{
		domain.ProviderRAWG: {
			{Native: "genres", Field: domain.FieldGenres, Kind: StringList},
		},
	}
	raws := []domain.RawRecord{{
		Provider: domain.ProviderRAWG,
		Values:   map[string]any{"genres": []any{"Action", "Roguelike"}},
	}}

	record := Merge(testKey(), []domain.FieldName{domain.FieldGenres}, raws, maps)

	got, ok := record.Fields[domain.FieldGenres][0].Value.([]string)
	if !ok || len(got) != 2 || got[0] != "Action" {
		t.Fatalf("unexpected genres %v", record.Fields[domain.FieldGenres])
	}
}
