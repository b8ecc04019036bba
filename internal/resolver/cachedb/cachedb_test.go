package cachedb

import (
	"path/filepath"
	"testing"

	"game-data-service/internal/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "resolver.db"), nil)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutAndGetRoundTrip(t *testing.T) {
	store := openStore(t)

	key := domain.CanonicalGameKey{
		CanonicalName: "Hades",
		ProviderIDs: map[domain.Provider]domain.ProviderID{
			domain.ProviderRAWG:  "274",
			domain.ProviderSteam: "1145360",
		},
		Approximate: map[domain.Provider]bool{domain.ProviderRAWG: true},
	}
	store.Put("hades", key)

	got, ok := store.Get("hades")
	if !ok {
		t.Fatal("expected cached key")
	}
	if got.CanonicalName != "Hades" {
		t.Fatalf("expected canonical name Hades, got %s", got.CanonicalName)
	}
	if got.ProviderIDs[domain.ProviderSteam] != "1145360" {
		t.Fatalf("unexpected steam id %s", got.ProviderIDs[domain.ProviderSteam])
	}
	if !got.Approximate[domain.ProviderRAWG] {
		t.Fatal("expected approximate flag to survive the round trip")
	}
}

func TestGetMissesUnknownName(t *testing.T) {
	store := openStore(t)

	if _, ok := store.Get("unknown game"); ok {
		t.Fatal("expected miss for unknown name")
	}
}

func TestPutOverwritesExistingEntry(t *testing.T) {
	store := openStore(t)

	store.Put("hades", domain.CanonicalGameKey{CanonicalName: "Hades"})
	store.Put("hades", domain.CanonicalGameKey{
		CanonicalName: "Hades",
		ProviderIDs: map[domain.Provider]domain.ProviderID{
			domain.ProviderGamalytic: "1145360",
		},
	})

	got, ok := store.Get("hades")
	if !ok {
		t.Fatal("expected cached key")
	}
	if got.ProviderIDs[domain.ProviderGamalytic] != "1145360" {
		t.Fatal("expected second write to replace the first")
	}
}

func TestEntriesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolver.db")

	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	store.Put("celeste", domain.CanonicalGameKey{CanonicalName: "Celeste"})
	if err := store.Close(); err != nil {
		t.Fatalf("closing store: %v", err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Get("celeste")
	if !ok || got.CanonicalName != "Celeste" {
		t.Fatal("expected entry to survive reopen")
	}
}
