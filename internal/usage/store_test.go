package usage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emptyteabot/mind-os/internal/domain"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "usage.json"))

	records := store.Load()
	if len(records) != 0 {
		t.Errorf("Expected empty map for missing file, got %d records", len(records))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	records := NewStore(path).Load()
	if len(records) != 0 {
		t.Errorf("Expected empty map for corrupt file, got %d records", len(records))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "usage.json"))

	want := map[string]domain.UsageRecord{
		"10.0.0.1": {Date: "2026-08-30", Count: 7},
		"10.0.0.2": {Date: "2026-08-30", Count: 50, Pro: true},
	}
	store.Save(want)

	got := store.Load()
	if len(got) != len(want) {
		t.Fatalf("Expected %d records, got %d", len(want), len(got))
	}
	for key, rec := range want {
		if got[key] != rec {
			t.Errorf("Record %s: expected %+v, got %+v", key, rec, got[key])
		}
	}
}

func TestSaveUnwritablePathDoesNotPanic(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing", "dir", "usage.json"))

	// Best-effort persistence: a failed write is swallowed.
	store.Save(map[string]domain.UsageRecord{"10.0.0.1": {Date: "2026-08-30", Count: 1}})
}
