package prefs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"trackthething/internal/domain"
)

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), discardLogger())
	store.Save(domain.WindowPreferences{Width: 1280, Height: 800, Maximized: true})

	loaded := store.Load()
	if loaded == nil {
		t.Fatalf("expected saved preferences")
	}
	if loaded.Width != 1280 || loaded.Height != 800 || !loaded.Maximized {
		t.Fatalf("unexpected preferences: %+v", loaded)
	}
}

func TestLoadMissingFileIsCacheMiss(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), discardLogger())
	if loaded := store.Load(); loaded != nil {
		t.Fatalf("expected nil for missing file, got %+v", loaded)
	}
}

func TestLoadCorruptFileIsCacheMiss(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	store := NewStore(dir, discardLogger())
	if loaded := store.Load(); loaded != nil {
		t.Fatalf("expected nil for corrupt file, got %+v", loaded)
	}
}

func TestSaveResizeSkipsTinySizes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(dir, discardLogger())

	store.SaveResize(domain.WindowPreferences{Width: 479, Height: 800})
	store.SaveResize(domain.WindowPreferences{Width: 800, Height: 599})

	if _, err := os.Stat(filepath.Join(dir, fileName)); !os.IsNotExist(err) {
		t.Fatalf("expected no preferences file after sub-threshold resizes")
	}

	store.SaveResize(domain.WindowPreferences{Width: 480, Height: 600})

	loaded := store.Load()
	if loaded == nil {
		t.Fatalf("expected qualifying resize to persist")
	}
	if loaded.Width != 480 || loaded.Height != 600 {
		t.Fatalf("unexpected persisted size: %+v", loaded)
	}
}

func TestSaveCreatesConfigDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "config")
	store := NewStore(dir, discardLogger())
	store.Save(domain.WindowPreferences{Width: 1024, Height: 768})

	if loaded := store.Load(); loaded == nil {
		t.Fatalf("expected preferences after save into missing directory")
	}
}

func TestDisabledStoreIsInert(t *testing.T) {
	t.Parallel()

	store := NewStore("", discardLogger())
	store.Save(domain.WindowPreferences{Width: 1024, Height: 768})
	if loaded := store.Load(); loaded != nil {
		t.Fatalf("expected disabled store to load nothing")
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
