package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/swatchly/swatch/internal/config"
	"github.com/swatchly/swatch/internal/model"
)

func setupTestLibraryStore(t *testing.T) (*FileLibraryStore, string) {
	t.Helper()
	dir := t.TempDir()
	paths := config.NewPaths(dir, "")
	return NewLibraryStore(paths), dir
}

func TestFileLibraryStore_SaveAndLoad(t *testing.T) {
	store, _ := setupTestLibraryStore(t)

	cfg := &model.LibraryConfig{
		ID:              "lib123",
		Name:            "my-colors",
		ActivePalette:   "pal1",
		DefaultGridSize: 4,
	}

	if err := store.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != "my-colors" {
		t.Errorf("Name mismatch: got %q", loaded.Name)
	}
	if loaded.ActivePalette != "pal1" {
		t.Errorf("ActivePalette mismatch: got %q", loaded.ActivePalette)
	}
	if loaded.DefaultGridSize != 4 {
		t.Errorf("DefaultGridSize mismatch: got %d", loaded.DefaultGridSize)
	}
	if loaded.SwatchSchema != "library/1" {
		t.Errorf("schema not stamped: got %q", loaded.SwatchSchema)
	}
}

func TestFileLibraryStore_LoadMissingReturnsDefault(t *testing.T) {
	store, _ := setupTestLibraryStore(t)

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "" || cfg.ActivePalette != "" {
		t.Errorf("expected zero-value config, got %+v", cfg)
	}
}

func TestFileLibraryStore_LoadRejectsMissingSchema(t *testing.T) {
	store, dir := setupTestLibraryStore(t)

	path := filepath.Join(dir, ".swatch", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("name = \"bare\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(); err == nil {
		t.Error("expected error for config with no schema version")
	}
}

func TestFileLibraryStore_EnsureInitialized(t *testing.T) {
	store, _ := setupTestLibraryStore(t)

	if err := store.EnsureInitialized("fallback-name"); err != nil {
		t.Fatalf("EnsureInitialized failed: %v", err)
	}

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ID == "" {
		t.Error("expected generated library ID")
	}
	if cfg.Name != "fallback-name" {
		t.Errorf("Name = %q, want fallback-name", cfg.Name)
	}

	// Second call is a no-op and keeps the ID stable
	firstID := cfg.ID
	if err := store.EnsureInitialized("other-name"); err != nil {
		t.Fatalf("second EnsureInitialized failed: %v", err)
	}
	cfg, _ = store.Load()
	if cfg.ID != firstID {
		t.Error("EnsureInitialized should not regenerate the library ID")
	}
	if cfg.Name != "fallback-name" {
		t.Error("EnsureInitialized should not rename an existing library")
	}
}
