package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/swatchly/swatch/internal/config"
	swerr "github.com/swatchly/swatch/internal/errors"
	"github.com/swatchly/swatch/internal/store"
)

func setupInitService(t *testing.T) (*InitService, *testEnv) {
	t.Helper()

	// Keep the global config inside the test sandbox.
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	paths := config.NewPaths(dir, "")
	paletteStore := store.NewPaletteStore(paths)
	libraryStore := store.NewLibraryStore(paths)
	globalStore := store.NewGlobalStore()
	aliasService := NewAliasService(paletteStore)
	paletteService := NewPaletteService(paletteStore, libraryStore, aliasService)

	env := &testEnv{
		dir:            dir,
		paletteStore:   paletteStore,
		libraryStore:   libraryStore,
		aliasService:   aliasService,
		paletteService: paletteService,
	}
	return NewInitService(paths, libraryStore, globalStore, paletteService), env
}

func TestInitService_Initialize(t *testing.T) {
	initService, env := setupInitService(t)

	result, err := initService.Initialize("My Colors", 3, "tester")
	if err != nil {
		t.Fatalf("failed to initialize: %v", err)
	}

	if result.LibraryName != "My Colors" {
		t.Errorf("expected library name 'My Colors', got %q", result.LibraryName)
	}
	if result.StarterPalette == nil {
		t.Fatal("expected a starter palette")
	}
	if len(result.StarterPalette.Colors) != 9 {
		t.Errorf("expected 9 seeded colors for a 3x3 grid, got %d", len(result.StarterPalette.Colors))
	}

	library, err := env.libraryStore.Load()
	if err != nil {
		t.Fatalf("failed to load library: %v", err)
	}
	if library.DefaultGridSize != 3 {
		t.Errorf("expected default grid size 3, got %d", library.DefaultGridSize)
	}
	if !library.IsActive(result.StarterPalette.ID) {
		t.Error("expected starter palette to be active")
	}

	if _, err := os.Stat(filepath.Join(env.dir, ".swatch", "config.toml")); err != nil {
		t.Errorf("expected library config on disk: %v", err)
	}
}

func TestInitService_InitializeInvalidGridSizeFallsBack(t *testing.T) {
	initService, env := setupInitService(t)

	if _, err := initService.Initialize("My Colors", 0, "tester"); err != nil {
		t.Fatalf("failed to initialize: %v", err)
	}

	library, err := env.libraryStore.Load()
	if err != nil {
		t.Fatalf("failed to load library: %v", err)
	}
	if library.DefaultGridSize != 2 {
		t.Errorf("expected fallback grid size 2, got %d", library.DefaultGridSize)
	}
}

func TestInitService_InitializeTwice(t *testing.T) {
	initService, _ := setupInitService(t)

	if _, err := initService.Initialize("My Colors", 2, "tester"); err != nil {
		t.Fatalf("first initialize failed: %v", err)
	}
	if _, err := initService.Initialize("My Colors", 2, "tester"); !swerr.IsAlreadyExists(err) {
		t.Errorf("expected already-exists error, got %v", err)
	}
}

func TestInitService_RegistersGlobally(t *testing.T) {
	initService, env := setupInitService(t)

	if _, err := initService.Initialize("My Colors", 2, "tester"); err != nil {
		t.Fatalf("failed to initialize: %v", err)
	}

	globalStore := store.NewGlobalStore()
	global, err := globalStore.Load()
	if err != nil {
		t.Fatalf("failed to load global config: %v", err)
	}

	abs, err := filepath.Abs(env.dir)
	if err != nil {
		t.Fatalf("failed to resolve dir: %v", err)
	}
	if global.Libraries["My Colors"] != abs {
		t.Errorf("expected library registered at %q, got %q", abs, global.Libraries["My Colors"])
	}
}
