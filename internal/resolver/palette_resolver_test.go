package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/swatchly/swatch/internal/config"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/prompt"
	"github.com/swatchly/swatch/internal/store"
)

func setupResolver(t *testing.T) (*PaletteResolver, store.PaletteStore, store.LibraryStore) {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".swatch", "palettes"), 0755); err != nil {
		t.Fatal(err)
	}

	paths := config.NewPaths(dir, "")
	paletteStore := store.NewPaletteStore(paths)
	libraryStore := store.NewLibraryStore(paths)

	r := NewPaletteResolver(paletteStore, libraryStore, &prompt.NoopPrompter{})
	return r, paletteStore, libraryStore
}

func addPalette(t *testing.T, s store.PaletteStore, id, alias string) {
	t.Helper()
	err := s.Create(&model.Palette{
		ID:       id,
		Alias:    alias,
		Title:    alias,
		GridSize: 2,
	})
	if err != nil {
		t.Fatalf("failed to create palette %s: %v", id, err)
	}
}

func TestResolve_Explicit(t *testing.T) {
	r, ps, _ := setupResolver(t)
	addPalette(t, ps, "pal1", "ocean")
	addPalette(t, ps, "pal2", "sunset")

	// By ID
	p, err := r.Resolve("pal2", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.ID != "pal2" {
		t.Errorf("resolved %q, want pal2", p.ID)
	}

	// By alias
	p, err = r.Resolve("ocean", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.ID != "pal1" {
		t.Errorf("resolved %q, want pal1", p.ID)
	}
}

func TestResolve_ExplicitNotFound(t *testing.T) {
	r, ps, _ := setupResolver(t)
	addPalette(t, ps, "pal1", "ocean")

	if _, err := r.Resolve("nope", false); err == nil {
		t.Error("expected error for unknown palette")
	}
}

func TestResolve_SinglePalette(t *testing.T) {
	r, ps, _ := setupResolver(t)
	addPalette(t, ps, "only", "solo")

	p, err := r.Resolve("", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.ID != "only" {
		t.Errorf("resolved %q, want only", p.ID)
	}
}

func TestResolve_ActivePalette(t *testing.T) {
	r, ps, ls := setupResolver(t)
	addPalette(t, ps, "pal1", "ocean")
	addPalette(t, ps, "pal2", "sunset")

	if err := ls.Save(&model.LibraryConfig{ID: "lib", Name: "l", ActivePalette: "pal2"}); err != nil {
		t.Fatal(err)
	}

	p, err := r.Resolve("", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.ID != "pal2" {
		t.Errorf("resolved %q, want the active palette pal2", p.ID)
	}
}

func TestResolve_AmbiguousNonInteractive(t *testing.T) {
	r, ps, _ := setupResolver(t)
	addPalette(t, ps, "pal1", "ocean")
	addPalette(t, ps, "pal2", "sunset")

	if _, err := r.Resolve("", false); err == nil {
		t.Error("expected error when multiple palettes and no active one")
	}
}

func TestResolve_NoPalettes(t *testing.T) {
	r, _, _ := setupResolver(t)

	if _, err := r.Resolve("", false); err == nil {
		t.Error("expected error for empty library")
	}
}
