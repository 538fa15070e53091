package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/swatchly/swatch/internal/config"
	"github.com/swatchly/swatch/internal/model"
)

// TestPalette returns a palette with sensible test defaults.
func TestPalette(id, title string) *model.Palette {
	now := time.Now().UnixMilli()
	return &model.Palette{
		ID:              id,
		Alias:           "test-palette",
		AliasExplicit:   false,
		Title:           title,
		GridSize:        2,
		Creator:         "tester",
		CreatedAtMillis: now,
		UpdatedAtMillis: now,
	}
}

// TestEntry returns a color entry for the given hex value.
func TestEntry(hex string) model.ColorEntry {
	return model.ColorEntry{Background: hex}
}

// TempSwatchDir creates a temporary directory with a .swatch structure for
// testing. The directory is removed when the test finishes.
func TempSwatchDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	palettesDir := filepath.Join(dir, ".swatch", "palettes")
	if err := os.MkdirAll(palettesDir, 0755); err != nil {
		t.Fatalf("failed to create palettes dir: %v", err)
	}

	return dir
}

// TempGitRepo creates a temporary git repository for testing.
// The directory is removed when the test finishes.
func TempGitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to init git repo: %v", err)
	}

	cmd = exec.Command("git", "config", "user.name", "Test User")
	cmd.Dir = dir
	cmd.Run()

	cmd = exec.Command("git", "config", "user.email", "test@example.com")
	cmd.Dir = dir
	cmd.Run()

	return dir
}

// NewTestPaths creates a Paths for testing with the given temp directory.
func NewTestPaths(baseDir string) *config.Paths {
	return config.NewPaths(baseDir, "")
}
