package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/swatchly/swatch/internal/config"
	swerr "github.com/swatchly/swatch/internal/errors"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/version"
)

// FilePaletteStore implements PaletteStore using the filesystem.
// One JSON file per palette under .swatch/palettes/.
type FilePaletteStore struct {
	paths *config.Paths
}

// NewPaletteStore creates a new palette store.
func NewPaletteStore(paths *config.Paths) *FilePaletteStore {
	return &FilePaletteStore{paths: paths}
}

// Create writes a new palette to disk.
func (s *FilePaletteStore) Create(palette *model.Palette) error {
	path := s.paths.PalettePath(palette.ID)

	if _, err := os.Stat(path); err == nil {
		return swerr.PaletteAlreadyExists(palette.ID)
	}

	// Ensure palettes directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create palettes directory: %w", err)
	}

	return s.writePalette(path, palette)
}

// Get reads a palette from disk by ID.
func (s *FilePaletteStore) Get(paletteID string) (*model.Palette, error) {
	path := s.paths.PalettePath(paletteID)
	palette, err := s.readPalette(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, swerr.PaletteNotFound(paletteID)
		}
		return nil, fmt.Errorf("failed to read palette %s: %w", paletteID, err)
	}
	return palette, nil
}

// Update writes an existing palette to disk.
func (s *FilePaletteStore) Update(palette *model.Palette) error {
	path := s.paths.PalettePath(palette.ID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return swerr.PaletteNotFound(palette.ID)
	}
	if err := s.writePalette(path, palette); err != nil {
		return fmt.Errorf("failed to update palette %s: %w", palette.ID, err)
	}
	return nil
}

// Delete removes a palette from disk.
func (s *FilePaletteStore) Delete(paletteID string) error {
	path := s.paths.PalettePath(paletteID)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return swerr.PaletteNotFound(paletteID)
		}
		return fmt.Errorf("failed to delete palette %s: %w", paletteID, err)
	}
	return nil
}

// List returns all palettes in the library.
// Malformed palette files are logged and skipped; a single corrupt
// file must not take the whole library down.
func (s *FilePaletteStore) List() ([]*model.Palette, error) {
	palettesDir := s.paths.PalettesRoot()

	entries, err := os.ReadDir(palettesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*model.Palette{}, nil // Return empty slice, not nil
		}
		return nil, fmt.Errorf("failed to read palettes directory: %w", err)
	}

	var palettes []*model.Palette
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(palettesDir, entry.Name())
		palette, err := s.readPalette(path)
		if err != nil {
			// Log warning but don't fail - allows partial reads
			fmt.Fprintf(os.Stderr, "Warning: skipping malformed palette file %s: %v\n", entry.Name(), err)
			continue
		}
		palettes = append(palettes, palette)
	}

	if palettes == nil {
		palettes = []*model.Palette{} // Ensure non-nil
	}
	return palettes, nil
}

// FindByAlias searches for a palette by alias.
func (s *FilePaletteStore) FindByAlias(alias string) (*model.Palette, error) {
	palettes, err := s.List()
	if err != nil {
		return nil, err
	}

	for _, palette := range palettes {
		if palette.Alias == alias {
			return palette, nil
		}
	}

	return nil, swerr.PaletteNotFound(alias)
}

func (s *FilePaletteStore) readPalette(path string) (*model.Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var palette model.Palette
	if err := json.Unmarshal(data, &palette); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	// Reject files from a newer Swatch; older/unversioned files still
	// load so stale libraries keep working.
	if palette.Version > version.CurrentPaletteVersion {
		return nil, version.InvalidPaletteVersion(path, palette.Version, version.CurrentPaletteVersion)
	}

	return &palette, nil
}

func (s *FilePaletteStore) writePalette(path string, palette *model.Palette) error {
	// Stamp current schema version
	palette.Version = version.CurrentPaletteVersion

	data, err := json.MarshalIndent(palette, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal palette: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write palette file: %w", err)
	}
	return nil
}
