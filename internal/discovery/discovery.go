package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/swatchly/swatch/internal/config"
	"github.com/swatchly/swatch/internal/model"
)

// ErrStaleGlobalConfig indicates the global config references a library
// path but the swatch data directory doesn't exist. This can happen if
// the user manually deletes the .swatch/ directory.
var ErrStaleGlobalConfig = errors.New("stale global config entry")

// Result contains the discovered library root and data location.
type Result struct {
	LibraryRoot   string // Absolute path to the library's directory
	DataLocation  string // Relative path for swatch data (empty = default .swatch/)
	WasRegistered bool   // Whether this library was found in global config
}

// DiscoverLibrary finds the library root by walking up from cwd.
// Priority:
// 1. Directory registered in global config -> use configured DataLocation
// 2. Directory containing .swatch/ -> use as self-discoverable default
//
// Returns nil if no library found (not initialized).
// Returns error if global config references a path but data is missing.
func DiscoverLibrary(globalCfg *model.GlobalConfig) (*Result, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return DiscoverLibraryFrom(cwd, globalCfg)
}

// DiscoverLibraryFrom finds the library root starting from a given directory.
func DiscoverLibraryFrom(startDir string, globalCfg *model.GlobalConfig) (*Result, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	dir := absStart
	for {
		// Check 1: Is this directory registered in global config?
		if globalCfg != nil {
			if extras := globalCfg.GetLibraryExtras(dir); extras != nil {
				dataLocation := extras.DataLocation
				if dataLocation == "" {
					dataLocation = config.DefaultSwatchDir
				}
				dataPath := filepath.Join(dir, dataLocation, config.PalettesDir)
				if _, err := os.Stat(dataPath); err == nil {
					return &Result{
						LibraryRoot:   dir,
						DataLocation:  extras.DataLocation,
						WasRegistered: true,
					}, nil
				}
				// Global config says this path exists but data is missing
				return nil, fmt.Errorf("%w: global config references %s but swatch data not found at %s",
					ErrStaleGlobalConfig, dir, filepath.Join(dir, dataLocation))
			}
		}

		// Check 2: Does .swatch/ exist here (self-discoverable default)?
		palettesDir := filepath.Join(dir, config.DefaultSwatchDir, config.PalettesDir)
		if _, err := os.Stat(palettesDir); err == nil {
			return &Result{
				LibraryRoot:   dir,
				DataLocation:  "",
				WasRegistered: false,
			}, nil
		}

		// Move up to parent
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, no library found
			return nil, nil
		}
		dir = parent
	}
}
