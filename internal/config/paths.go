package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultSwatchDir = ".swatch"
	PalettesDir      = "palettes"
	ConfigFileName   = "config.toml"
	GlobalConfigDir  = ".config/swatch"
)

// Paths provides path resolution for Swatch data files.
type Paths struct {
	libraryRoot  string
	dataLocation string // Custom location from config, empty for default
}

// NewPaths creates a new Paths resolver for the given library directory.
func NewPaths(libraryRoot string, dataLocation string) *Paths {
	return &Paths{
		libraryRoot:  libraryRoot,
		dataLocation: dataLocation,
	}
}

// SwatchRoot returns the root directory for Swatch data.
func (p *Paths) SwatchRoot() string {
	if p.dataLocation != "" {
		return filepath.Join(p.libraryRoot, p.dataLocation)
	}
	return filepath.Join(p.libraryRoot, DefaultSwatchDir)
}

// PalettesRoot returns the palettes directory.
func (p *Paths) PalettesRoot() string {
	return filepath.Join(p.SwatchRoot(), PalettesDir)
}

// PalettePath returns the file path for a specific palette.
func (p *Paths) PalettePath(paletteID string) string {
	return filepath.Join(p.PalettesRoot(), paletteID+".json")
}

// LibraryConfigPath returns the path to the library config file.
func (p *Paths) LibraryConfigPath() string {
	return filepath.Join(p.SwatchRoot(), ConfigFileName)
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}

// GlobalConfigDirPath returns the directory for global config.
func GlobalConfigDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir)
}
