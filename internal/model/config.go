package model

// GlobalConfig represents the user's global Swatch configuration.
// Stored at ~/.config/swatch/config.toml
// Schema changes require a version bump, see internal/version/version.go.
type GlobalConfig struct {
	SwatchSchema string                   `toml:"swatch_schema"`
	Editor       string                   `toml:"editor,omitempty"`
	Libraries    map[string]string        `toml:"libraries,omitempty"` // name -> path
	Dirs         map[string]LibraryExtras `toml:"dirs,omitempty"`      // path -> per-dir settings
}

// LibraryExtras holds per-library-directory settings.
type LibraryExtras struct {
	DefaultPalette string `toml:"default_palette,omitempty"`
	DataLocation   string `toml:"data_location,omitempty"` // Custom .swatch location
}

// GetLibraryExtras returns the settings for a given library path, or nil if none.
func (g *GlobalConfig) GetLibraryExtras(path string) *LibraryExtras {
	if g.Dirs == nil {
		return nil
	}
	if cfg, ok := g.Dirs[path]; ok {
		return &cfg
	}
	return nil
}

// SetLibraryExtras sets the settings for a given library path.
func (g *GlobalConfig) SetLibraryExtras(path string, cfg LibraryExtras) {
	if g.Dirs == nil {
		g.Dirs = make(map[string]LibraryExtras)
	}
	g.Dirs[path] = cfg
}

// RegisterLibrary adds a library to the registry.
func (g *GlobalConfig) RegisterLibrary(name, path string) {
	if g.Libraries == nil {
		g.Libraries = make(map[string]string)
	}
	g.Libraries[name] = path
}
