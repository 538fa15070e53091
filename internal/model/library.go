package model

// LibraryConfig represents the configuration for a palette library.
// Stored as config.toml in the .swatch directory.
type LibraryConfig struct {
	SwatchSchema  string `toml:"swatch_schema" json:"swatch_schema"`
	ID            string `toml:"id" json:"id"`
	Name          string `toml:"name" json:"name"`
	ActivePalette string `toml:"active_palette,omitempty" json:"active_palette,omitempty"`

	// DefaultGridSize seeds the save dialog's grid size selection.
	// Zero means unset; the grid builder's default applies.
	DefaultGridSize int `toml:"default_grid_size,omitempty" json:"default_grid_size,omitempty"`
}

// GridSizeOptions are the grid dimensions offered by the save dialog.
var GridSizeOptions = []int{2, 3, 4, 5, 6, 8}

// IsActive returns true if the given palette ID is the library's active palette.
func (l *LibraryConfig) IsActive(paletteID string) bool {
	return paletteID != "" && l.ActivePalette == paletteID
}

// SetActive records the palette as the library's active (loaded) palette.
func (l *LibraryConfig) SetActive(paletteID string) {
	l.ActivePalette = paletteID
}

// ClearActive unsets the active palette if it matches the given ID.
// Used when the active palette is deleted.
func (l *LibraryConfig) ClearActive(paletteID string) {
	if l.ActivePalette == paletteID {
		l.ActivePalette = ""
	}
}
