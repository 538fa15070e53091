package model

import (
	"encoding/json"
)

// Palette represents a saved color palette stored as a JSON file.
// Schema changes require a version bump in internal/version/version.go.
type Palette struct {
	Version         int               `json:"_v"`
	ID              string            `json:"id"`
	Alias           string            `json:"alias"`
	AliasExplicit   bool              `json:"alias_explicit"`
	Title           string            `json:"title"`
	GridSize        int               `json:"grid_size"`
	Colors          []ColorAssignment `json:"colors,omitempty"`
	Creator         string            `json:"creator"`
	CreatedAtMillis int64             `json:"created_at_millis"`
	UpdatedAtMillis int64             `json:"updated_at_millis"`
}

// ColorAssignment places a color at a flat index into the palette's
// N×N grid (row-major). Indices come from persisted data and are not
// guaranteed unique, sorted, or within bounds; the grid builder
// normalizes them at read time.
type ColorAssignment struct {
	Index int        `json:"index"`
	Color ColorEntry `json:"color_data"`
}

// ColorEntry is a single color cell. Background is a hex color value.
// Effect is an opaque visual-effect tag resolved by an external
// renderer; this core only carries it.
type ColorEntry struct {
	Background string `json:"background"`
	Effect     string `json:"effect,omitempty"`
}

// UnmarshalJSON tolerates stale persisted palettes: a grid_size that is
// missing, non-numeric, or non-integral decodes to 0, which the grid
// builder then resolves to its safe default. A palette file is never
// rejected over a bad grid size.
func (p *Palette) UnmarshalJSON(data []byte) error {
	// Alias avoids infinite recursion
	type PaletteAlias Palette
	var alias struct {
		PaletteAlias
		GridSize json.RawMessage `json:"grid_size"`
	}
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*p = Palette(alias.PaletteAlias)

	p.GridSize = decodeGridSize(alias.GridSize)
	return nil
}

// decodeGridSize parses a raw grid_size value, returning 0 for anything
// that is not a whole number. 0 is the builder's "use default" signal.
func decodeGridSize(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	n := int(f)
	if float64(n) != f {
		return 0 // non-integral
	}
	return n
}

// TotalCells returns the declared cell count of the palette grid.
// Callers that need the normalized count should go through the grid
// builder's size resolution instead.
func (p *Palette) TotalCells() int {
	return p.GridSize * p.GridSize
}

// HasColorAt returns true if any assignment targets the given index.
func (p *Palette) HasColorAt(index int) bool {
	for _, a := range p.Colors {
		if a.Index == index {
			return true
		}
	}
	return false
}
