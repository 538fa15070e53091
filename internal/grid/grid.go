// Package grid derives a dense, renderable grid from a palette's
// sparse color assignments. Palettes come from persisted files that may
// be stale, so the derivation normalizes rather than rejects: it never
// fails, whatever the input looks like.
package grid

import "github.com/swatchly/swatch/internal/model"

// DefaultSize is the grid dimension substituted when a palette carries
// an invalid grid size (absent, zero, or negative; non-integral values
// already decode to zero in the model).
const DefaultSize = 2

// ResolveSize normalizes a palette's declared grid size. Positive
// values pass through; anything else resolves to DefaultSize. Build and
// TileSize share this resolution so layout and content dimensions can
// never disagree.
func ResolveSize(n int) int {
	if n >= 1 {
		return n
	}
	return DefaultSize
}

// Build maps the palette's sparse color assignments into a dense grid.
//
// The result always has exactly ResolveSize(p.GridSize)² elements, one
// per cell in row-major order. An element is either the assigned
// ColorEntry or nil, the explicit empty marker: the renderer must be
// able to tell "no color" from "unprocessed", so no cell is ever left
// out of the slice.
//
// Assignments with an index outside [0, totalCells) are discarded.
// When several assignments target the same index, the later one in
// input order wins.
func Build(p *model.Palette) []*model.ColorEntry {
	size := ResolveSize(p.GridSize)
	totalCells := size * size

	cells := make([]*model.ColorEntry, totalCells)
	for _, a := range p.Colors {
		if a.Index < 0 || a.Index >= totalCells {
			continue
		}
		color := a.Color
		cells[a.Index] = &color
	}
	return cells
}

// TileSize returns the integer pixel size of one tile when the whole
// grid is rendered into overall pixels. It uses the same resolved grid
// size as Build.
func TileSize(overall, gridSize int) int {
	return overall / ResolveSize(gridSize)
}
