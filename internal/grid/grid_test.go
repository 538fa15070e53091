package grid

import (
	"encoding/json"
	"testing"

	"github.com/swatchly/swatch/internal/model"
)

func entry(hex string) model.ColorEntry {
	return model.ColorEntry{Background: hex}
}

func TestBuild_PlacesColorsAtIndices(t *testing.T) {
	p := &model.Palette{
		GridSize: 2,
		Colors: []model.ColorAssignment{
			{Index: 0, Color: entry("#ff0000")},
			{Index: 3, Color: entry("#00ff00")},
		},
	}

	cells := Build(p)

	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	if cells[0] == nil || cells[0].Background != "#ff0000" {
		t.Errorf("cell 0: got %v, want #ff0000", cells[0])
	}
	if cells[1] != nil {
		t.Errorf("cell 1: expected empty, got %v", cells[1])
	}
	if cells[2] != nil {
		t.Errorf("cell 2: expected empty, got %v", cells[2])
	}
	if cells[3] == nil || cells[3].Background != "#00ff00" {
		t.Errorf("cell 3: got %v, want #00ff00", cells[3])
	}
}

func TestBuild_LastWriteWins(t *testing.T) {
	p := &model.Palette{
		GridSize: 2,
		Colors: []model.ColorAssignment{
			{Index: 0, Color: entry("#ff0000")},
			{Index: 0, Color: entry("#0000ff")},
		},
	}

	cells := Build(p)

	if cells[0] == nil || cells[0].Background != "#0000ff" {
		t.Errorf("cell 0: got %v, want later entry #0000ff", cells[0])
	}
	for i := 1; i < 4; i++ {
		if cells[i] != nil {
			t.Errorf("cell %d: expected empty, got %v", i, cells[i])
		}
	}
}

func TestBuild_OutOfRangeDiscarded(t *testing.T) {
	p := &model.Palette{
		GridSize: 2,
		Colors: []model.ColorAssignment{
			{Index: 9, Color: entry("#ff0000")},
			{Index: -1, Color: entry("#00ff00")},
			{Index: 4, Color: entry("#0000ff")}, // one past the end
		},
	}

	cells := Build(p)

	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	for i, c := range cells {
		if c != nil {
			t.Errorf("cell %d: expected empty, got %v", i, c)
		}
	}
}

func TestBuild_InvalidGridSizeDefaults(t *testing.T) {
	tests := []struct {
		name     string
		gridSize int
	}{
		{"zero", 0},
		{"negative", -1},
		{"very negative", -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.Palette{
				GridSize: tt.gridSize,
				Colors: []model.ColorAssignment{
					{Index: 0, Color: entry("#ffffff")},
				},
			}

			cells := Build(p)

			if len(cells) != 4 {
				t.Errorf("expected default 2×2 grid (4 cells), got %d", len(cells))
			}
			if cells[0] == nil {
				t.Error("in-range assignment should still be placed on the default grid")
			}
		})
	}
}

func TestBuild_NonIntegralGridSizeFromStaleFile(t *testing.T) {
	// Stale persisted data can carry a fractional grid size; the model
	// decodes it to 0 and the builder falls back to the default.
	data := []byte(`{"id":"p1","title":"old","grid_size":2.5,"colors":[{"index":0,"color_data":{"background":"#ffffff"}}]}`)

	var p model.Palette
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("stale palette should still decode: %v", err)
	}

	cells := Build(&p)
	if len(cells) != 4 {
		t.Errorf("expected default 2×2 grid (4 cells), got %d", len(cells))
	}
}

func TestBuild_OutputLengthAlwaysSquare(t *testing.T) {
	for _, size := range []int{1, 2, 3, 5, 8, 12} {
		p := &model.Palette{GridSize: size}
		cells := Build(p)
		if len(cells) != size*size {
			t.Errorf("gridSize %d: expected %d cells, got %d", size, size*size, len(cells))
		}
	}
}

func TestBuild_EmptyColorsYieldsAllEmptyCells(t *testing.T) {
	p := &model.Palette{GridSize: 3}

	cells := Build(p)

	if len(cells) != 9 {
		t.Fatalf("expected 9 cells, got %d", len(cells))
	}
	for i, c := range cells {
		if c != nil {
			t.Errorf("cell %d: expected empty, got %v", i, c)
		}
	}
}

func TestBuild_DoesNotAliasInput(t *testing.T) {
	p := &model.Palette{
		GridSize: 2,
		Colors: []model.ColorAssignment{
			{Index: 0, Color: entry("#ff0000")},
		},
	}

	cells := Build(p)
	p.Colors[0].Color.Background = "#000000"

	if cells[0].Background != "#ff0000" {
		t.Error("built grid should hold copies, not references into the input")
	}
}

func TestBuild_PreservesEffectTag(t *testing.T) {
	p := &model.Palette{
		GridSize: 2,
		Colors: []model.ColorAssignment{
			{Index: 2, Color: model.ColorEntry{Background: "#10b981", Effect: "glow"}},
		},
	}

	cells := Build(p)

	if cells[2] == nil || cells[2].Effect != "glow" {
		t.Errorf("effect tag should pass through untouched, got %v", cells[2])
	}
}

func TestResolveSize(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 2},
		{-1, 2},
		{0, 2},
		{1, 1},
		{2, 2},
		{6, 6},
		{12, 12},
	}

	for _, tt := range tests {
		if got := ResolveSize(tt.in); got != tt.want {
			t.Errorf("ResolveSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTileSize(t *testing.T) {
	tests := []struct {
		name     string
		overall  int
		gridSize int
		want     int
	}{
		{"even division", 100, 2, 50},
		{"floored", 100, 3, 33},
		{"invalid size uses default", 100, 0, 50},
		{"negative size uses default", 100, -3, 50},
		{"single cell", 64, 1, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TileSize(tt.overall, tt.gridSize); got != tt.want {
				t.Errorf("TileSize(%d, %d) = %d, want %d", tt.overall, tt.gridSize, got, tt.want)
			}
		})
	}
}

// TileSize and Build must agree on the resolved dimension, otherwise
// the rendered layout and the content grid drift apart.
func TestTileSizeConsistentWithBuild(t *testing.T) {
	for _, size := range []int{-2, 0, 1, 3, 7} {
		p := &model.Palette{GridSize: size}
		cells := Build(p)
		resolved := ResolveSize(size)

		if len(cells) != resolved*resolved {
			t.Errorf("gridSize %d: Build used a different resolution than ResolveSize", size)
		}
		if got := TileSize(resolved*10, size); got != 10 {
			t.Errorf("gridSize %d: TileSize resolution disagrees with Build", size)
		}
	}
}
