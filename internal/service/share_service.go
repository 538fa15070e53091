package service

import (
	"encoding/json"
	"fmt"
	"strings"

	swerr "github.com/swatchly/swatch/internal/errors"
	"github.com/swatchly/swatch/internal/grid"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/store"
)

// ShareFormat identifies an export format for `swatch share`.
type ShareFormat string

const (
	ShareFormatHex  ShareFormat = "hex"
	ShareFormatCSS  ShareFormat = "css"
	ShareFormatJSON ShareFormat = "json"
)

// ShareFormats lists the supported export formats.
var ShareFormats = []ShareFormat{ShareFormatHex, ShareFormatCSS, ShareFormatJSON}

// ParseShareFormat converts a user-supplied string to a ShareFormat.
func ParseShareFormat(s string) (ShareFormat, error) {
	for _, f := range ShareFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", swerr.InvalidField("format", fmt.Sprintf("unknown format %q (expected hex, css, or json)", s))
}

// ShareService renders palettes into shareable text formats.
type ShareService struct {
	paletteStore store.PaletteStore
}

// NewShareService creates a new share service.
func NewShareService(paletteStore store.PaletteStore) *ShareService {
	return &ShareService{paletteStore: paletteStore}
}

// Export renders the palette in the given format. All formats walk the dense
// grid so cell order matches what the preview shows.
func (s *ShareService) Export(paletteID string, format ShareFormat) (string, error) {
	palette, err := s.paletteStore.Get(paletteID)
	if err != nil {
		return "", err
	}

	switch format {
	case ShareFormatHex:
		return exportHex(palette), nil
	case ShareFormatCSS:
		return exportCSS(palette), nil
	case ShareFormatJSON:
		return exportJSON(palette)
	default:
		return "", swerr.InvalidField("format", fmt.Sprintf("unknown format %q", format))
	}
}

// exportHex emits one hex value per filled cell, in grid order.
func exportHex(palette *model.Palette) string {
	var sb strings.Builder
	for _, cell := range grid.Build(palette) {
		if cell == nil {
			continue
		}
		sb.WriteString(cell.Background)
		sb.WriteString("\n")
	}
	return sb.String()
}

// exportCSS emits custom properties on :root, numbered by cell position so a
// stylesheet consumer can reconstruct the grid layout.
func exportCSS(palette *model.Palette) string {
	var sb strings.Builder
	sb.WriteString(":root {\n")
	for i, cell := range grid.Build(palette) {
		if cell == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("  --swatch-%d: %s;\n", i, cell.Background))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// shareDocument is the JSON export shape. Cells is dense: empty cells are
// null, so length is always the square of the resolved grid size.
type shareDocument struct {
	Title    string              `json:"title"`
	Alias    string              `json:"alias"`
	GridSize int                 `json:"grid_size"`
	Cells    []*model.ColorEntry `json:"cells"`
}

func exportJSON(palette *model.Palette) (string, error) {
	doc := shareDocument{
		Title:    palette.Title,
		Alias:    palette.Alias,
		GridSize: grid.ResolveSize(palette.GridSize),
		Cells:    grid.Build(palette),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize palette: %w", err)
	}
	return string(data) + "\n", nil
}
