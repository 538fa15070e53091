package api

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/swatchly/swatch/internal/grid"
	"github.com/swatchly/swatch/internal/model"
)

// GenerateFaviconSVG renders a palette as a miniature color grid.
// Empty cells get a neutral fill so the icon always reads as a full grid.
func GenerateFaviconSVG(palette *model.Palette) string {
	size := grid.ResolveSize(palette.GridSize)
	cells := grid.Build(palette)

	tile := grid.TileSize(32, palette.GridSize)
	if tile < 1 {
		tile = 1
	}

	var rects strings.Builder
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fill := "#e5e7eb" // Neutral gray for empty cells
			if cell := cells[y*size+x]; cell != nil {
				fill = cell.Background
			}
			fmt.Fprintf(&rects,
				`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
				x*tile, y*tile, tile, tile, html.EscapeString(fill),
			)
		}
	}

	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect width="32" height="32" rx="6" fill="#1f2937"/><g transform="translate(%d,%d)">%s</g></svg>`,
		(32-tile*size)/2, (32-tile*size)/2, rects.String(),
	)
}

// generateLetterFaviconSVG is the fallback when no palette is loaded.
func generateLetterFaviconSVG(libraryName string) string {
	letter := "S"
	if libraryName != "" {
		letter = strings.ToUpper(libraryName[:1])
	}
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect width="32" height="32" rx="6" fill="#3b82f6"/><text x="50%%" y="50%%" dominant-baseline="central" text-anchor="middle" fill="white" font-family="system-ui, -apple-system, sans-serif" font-weight="600" font-size="20">%s</text></svg>`,
		html.EscapeString(letter),
	)
}

// GetFavicon serves an SVG favicon generated from the loaded palette, so the
// browser tab reflects the colors currently loaded in the library.
func (h *Handler) GetFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	active, err := h.ctx().PaletteService.Active()
	if err == nil && active != nil {
		w.Write([]byte(GenerateFaviconSVG(active)))
		return
	}

	libraryName := ""
	if cfg, err := h.ctx().LibraryStore.Load(); err == nil {
		libraryName = cfg.Name
	}
	w.Write([]byte(generateLetterFaviconSVG(libraryName)))
}
