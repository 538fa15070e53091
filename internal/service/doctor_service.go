package service

import (
	"fmt"

	"github.com/swatchly/swatch/internal/color"
	"github.com/swatchly/swatch/internal/grid"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/store"
)

// IssueSeverity classifies how serious a doctor finding is.
type IssueSeverity string

const (
	// SeverityWarning findings are tolerated at render time: the grid
	// builder silently works around them.
	SeverityWarning IssueSeverity = "warning"
	// SeverityError findings indicate data the rest of the tool cannot use.
	SeverityError IssueSeverity = "error"
)

// Issue describes one problem found in stored palette data.
type Issue struct {
	PaletteID    string        `json:"palette_id,omitempty"`
	PaletteTitle string        `json:"palette_title,omitempty"`
	Severity     IssueSeverity `json:"severity"`
	Message      string        `json:"message"`
}

// DoctorService inspects stored palettes for stale or inconsistent data.
// Findings are reported, never auto-fixed: render paths already tolerate all
// of them, so repair stays an explicit user decision.
type DoctorService struct {
	paletteStore store.PaletteStore
	libraryStore store.LibraryStore
}

// NewDoctorService creates a new doctor service.
func NewDoctorService(paletteStore store.PaletteStore, libraryStore store.LibraryStore) *DoctorService {
	return &DoctorService{paletteStore: paletteStore, libraryStore: libraryStore}
}

// Check scans every palette and the library config, returning all findings.
func (s *DoctorService) Check() ([]Issue, error) {
	palettes, err := s.paletteStore.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list palettes: %w", err)
	}

	issues := []Issue{}
	for _, p := range palettes {
		issues = append(issues, checkPalette(p)...)
	}

	library, err := s.libraryStore.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load library config: %w", err)
	}
	if library.ActivePalette != "" {
		if _, err := s.paletteStore.Get(library.ActivePalette); err != nil {
			issues = append(issues, Issue{
				PaletteID: library.ActivePalette,
				Severity:  SeverityError,
				Message:   "active palette in library config does not exist",
			})
		}
	}

	return issues, nil
}

func checkPalette(p *model.Palette) []Issue {
	issues := []Issue{}

	add := func(severity IssueSeverity, format string, args ...any) {
		issues = append(issues, Issue{
			PaletteID:    p.ID,
			PaletteTitle: p.Title,
			Severity:     severity,
			Message:      fmt.Sprintf(format, args...),
		})
	}

	resolved := grid.ResolveSize(p.GridSize)
	if p.GridSize < 1 {
		add(SeverityWarning, "grid size %d is invalid; rendering falls back to %dx%d", p.GridSize, resolved, resolved)
	}

	totalCells := resolved * resolved
	seen := map[int]int{}
	for _, a := range p.Colors {
		if a.Index < 0 || a.Index >= totalCells {
			add(SeverityWarning, "color at index %d is outside the %d-cell grid and will not render", a.Index, totalCells)
			continue
		}
		seen[a.Index]++
	}
	for index := 0; index < totalCells; index++ {
		if count := seen[index]; count > 1 {
			add(SeverityWarning, "index %d has %d assignments; only the last one renders", index, count)
		}
	}

	for _, a := range p.Colors {
		if !color.IsValidHex(a.Color.Background) {
			add(SeverityError, "color at index %d has invalid hex value %q", a.Index, a.Color.Background)
		}
	}

	if p.Alias == "" {
		add(SeverityWarning, "palette has no alias; run 'swatch edit' to set one")
	}

	return issues
}
