package service

import (
	"fmt"
	"sort"

	swerr "github.com/swatchly/swatch/internal/errors"
	"github.com/swatchly/swatch/internal/grid"
	"github.com/swatchly/swatch/internal/id"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/prompt"
	"github.com/swatchly/swatch/internal/resolver"
	"github.com/swatchly/swatch/internal/store"
	"github.com/swatchly/swatch/internal/util"
)

// PaletteService contains business logic for palette operations.
type PaletteService struct {
	paletteStore store.PaletteStore
	libraryStore store.LibraryStore
	aliasService *AliasService
}

// NewPaletteService creates a new palette service.
func NewPaletteService(paletteStore store.PaletteStore, libraryStore store.LibraryStore, aliasService *AliasService) *PaletteService {
	return &PaletteService{
		paletteStore: paletteStore,
		libraryStore: libraryStore,
		aliasService: aliasService,
	}
}

// SaveInput contains the fields needed to save a new palette.
type SaveInput struct {
	Title    string
	GridSize int
	Colors   []model.ColorAssignment
	Creator  string
}

// Save validates the input, assigns an ID and alias, and persists the palette.
// The grid size is stored as given; resolution to a usable dimension happens
// at render time so that stale values remain inspectable.
func (s *PaletteService) Save(input SaveInput) (*model.Palette, error) {
	if input.Title == "" {
		return nil, swerr.InvalidField("title", "cannot be empty")
	}

	alias, err := s.aliasService.GenerateAlias(input.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to generate alias: %w", err)
	}

	now := util.NowMillis()
	palette := &model.Palette{
		ID:              id.Generate(),
		Alias:           alias,
		Title:           input.Title,
		GridSize:        input.GridSize,
		Colors:          input.Colors,
		Creator:         input.Creator,
		CreatedAtMillis: now,
		UpdatedAtMillis: now,
	}

	if err := s.paletteStore.Create(palette); err != nil {
		return nil, fmt.Errorf("failed to save palette: %w", err)
	}

	return palette, nil
}

// Get retrieves a palette by ID.
func (s *PaletteService) Get(paletteID string) (*model.Palette, error) {
	return s.paletteStore.Get(paletteID)
}

// Resolve finds a palette from an optional explicit identifier, falling back
// to the library's active palette and finally an interactive picker.
func (s *PaletteService) Resolve(explicit string, prompter prompt.Prompter, interactive bool) (*model.Palette, error) {
	r := resolver.NewPaletteResolver(s.paletteStore, s.libraryStore, prompter)
	return r.Resolve(explicit, interactive)
}

// List returns all palettes sorted by creation time, oldest first.
func (s *PaletteService) List() ([]*model.Palette, error) {
	palettes, err := s.paletteStore.List()
	if err != nil {
		return nil, err
	}
	sort.Slice(palettes, func(i, j int) bool {
		if palettes[i].CreatedAtMillis != palettes[j].CreatedAtMillis {
			return palettes[i].CreatedAtMillis < palettes[j].CreatedAtMillis
		}
		return palettes[i].ID < palettes[j].ID
	})
	return palettes, nil
}

// EditInput contains optional fields for editing a palette.
// Nil fields are left unchanged.
type EditInput struct {
	Title    *string
	Alias    *string
	GridSize *int
}

// Edit applies the non-nil fields of input to the palette and persists it.
// Changing the title regenerates the alias unless one was set explicitly.
func (s *PaletteService) Edit(paletteID string, input EditInput) (*model.Palette, error) {
	palette, err := s.paletteStore.Get(paletteID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, swerr.InvalidField("title", "cannot be empty")
		}
		palette.Title = *input.Title
		if !palette.AliasExplicit {
			alias, err := s.aliasService.GenerateAlias(palette.Title)
			if err != nil {
				return nil, fmt.Errorf("failed to regenerate alias: %w", err)
			}
			palette.Alias = alias
		}
	}

	if input.Alias != nil {
		if *input.Alias == "" {
			return nil, swerr.InvalidField("alias", "cannot be empty")
		}
		if *input.Alias != palette.Alias && !s.aliasService.IsAliasAvailable(*input.Alias) {
			return nil, swerr.InvalidField("alias", fmt.Sprintf("%q is already in use", *input.Alias))
		}
		palette.Alias = *input.Alias
		palette.AliasExplicit = true
	}

	if input.GridSize != nil {
		palette.GridSize = *input.GridSize
	}

	palette.UpdatedAtMillis = util.NowMillis()

	if err := s.paletteStore.Update(palette); err != nil {
		return nil, fmt.Errorf("failed to update palette: %w", err)
	}

	return palette, nil
}

// SetColor assigns a color to a cell index and persists the palette.
// Assigning to an index that already has an entry replaces it.
func (s *PaletteService) SetColor(paletteID string, index int, color model.ColorEntry) (*model.Palette, error) {
	palette, err := s.paletteStore.Get(paletteID)
	if err != nil {
		return nil, err
	}

	totalCells := grid.ResolveSize(palette.GridSize) * grid.ResolveSize(palette.GridSize)
	if index < 0 || index >= totalCells {
		return nil, swerr.InvalidField("index", fmt.Sprintf("%d is out of range for a %d-cell grid", index, totalCells))
	}

	// Stale palettes may carry duplicate assignments for the same index.
	// Drop them all and append fresh so the new color wins under the
	// grid builder's last-write-wins rule.
	kept := palette.Colors[:0]
	for _, a := range palette.Colors {
		if a.Index != index {
			kept = append(kept, a)
		}
	}
	palette.Colors = append(kept, model.ColorAssignment{Index: index, Color: color})

	palette.UpdatedAtMillis = util.NowMillis()

	if err := s.paletteStore.Update(palette); err != nil {
		return nil, fmt.Errorf("failed to update palette: %w", err)
	}

	return palette, nil
}

// ClearColor removes any assignment at the given cell index.
// Clearing an empty cell is a no-op.
func (s *PaletteService) ClearColor(paletteID string, index int) (*model.Palette, error) {
	palette, err := s.paletteStore.Get(paletteID)
	if err != nil {
		return nil, err
	}

	kept := palette.Colors[:0]
	for _, a := range palette.Colors {
		if a.Index != index {
			kept = append(kept, a)
		}
	}
	palette.Colors = kept
	palette.UpdatedAtMillis = util.NowMillis()

	if err := s.paletteStore.Update(palette); err != nil {
		return nil, fmt.Errorf("failed to update palette: %w", err)
	}

	return palette, nil
}

// Duplicate clones a palette under a new ID with a freshly generated alias.
func (s *PaletteService) Duplicate(paletteID string, newTitle string) (*model.Palette, error) {
	source, err := s.paletteStore.Get(paletteID)
	if err != nil {
		return nil, err
	}

	title := newTitle
	if title == "" {
		title = source.Title + " Copy"
	}

	colors := make([]model.ColorAssignment, len(source.Colors))
	copy(colors, source.Colors)

	return s.Save(SaveInput{
		Title:    title,
		GridSize: source.GridSize,
		Colors:   colors,
		Creator:  source.Creator,
	})
}

// Delete removes a palette. If it was the library's active palette, the
// active marker is cleared as well.
func (s *PaletteService) Delete(paletteID string) error {
	palette, err := s.paletteStore.Get(paletteID)
	if err != nil {
		return err
	}

	if err := s.paletteStore.Delete(palette.ID); err != nil {
		return fmt.Errorf("failed to delete palette: %w", err)
	}

	library, err := s.libraryStore.Load()
	if err != nil {
		// The palette itself is gone; a broken library config shouldn't
		// make the delete look failed.
		fmt.Printf("Warning: could not load library config: %v\n", err)
		return nil
	}
	if library.IsActive(palette.ID) {
		library.ClearActive(palette.ID)
		if err := s.libraryStore.Save(library); err != nil {
			fmt.Printf("Warning: could not clear active palette: %v\n", err)
		}
	}

	return nil
}

// Load marks a palette as the library's active palette.
func (s *PaletteService) Load(paletteID string) (*model.Palette, error) {
	palette, err := s.paletteStore.Get(paletteID)
	if err != nil {
		return nil, err
	}

	library, err := s.libraryStore.Load()
	if err != nil {
		return nil, err
	}
	library.SetActive(palette.ID)
	if err := s.libraryStore.Save(library); err != nil {
		return nil, fmt.Errorf("failed to save library config: %w", err)
	}

	return palette, nil
}

// Active returns the library's active palette, or nil if none is set.
func (s *PaletteService) Active() (*model.Palette, error) {
	library, err := s.libraryStore.Load()
	if err != nil {
		return nil, err
	}
	if library.ActivePalette == "" {
		return nil, nil
	}
	palette, err := s.paletteStore.Get(library.ActivePalette)
	if swerr.IsNotFound(err) {
		// Active palette was deleted out from under us; treat as unset.
		return nil, nil
	}
	return palette, err
}
