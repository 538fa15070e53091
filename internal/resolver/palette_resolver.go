package resolver

import (
	"fmt"

	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/prompt"
	"github.com/swatchly/swatch/internal/store"
)

// PaletteResolver handles palette selection logic.
type PaletteResolver struct {
	paletteStore store.PaletteStore
	libraryStore store.LibraryStore
	prompter     prompt.Prompter
}

// NewPaletteResolver creates a new palette resolver.
func NewPaletteResolver(
	paletteStore store.PaletteStore,
	libraryStore store.LibraryStore,
	prompter prompt.Prompter,
) *PaletteResolver {
	return &PaletteResolver{
		paletteStore: paletteStore,
		libraryStore: libraryStore,
		prompter:     prompter,
	}
}

// Resolve determines which palette to use:
// 1. If an explicit ID or alias is provided, use it
// 2. If only one palette exists, use it
// 3. If the library has an active palette, use it
// 4. If interactive, prompt the user
// 5. Otherwise, fail with error
func (r *PaletteResolver) Resolve(explicit string, interactive bool) (*model.Palette, error) {
	// 1. Explicit ID or alias
	if explicit != "" {
		return r.FindByIDOrAlias(explicit)
	}

	// 2. Get all palettes
	palettes, err := r.paletteStore.List()
	if err != nil {
		return nil, err
	}

	if len(palettes) == 0 {
		return nil, fmt.Errorf("no palettes found; run 'swatch save' first")
	}

	// 3. Single palette - use it
	if len(palettes) == 1 {
		return palettes[0], nil
	}

	// 4. Check for the library's active palette
	libCfg, _ := r.libraryStore.Load()
	if libCfg != nil && libCfg.ActivePalette != "" {
		if p, err := r.paletteStore.Get(libCfg.ActivePalette); err == nil {
			return p, nil
		}
	}

	// 5. Multiple palettes, no active one
	if !interactive {
		return nil, fmt.Errorf("multiple palettes exist; specify one by ID or alias")
	}

	// 6. Prompt user (aliases are the friendly handles)
	options := make([]string, len(palettes))
	byOption := make(map[string]*model.Palette, len(palettes))
	for i, p := range palettes {
		label := p.Alias
		if label == "" {
			label = p.ID
		}
		options[i] = label
		byOption[label] = p
	}

	choice, err := r.prompter.Select("Select palette", options)
	if err != nil {
		return nil, err
	}
	return byOption[choice], nil
}

// FindByIDOrAlias finds a palette by ID first, then by alias.
func (r *PaletteResolver) FindByIDOrAlias(idOrAlias string) (*model.Palette, error) {
	palette, err := r.paletteStore.Get(idOrAlias)
	if err == nil {
		return palette, nil
	}
	return r.paletteStore.FindByAlias(idOrAlias)
}
