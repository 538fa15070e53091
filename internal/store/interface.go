package store

import "github.com/swatchly/swatch/internal/model"

// PaletteStore handles palette persistence.
type PaletteStore interface {
	Create(palette *model.Palette) error
	Get(paletteID string) (*model.Palette, error)
	Update(palette *model.Palette) error
	Delete(paletteID string) error
	List() ([]*model.Palette, error)
	FindByAlias(alias string) (*model.Palette, error)
}

// LibraryStore handles library config persistence.
type LibraryStore interface {
	Load() (*model.LibraryConfig, error)
	Save(cfg *model.LibraryConfig) error
	Exists() bool
	EnsureInitialized(defaultName string) error
}

// GlobalStore handles global config persistence.
type GlobalStore interface {
	Load() (*model.GlobalConfig, error)
	Save(cfg *model.GlobalConfig) error
	EnsureExists() error
}
