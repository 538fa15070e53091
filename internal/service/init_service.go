package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/swatchly/swatch/internal/config"
	swerr "github.com/swatchly/swatch/internal/errors"
	"github.com/swatchly/swatch/internal/grid"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/store"
)

// InitService sets up a new palette library.
type InitService struct {
	paths          *config.Paths
	libraryStore   store.LibraryStore
	globalStore    store.GlobalStore
	paletteService *PaletteService
}

// NewInitService creates a new init service.
func NewInitService(
	paths *config.Paths,
	libraryStore store.LibraryStore,
	globalStore store.GlobalStore,
	paletteService *PaletteService,
) *InitService {
	return &InitService{
		paths:          paths,
		libraryStore:   libraryStore,
		globalStore:    globalStore,
		paletteService: paletteService,
	}
}

// InitResult describes what Initialize created.
type InitResult struct {
	LibraryName    string
	StarterPalette *model.Palette
}

// Initialize creates the library at the configured root, seeds a starter
// palette, and registers the library in the global config. Registration
// failure is non-fatal: the library works standalone, discovery just won't
// find it from outside its directory tree.
func (s *InitService) Initialize(name string, gridSize int, creator string) (*InitResult, error) {
	if s.libraryStore.Exists() {
		return nil, &swerr.AlreadyExistsError{Resource: "library", ID: s.paths.SwatchRoot()}
	}

	if name == "" {
		abs, err := filepath.Abs(s.paths.SwatchRoot())
		if err == nil {
			name = filepath.Base(filepath.Dir(abs))
		} else {
			name = "swatch"
		}
	}

	if err := s.libraryStore.EnsureInitialized(name); err != nil {
		return nil, fmt.Errorf("failed to initialize library: %w", err)
	}

	library, err := s.libraryStore.Load()
	if err != nil {
		return nil, err
	}
	library.DefaultGridSize = grid.ResolveSize(gridSize)
	if err := s.libraryStore.Save(library); err != nil {
		return nil, fmt.Errorf("failed to save library config: %w", err)
	}

	starter, err := s.createStarterPalette(library.DefaultGridSize, creator)
	if err != nil {
		return nil, err
	}

	library.SetActive(starter.ID)
	if err := s.libraryStore.Save(library); err != nil {
		return nil, fmt.Errorf("failed to save library config: %w", err)
	}

	s.registerGlobally(library.Name)

	return &InitResult{LibraryName: library.Name, StarterPalette: starter}, nil
}

// createStarterPalette fills every cell of the grid with seed colors so a
// fresh library has something to preview immediately.
func (s *InitService) createStarterPalette(gridSize int, creator string) (*model.Palette, error) {
	totalCells := gridSize * gridSize
	colors := make([]model.ColorAssignment, 0, totalCells)
	for i := 0; i < totalCells; i++ {
		colors = append(colors, model.ColorAssignment{
			Index: i,
			Color: model.ColorEntry{Background: model.NextSeedColor(i)},
		})
	}

	return s.paletteService.Save(SaveInput{
		Title:    "Starter Palette",
		GridSize: gridSize,
		Colors:   colors,
		Creator:  creator,
	})
}

func (s *InitService) registerGlobally(name string) {
	if err := s.globalStore.EnsureExists(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create global config: %v\n", err)
		return
	}
	global, err := s.globalStore.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load global config: %v\n", err)
		return
	}
	abs, err := filepath.Abs(s.paths.SwatchRoot())
	if err != nil {
		abs = s.paths.SwatchRoot()
	}
	global.RegisterLibrary(name, filepath.Dir(abs))
	if err := s.globalStore.Save(global); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not register library globally: %v\n", err)
	}
}
