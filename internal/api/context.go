package api

import (
	"fmt"
	"os"

	"github.com/swatchly/swatch/internal/config"
	"github.com/swatchly/swatch/internal/service"
	"github.com/swatchly/swatch/internal/store"
)

// LibraryContext bundles all per-library dependencies needed by the HTTP handlers.
// The Handler holds one of these and can swap it out on library switch.
type LibraryContext struct {
	Paths          *config.Paths
	PaletteStore   store.PaletteStore
	LibraryStore   store.LibraryStore
	PaletteService *service.PaletteService
	ShareService   *service.ShareService
	DoctorService  *service.DoctorService
	Creator        string
	LibraryRoot    string
}

// BuildLibraryContext creates a fully-wired LibraryContext from a library root
// path and optional data location override (empty string means default .swatch/).
//
// This is a pure construction function: it validates the path exists and wires
// up stores/services but does not perform any disk writes. Callers are
// responsible for any initialization (e.g. EnsureInitialized) separately.
func BuildLibraryContext(libraryRoot, dataLocation, creator string) (*LibraryContext, error) {
	if libraryRoot == "" {
		return nil, fmt.Errorf("library root is required")
	}

	// Verify the library path actually exists on disk
	if _, err := os.Stat(libraryRoot); err != nil {
		return nil, fmt.Errorf("library path does not exist: %s", libraryRoot)
	}

	paths := config.NewPaths(libraryRoot, dataLocation)

	paletteStore := store.NewPaletteStore(paths)
	libraryStore := store.NewLibraryStore(paths)

	aliasService := service.NewAliasService(paletteStore)
	paletteService := service.NewPaletteService(paletteStore, libraryStore, aliasService)
	shareService := service.NewShareService(paletteStore)
	doctorService := service.NewDoctorService(paletteStore, libraryStore)

	return &LibraryContext{
		Paths:          paths,
		PaletteStore:   paletteStore,
		LibraryStore:   libraryStore,
		PaletteService: paletteService,
		ShareService:   shareService,
		DoctorService:  doctorService,
		Creator:        creator,
		LibraryRoot:    libraryRoot,
	}, nil
}
