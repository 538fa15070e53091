package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/swatchly/swatch/internal/config"
	"github.com/swatchly/swatch/internal/creator"
	"github.com/swatchly/swatch/internal/discovery"
	swerr "github.com/swatchly/swatch/internal/errors"
	"github.com/swatchly/swatch/internal/git"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/prompt"
	"github.com/swatchly/swatch/internal/resolver"
	"github.com/swatchly/swatch/internal/service"
	"github.com/swatchly/swatch/internal/store"
)

// App holds all the dependencies for the CLI.
// Uses interfaces for testability.
type App struct {
	GitClient       *git.Client
	GlobalStore     store.GlobalStore
	Paths           *config.Paths
	PaletteStore    store.PaletteStore
	LibraryStore    store.LibraryStore
	Prompter        prompt.Prompter
	InitService     *service.InitService
	PaletteService  *service.PaletteService
	AliasService    *service.AliasService
	ShareService    *service.ShareService
	DoctorService   *service.DoctorService
	PaletteResolver *resolver.PaletteResolver
	LibraryRoot     string
	DataLocation    string
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(interactive bool) (*App, error) {
	gitClient := git.NewClient()
	globalStore := store.NewGlobalStore()

	// Load global config with warnings (don't silently ignore errors)
	globalCfg, err := globalStore.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load global config: %v\n", err)
		globalCfg = nil
	}

	// Discover library root by walking up from cwd
	var libraryRoot, dataLocation string
	result, err := discovery.DiscoverLibrary(globalCfg)
	if err != nil {
		// This is a real error (e.g., global config says path exists but it doesn't)
		return nil, err
	}
	if result != nil {
		libraryRoot = result.LibraryRoot
		dataLocation = result.DataLocation

		// Auto-register unregistered libraries
		if !result.WasRegistered && globalCfg != nil {
			registerLibrary(globalStore, globalCfg, libraryRoot, dataLocation)
		}
	}
	// libraryRoot may be empty - that's OK, RequireSwatch() will catch it

	paths := config.NewPaths(libraryRoot, dataLocation)
	paletteStore := store.NewPaletteStore(paths)
	libraryStore := store.NewLibraryStore(paths)

	// Ensure library config exists with ID (graceful upgrade for older libraries)
	if libraryRoot != "" {
		defaultName := filepath.Base(libraryRoot)
		if err := libraryStore.EnsureInitialized(defaultName); err != nil {
			// Non-fatal: log warning but continue
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize library config: %v\n", err)
		}
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	aliasService := service.NewAliasService(paletteStore)
	paletteService := service.NewPaletteService(paletteStore, libraryStore, aliasService)
	shareService := service.NewShareService(paletteStore)
	doctorService := service.NewDoctorService(paletteStore, libraryStore)
	initService := service.NewInitService(paths, libraryStore, globalStore, paletteService)
	paletteResolver := resolver.NewPaletteResolver(paletteStore, libraryStore, prompter)

	return &App{
		GitClient:       gitClient,
		GlobalStore:     globalStore,
		Paths:           paths,
		PaletteStore:    paletteStore,
		LibraryStore:    libraryStore,
		Prompter:        prompter,
		InitService:     initService,
		PaletteService:  paletteService,
		AliasService:    aliasService,
		ShareService:    shareService,
		DoctorService:   doctorService,
		PaletteResolver: paletteResolver,
		LibraryRoot:     libraryRoot,
		DataLocation:    dataLocation,
	}, nil
}

// newAppForCwd creates an App rooted at the current directory without
// running discovery. Used by init, which always targets cwd and must work
// even when the global config holds stale entries.
func newAppForCwd() (*App, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	gitClient := git.NewClient()
	globalStore := store.NewGlobalStore()
	paths := config.NewPaths(cwd, "")
	paletteStore := store.NewPaletteStore(paths)
	libraryStore := store.NewLibraryStore(paths)

	aliasService := service.NewAliasService(paletteStore)
	paletteService := service.NewPaletteService(paletteStore, libraryStore, aliasService)
	initService := service.NewInitService(paths, libraryStore, globalStore, paletteService)

	return &App{
		GitClient:      gitClient,
		GlobalStore:    globalStore,
		Paths:          paths,
		PaletteStore:   paletteStore,
		LibraryStore:   libraryStore,
		Prompter:       prompt.NewHuhPrompter(),
		InitService:    initService,
		PaletteService: paletteService,
		AliasService:   aliasService,
		LibraryRoot:    cwd,
	}, nil
}

// registerLibrary auto-registers a discovered but unregistered library in global config.
func registerLibrary(globalStore store.GlobalStore, globalCfg *model.GlobalConfig, libraryRoot, dataLocation string) {
	libraryName := filepath.Base(libraryRoot)
	globalCfg.RegisterLibrary(libraryName, libraryRoot)

	extras := model.LibraryExtras{}
	if dataLocation != "" {
		extras.DataLocation = dataLocation
	}
	globalCfg.SetLibraryExtras(libraryRoot, extras)

	// Best effort - don't fail if we can't save
	_ = globalStore.Save(globalCfg)
}

// RequireSwatch ensures a library is initialized for the current directory.
func (a *App) RequireSwatch() error {
	if a.LibraryRoot == "" {
		return &swerr.NotInitializedError{}
	}
	if !a.LibraryStore.Exists() {
		return &swerr.NotInitializedError{Path: a.LibraryRoot}
	}
	return nil
}

// GetCreator returns the username recorded on saved palettes.
func (a *App) GetCreator() (string, error) {
	return creator.GetCreator(a.GitClient)
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
