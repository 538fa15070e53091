package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/swatchly/swatch/internal/config"
	"github.com/swatchly/swatch/internal/id"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/version"
)

// FileLibraryStore implements LibraryStore using the filesystem.
type FileLibraryStore struct {
	paths *config.Paths
}

// NewLibraryStore creates a new library store.
func NewLibraryStore(paths *config.Paths) *FileLibraryStore {
	return &FileLibraryStore{paths: paths}
}

// Load reads the library config from disk.
// Returns a minimal default config if the file doesn't exist.
func (s *FileLibraryStore) Load() (*model.LibraryConfig, error) {
	path := s.paths.LibraryConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.LibraryConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read library config: %w", err)
	}

	var cfg model.LibraryConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid library config: %w", err)
	}

	// Strict version validation (only if file exists and has content)
	if cfg.SwatchSchema == "" {
		return nil, version.MissingLibrarySchema(path)
	}
	if cfg.SwatchSchema != version.CurrentLibrarySchema() {
		return nil, version.InvalidLibrarySchema(path, cfg.SwatchSchema)
	}

	return &cfg, nil
}

// Save writes the library config to disk.
func (s *FileLibraryStore) Save(cfg *model.LibraryConfig) error {
	// Stamp current schema version
	cfg.SwatchSchema = version.CurrentLibrarySchema()

	path := s.paths.LibraryConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create swatch directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if the library config file exists.
func (s *FileLibraryStore) Exists() bool {
	_, err := os.Stat(s.paths.LibraryConfigPath())
	return err == nil
}

// EnsureInitialized creates the library config with an ID if it doesn't
// exist yet. Used as a graceful upgrade for libraries created before
// config files carried IDs.
func (s *FileLibraryStore) EnsureInitialized(defaultName string) error {
	if s.Exists() {
		cfg, err := s.Load()
		if err != nil {
			return err
		}
		if cfg.ID != "" {
			return nil
		}
		cfg.ID = id.Generate()
		return s.Save(cfg)
	}

	return s.Save(&model.LibraryConfig{
		ID:   id.Generate(),
		Name: defaultName,
	})
}
