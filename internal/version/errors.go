package version

import (
	"fmt"
)

// SchemaVersionError indicates a schema version problem during file read/write.
type SchemaVersionError struct {
	FileType    string // "palette", "library config", "global config"
	FilePath    string // Path to the problematic file
	Found       string // What was found (e.g., "missing", "library/2")
	Expected    string // What was expected (e.g., "library/1")
	MinRequired string // Minimum Swatch version required (if upgrade needed)
}

func (e *SchemaVersionError) Error() string {
	if e.MinRequired != "" {
		return fmt.Sprintf(
			"%s schema version %s requires Swatch >= %s (file: %s, supports up to: %s)",
			e.FileType, e.Found, e.MinRequired, e.FilePath, e.Expected,
		)
	}
	if e.Found == "missing" {
		return fmt.Sprintf(
			"%s has no schema version (file: %s)",
			e.FileType, e.FilePath,
		)
	}
	return fmt.Sprintf(
		"%s has invalid schema version: found %s, expected %s (file: %s)",
		e.FileType, e.Found, e.Expected, e.FilePath,
	)
}

// MissingPaletteVersion creates an error for a palette file missing the _v field.
func MissingPaletteVersion(path string) error {
	return &SchemaVersionError{
		FileType: "palette",
		FilePath: path,
		Found:    "missing",
		Expected: fmt.Sprintf("%d", CurrentPaletteVersion),
	}
}

// InvalidPaletteVersion creates an error for a palette with an unsupported version.
func InvalidPaletteVersion(path string, found, expected int) error {
	e := &SchemaVersionError{
		FileType: "palette",
		FilePath: path,
		Found:    fmt.Sprintf("%d", found),
		Expected: fmt.Sprintf("%d", expected),
	}
	// If the found version is newer, look up the min required Swatch version
	if found > expected {
		key := fmt.Sprintf("palette/%d", found)
		if minSwatch, ok := MinSwatchVersion[key]; ok {
			e.MinRequired = minSwatch
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}

// MissingLibrarySchema creates an error for a library config missing swatch_schema.
func MissingLibrarySchema(path string) error {
	return &SchemaVersionError{
		FileType: "library config",
		FilePath: path,
		Found:    "missing",
		Expected: CurrentLibrarySchema(),
	}
}

// InvalidLibrarySchema creates an error for a library config with an unsupported schema.
func InvalidLibrarySchema(path, found string) error {
	e := &SchemaVersionError{
		FileType: "library config",
		FilePath: path,
		Found:    found,
		Expected: CurrentLibrarySchema(),
	}
	if v, err := ParseLibraryVersion(found); err == nil && v > CurrentLibraryVersion {
		if minSwatch, ok := MinSwatchVersion[found]; ok {
			e.MinRequired = minSwatch
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}

// MissingGlobalSchema creates an error for a global config missing swatch_schema.
func MissingGlobalSchema(path string) error {
	return &SchemaVersionError{
		FileType: "global config",
		FilePath: path,
		Found:    "missing",
		Expected: CurrentGlobalSchema(),
	}
}

// InvalidGlobalSchema creates an error for a global config with an unsupported schema.
func InvalidGlobalSchema(path, found string) error {
	e := &SchemaVersionError{
		FileType: "global config",
		FilePath: path,
		Found:    found,
		Expected: CurrentGlobalSchema(),
	}
	if v, err := ParseGlobalVersion(found); err == nil && v > CurrentGlobalVersion {
		if minSwatch, ok := MinSwatchVersion[found]; ok {
			e.MinRequired = minSwatch
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}
