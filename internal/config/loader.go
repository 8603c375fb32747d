package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

// Load reads the three reference tables and validates them.
// Search order per file: dataDir -> ~/.birdhouse/data -> ./data -> embedded default.
// A file present in dataDir must parse; files elsewhere that fail to parse are skipped.
func Load(dataDir string) (planner.Tables, Sources, error) {
	var src Sources

	levels, path, err := loadDoc[LevelsDoc](LevelsFile, dataDir)
	if err != nil {
		return planner.Tables{}, src, err
	}
	src.Levels = path

	birdhouses, path, err := loadDoc[BirdhousesDoc](BirdhousesFile, dataDir)
	if err != nil {
		return planner.Tables{}, src, err
	}
	src.Birdhouses = path

	multipliers, path, err := loadDoc[MultipliersDoc](MultipliersFile, dataDir)
	if err != nil {
		return planner.Tables{}, src, err
	}
	src.Multipliers = path

	tables := ToTables(levels, birdhouses, multipliers)
	if err := tables.Validate(); err != nil {
		return planner.Tables{}, src, fmt.Errorf("config: invalid tables: %w", err)
	}
	return tables, src, nil
}

// Default returns the embedded tables.
func Default() (planner.Tables, error) {
	var (
		levels      LevelsDoc
		birdhouses  BirdhousesDoc
		multipliers MultipliersDoc
	)
	if err := yaml.Unmarshal(defaultLevelsYAML, &levels); err != nil {
		return planner.Tables{}, fmt.Errorf("config: embedded %s: %w", LevelsFile, err)
	}
	if err := yaml.Unmarshal(defaultBirdhousesYAML, &birdhouses); err != nil {
		return planner.Tables{}, fmt.Errorf("config: embedded %s: %w", BirdhousesFile, err)
	}
	if err := yaml.Unmarshal(defaultMultipliersYAML, &multipliers); err != nil {
		return planner.Tables{}, fmt.Errorf("config: embedded %s: %w", MultipliersFile, err)
	}
	return ToTables(levels, birdhouses, multipliers), nil
}

// loadDoc parses the first usable copy of a table file and returns where it came from.
func loadDoc[T any](name, dataDir string) (T, string, error) {
	var doc T

	// Try custom directory first
	if dataDir != "" {
		path := filepath.Join(expandHome(dataDir), name)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return doc, "", fmt.Errorf("config: failed to parse %s: %w", path, err)
			}
			return doc, path, nil
		case !errors.Is(err, fs.ErrNotExist):
			return doc, "", fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	// Try user data directory
	if userPath := userDataPath(name); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			var userDoc T
			if err := yaml.Unmarshal(data, &userDoc); err == nil {
				return userDoc, userPath, nil
			}
		}
	}

	// Try local data directory
	localPath := filepath.Join("data", name)
	if data, err := os.ReadFile(localPath); err == nil {
		var localDoc T
		if err := yaml.Unmarshal(data, &localDoc); err == nil {
			return localDoc, localPath, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(GetDefaultYAML(name), &doc); err != nil {
		return doc, "", fmt.Errorf("config: embedded %s: %w", name, err)
	}
	return doc, EmbeddedSource, nil
}

// userDataPath returns the path to a user data file, or empty if home is unavailable.
func userDataPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".birdhouse", "data", filename)
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
