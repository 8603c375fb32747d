package config

import (
	_ "embed"
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

//go:embed defaults/birdhouses.yaml
var defaultBirdhousesYAML []byte

//go:embed defaults/multipliers.yaml
var defaultMultipliersYAML []byte

// EmbeddedSource is the Sources value for a table read from the binary.
const EmbeddedSource = "embedded"

// GetDefaultYAML returns the embedded default YAML for a table file.
func GetDefaultYAML(name string) []byte {
	switch name {
	case LevelsFile:
		return defaultLevelsYAML
	case BirdhousesFile:
		return defaultBirdhousesYAML
	case MultipliersFile:
		return defaultMultipliersYAML
	default:
		return nil
	}
}
