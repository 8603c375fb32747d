// Package config provides YAML-based loading of the planner's reference
// tables and environment-driven settings for the CLI.
package config

import (
	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

// Table file names, shared by every directory in the search order.
const (
	LevelsFile      = "levels.yaml"
	BirdhousesFile  = "birdhouses.yaml"
	MultipliersFile = "multipliers.yaml"
)

// LevelsDoc is the YAML layout of levels.yaml.
type LevelsDoc struct {
	Levels map[int]int `yaml:"levels"` // level -> minimum experience
}

// BirdhousesDoc is the YAML layout of birdhouses.yaml.
type BirdhousesDoc struct {
	Birdhouses []Birdhouse `yaml:"birdhouses"`
}

// Birdhouse is one tier entry in birdhouses.yaml.
type Birdhouse struct {
	Name        string  `yaml:"name"`
	HunterLevel int     `yaml:"hunter_level"`
	HunterXP    float64 `yaml:"hunter_xp"`
}

// MultipliersDoc is the YAML layout of multipliers.yaml.
type MultipliersDoc struct {
	Multipliers map[int]float64 `yaml:"multipliers"`
}

// Sources records which file each table was read from.
// "embedded" marks the built-in default.
type Sources struct {
	Levels      string
	Birdhouses  string
	Multipliers string
}

// ToTables converts parsed documents into planner tables.
func ToTables(levels LevelsDoc, birdhouses BirdhousesDoc, multipliers MultipliersDoc) planner.Tables {
	tiers := make(planner.TierTable, 0, len(birdhouses.Birdhouses))
	for _, b := range birdhouses.Birdhouses {
		tiers = append(tiers, planner.Tier{
			Name:        b.Name,
			UnlockLevel: b.HunterLevel,
			Experience:  b.HunterXP,
		})
	}

	mults := make(planner.MultiplierTable, len(multipliers.Multipliers))
	for tier, m := range multipliers.Multipliers {
		mults[tier] = m
	}

	return planner.Tables{
		Levels:      planner.NewLevelTable(levels.Levels),
		Tiers:       tiers,
		Multipliers: mults,
	}
}
