// Package planner computes birdhouse training plans.
//
// The planner is pure logic over three immutable reference tables: level
// thresholds, birdhouse tiers and Leagues multipliers. It has no I/O; the
// prompt, wizard and CLI layers decide how requests are collected and how
// plans are shown.
package planner

import (
	"fmt"
	"sort"
	"strings"
)

// BirdhousesPerTrip is the number of birdhouses built and emptied in one trip.
const BirdhousesPerTrip = 4

// Threshold is the minimum cumulative experience for a level.
type Threshold struct {
	Level      int
	Experience int
}

// LevelTable maps levels to experience thresholds, sorted by level.
type LevelTable []Threshold

// NewLevelTable builds a LevelTable from a level -> experience mapping.
func NewLevelTable(levels map[int]int) LevelTable {
	table := make(LevelTable, 0, len(levels))
	for lvl, xp := range levels {
		table = append(table, Threshold{Level: lvl, Experience: xp})
	}
	sort.Slice(table, func(i, j int) bool {
		return table[i].Level < table[j].Level
	})
	return table
}

// Experience returns the threshold for the given level.
func (t LevelTable) Experience(level int) (int, bool) {
	i := sort.Search(len(t), func(i int) bool { return t[i].Level >= level })
	if i < len(t) && t[i].Level == level {
		return t[i].Experience, true
	}
	return 0, false
}

// MaxLevel returns the highest tabulated level.
func (t LevelTable) MaxLevel() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Level
}

// Tier is one birdhouse tier.
type Tier struct {
	Name        string
	UnlockLevel int
	Experience  float64 // per birdhouse
}

// Label returns the short tier name, e.g. "Oak" for "Oak birdhouse".
func (t Tier) Label() string {
	return TierLabel(t.Name)
}

// Logs returns the log label for the tier, e.g. "Oak logs" for "Oak birdhouse".
func (t Tier) Logs() string {
	if label := t.Label(); label != "" {
		return label + " logs"
	}
	return "logs"
}

// TierLabel returns the first word of a tier name.
func TierLabel(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// TripExperience is the experience gained from one full trip.
func (t Tier) TripExperience() float64 {
	return t.Experience * BirdhousesPerTrip
}

// TierTable lists birdhouse tiers in unlock order.
type TierTable []Tier

// First returns the earliest unlocked tier.
func (t TierTable) First() (Tier, bool) {
	if len(t) == 0 {
		return Tier{}, false
	}
	return t[0], true
}

// MultiplierTable maps a Leagues relic tier to its experience multiplier.
type MultiplierTable map[int]float64

// Tiers returns the multiplier tiers in ascending order.
func (m MultiplierTable) Tiers() []int {
	tiers := make([]int, 0, len(m))
	for tier := range m {
		tiers = append(tiers, tier)
	}
	sort.Ints(tiers)
	return tiers
}

// Range returns the lowest and highest multiplier tier.
func (m MultiplierTable) Range() (lo, hi int) {
	tiers := m.Tiers()
	if len(tiers) == 0 {
		return 0, 0
	}
	return tiers[0], tiers[len(tiers)-1]
}

// Tables bundles the reference data a Planner works on.
type Tables struct {
	Levels      LevelTable
	Tiers       TierTable
	Multipliers MultiplierTable
}

// Validate checks table invariants.
func (t Tables) Validate() error {
	if len(t.Levels) == 0 {
		return fmt.Errorf("planner: level table is empty")
	}
	for i := 1; i < len(t.Levels); i++ {
		prev, cur := t.Levels[i-1], t.Levels[i]
		if cur.Level <= prev.Level {
			return fmt.Errorf("planner: level %d listed after level %d", cur.Level, prev.Level)
		}
		if cur.Experience <= prev.Experience {
			return fmt.Errorf("planner: level %d threshold %d is not above level %d threshold %d",
				cur.Level, cur.Experience, prev.Level, prev.Experience)
		}
	}

	if len(t.Tiers) == 0 {
		return fmt.Errorf("planner: tier table is empty")
	}
	for i, tier := range t.Tiers {
		if strings.TrimSpace(tier.Name) == "" {
			return fmt.Errorf("planner: tier %d has no name", i)
		}
		if tier.Experience <= 0 {
			return fmt.Errorf("planner: tier %q: %w", tier.Name, ErrNonPositiveYield)
		}
		if _, ok := t.Levels.Experience(tier.UnlockLevel); !ok {
			return fmt.Errorf("planner: tier %q unlocks at level %d: %w", tier.Name, tier.UnlockLevel, ErrUnknownLevel)
		}
		if i > 0 && tier.UnlockLevel <= t.Tiers[i-1].UnlockLevel {
			return fmt.Errorf("planner: tier %q unlock level %d is not above %q (%d)",
				tier.Name, tier.UnlockLevel, t.Tiers[i-1].Name, t.Tiers[i-1].UnlockLevel)
		}
	}

	for tier, mult := range t.Multipliers {
		if mult <= 1 {
			return fmt.Errorf("planner: multiplier tier %d has value %v, want > 1", tier, mult)
		}
	}
	return nil
}
