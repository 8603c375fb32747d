package planner

import "fmt"

// LevelFor returns the highest level whose threshold is at or below xp.
// Experience at or above the last threshold resolves to the maximum level.
func (t LevelTable) LevelFor(xp float64) (int, error) {
	if len(t) == 0 || xp < float64(t[0].Experience) {
		return 0, fmt.Errorf("planner: %v xp: %w", xp, ErrBelowTable)
	}
	for i, th := range t {
		if xp < float64(th.Experience) {
			return t[i-1].Level, nil
		}
	}
	return t.MaxLevel(), nil
}

// Resolve returns the tier in use at level and the tier unlocked next.
// current is nil when no tier is unlocked yet; next is nil past the last unlock.
func (t TierTable) Resolve(level int) (current, next *Tier) {
	for i := range t {
		if level < t[i].UnlockLevel {
			return current, &t[i]
		}
		current = &t[i]
	}
	return current, nil
}

// Scaled returns a copy of the table with experience multiplied by mult.
// Unlock levels are unchanged.
func (t TierTable) Scaled(mult float64) TierTable {
	out := make(TierTable, len(t))
	for i, tier := range t {
		tier.Experience *= mult
		out[i] = tier
	}
	return out
}
