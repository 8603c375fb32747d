package planner_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/birdhouse-planner/internal/config"
	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

func newPlanner(t *testing.T) *planner.Planner {
	t.Helper()
	tables, err := config.Default()
	require.NoError(t, err)
	p, err := planner.New(tables)
	require.NoError(t, err)
	return p
}

type wantStep struct {
	material string
	quantity int
	endXP    float64
}

func assertSteps(t *testing.T, plan *planner.Plan, want []wantStep) {
	t.Helper()
	require.Len(t, plan.Steps, len(want))
	for i, w := range want {
		assert.Equal(t, w.material, plan.Steps[i].Material, "step %d material", i)
		assert.Equal(t, w.quantity, plan.Steps[i].Quantity, "step %d quantity", i)
		assert.InDelta(t, w.endXP, plan.Steps[i].EndXP, 1e-9, "step %d end xp", i)
	}
}

func TestPlanSingleSegment(t *testing.T) {
	p := newPlanner(t)

	plan, err := p.Plan(planner.Request{CurrentXP: 400, TargetLevel: 10})
	require.NoError(t, err)

	assertSteps(t, plan, []wantStep{
		{"Regular logs", 4, 1520},
	})
	assert.Equal(t, 1, plan.Steps[0].Trips)
	assert.Equal(t, 1154, plan.TargetXP)
	assert.InDelta(t, 1520, plan.FinalXP, 1e-9)
	assert.Equal(t, 11, plan.FinalLevel)
}

func TestPlanCrossesTierUnlocks(t *testing.T) {
	p := newPlanner(t)

	plan, err := p.Plan(planner.Request{CurrentXP: 388, TargetLevel: 30})
	require.NoError(t, err)

	assertSteps(t, plan, []wantStep{
		{"Regular logs", 8, 2628},
		{"Oak logs", 12, 7668},
		{"Willow logs", 12, 14388},
	})
	assert.Equal(t, 32, plan.TotalLogs())
	assert.Equal(t, 8, plan.TotalTrips())
	assert.Equal(t, 30, plan.FinalLevel)
}

func TestPlanFullRun(t *testing.T) {
	p := newPlanner(t)

	plan, err := p.Plan(planner.Request{CurrentXP: 388, TargetLevel: 99})
	require.NoError(t, err)

	assertSteps(t, plan, []wantStep{
		{"Regular logs", 8, 2628},
		{"Oak logs", 12, 7668},
		{"Willow logs", 24, 21108},
		{"Teak logs", 52, 57508},
		{"Maple logs", 44, 93588},
		{"Mahogany logs", 164, 251028},
		{"Yew logs", 832, 1099668},
		{"Magic logs", 3284, 4843428},
		{"Redwood logs", 6828, 13037028},
	})
	assert.Equal(t, 99, plan.FinalLevel)
}

func TestPlanFromHighLevel(t *testing.T) {
	p := newPlanner(t)

	plan, err := p.Plan(planner.Request{CurrentXP: 2224614, TargetLevel: 99})
	require.NoError(t, err)

	assertSteps(t, plan, []wantStep{
		{"Magic logs", 2300, 4846614},
		{"Redwood logs", 6824, 13035414},
	})
}

func TestPlanWithMultiplier(t *testing.T) {
	p := newPlanner(t)

	// Relic tier 1 is a 5x multiplier in the embedded table.
	plan, err := p.Plan(planner.Request{CurrentXP: 388, TargetLevel: 30, MultiplierTier: 1})
	require.NoError(t, err)

	assert.Equal(t, 5.0, plan.Multiplier)
	assertSteps(t, plan, []wantStep{
		{"Regular logs", 4, 5988},
		{"Oak logs", 4, 14388},
	})
}

func TestPlanFractionalMultiplier(t *testing.T) {
	tables, err := config.Default()
	require.NoError(t, err)
	tables.Multipliers = planner.MultiplierTable{1: 1.5}
	p, err := planner.New(tables)
	require.NoError(t, err)

	plan, err := p.Plan(planner.Request{CurrentXP: 7028, TargetLevel: 50, MultiplierTier: 1})
	require.NoError(t, err)

	assertSteps(t, plan, []wantStep{
		{"Willow logs", 16, 20468},
		{"Teak logs", 36, 58268},
		{"Maple logs", 28, 92708},
		{"Mahogany logs", 8, 104228},
	})
}

func TestPlanIsIdempotent(t *testing.T) {
	p := newPlanner(t)
	req := planner.Request{CurrentXP: 12345, TargetLevel: 77, MultiplierTier: 4}

	first, err := p.Plan(req)
	require.NoError(t, err)
	second, err := p.Plan(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPlanProgressIsMonotonic(t *testing.T) {
	p := newPlanner(t)
	tiers := p.Tables().Tiers

	for _, start := range []int{388, 1000, 20000, 500000, 5000000} {
		plan, err := p.Plan(planner.Request{CurrentXP: start, TargetLevel: 99})
		require.NoError(t, err)

		prev := float64(start)
		for i, step := range plan.Steps {
			assert.Greater(t, step.EndXP, prev, "start %d step %d", start, i)
			assert.Equal(t, step.Trips*planner.BirdhousesPerTrip, step.Quantity)
			prev = step.EndXP
		}
		assert.LessOrEqual(t, len(plan.Steps), len(tiers)+1, "start %d", start)
		assert.GreaterOrEqual(t, plan.FinalXP, float64(plan.TargetXP))
	}
}

func TestPlanValidationErrors(t *testing.T) {
	p := newPlanner(t)

	tests := []struct {
		name    string
		req     planner.Request
		wantErr error
	}{
		{"below first unlock", planner.Request{CurrentXP: 50, TargetLevel: 10}, planner.ErrBelowMinimumExperience},
		{"negative experience", planner.Request{CurrentXP: -1, TargetLevel: 10}, planner.ErrBelowMinimumExperience},
		{"target already passed", planner.Request{CurrentXP: 1200, TargetLevel: 10}, planner.ErrTargetAlreadyReached},
		{"target exactly reached", planner.Request{CurrentXP: 1154, TargetLevel: 10}, planner.ErrTargetAlreadyReached},
		{"target above table", planner.Request{CurrentXP: 400, TargetLevel: 120}, planner.ErrUnknownLevel},
		{"target zero", planner.Request{CurrentXP: 400, TargetLevel: 0}, planner.ErrUnknownLevel},
		{"multiplier tier too high", planner.Request{CurrentXP: 400, TargetLevel: 10, MultiplierTier: 8}, planner.ErrMultiplierOutOfRange},
		{"multiplier tier negative", planner.Request{CurrentXP: 400, TargetLevel: 10, MultiplierTier: -2}, planner.ErrMultiplierOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := p.Plan(tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, plan)
		})
	}
}

func TestEstimateStaysOnStartingTier(t *testing.T) {
	p := newPlanner(t)

	est, err := p.Estimate(planner.Request{CurrentXP: 388, TargetLevel: 30})
	require.NoError(t, err)

	assert.Equal(t, "Regular birdhouse", est.Tier)
	assert.Equal(t, "Regular logs", est.Material)
	assert.Equal(t, 12, est.Trips)
	assert.Equal(t, 48, est.Logs)
	assert.InDelta(t, 13828, est.EndXP, 1e-9)
}

func TestWritePlan(t *testing.T) {
	p := newPlanner(t)
	plan, err := p.Plan(planner.Request{CurrentXP: 388, TargetLevel: 30})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, planner.WritePlan(&buf, plan))

	want := "\nStarting from 388xp, you will need:\n\n" +
		"8 Regular logs \n" +
		"12 Oak logs \n" +
		"12 Willow logs \n"
	assert.Equal(t, want, buf.String())
}

func TestNewRejectsInvalidTables(t *testing.T) {
	_, err := planner.New(planner.Tables{})
	assert.Error(t, err)
}
