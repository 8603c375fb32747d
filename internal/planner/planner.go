package planner

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// Request is the input to a planning run.
type Request struct {
	CurrentXP   int `validate:"gte=0"`
	TargetLevel int `validate:"gte=1"`
	// MultiplierTier selects a Leagues relic tier. Zero means no Leagues mode.
	MultiplierTier int `validate:"gte=0"`
}

// PlanStep is the logs needed for one tier segment.
type PlanStep struct {
	Tier     string
	Material string
	Quantity int
	Trips    int
	StartXP  float64
	EndXP    float64
}

// Plan is the full path from the starting experience to the target level.
type Plan struct {
	StartXP     int
	TargetLevel int
	TargetXP    int
	Multiplier  float64
	Steps       []PlanStep
	FinalXP     float64
	FinalLevel  int
}

// TotalLogs sums the logs across all steps.
func (p *Plan) TotalLogs() int {
	total := 0
	for _, s := range p.Steps {
		total += s.Quantity
	}
	return total
}

// TotalTrips sums the trips across all steps.
func (p *Plan) TotalTrips() int {
	total := 0
	for _, s := range p.Steps {
		total += s.Trips
	}
	return total
}

// Estimate is the cost of reaching the target without ever upgrading tiers.
type Estimate struct {
	Tier     string
	Material string
	Trips    int
	Logs     int
	EndXP    float64
}

// Planner computes training plans over a fixed set of tables.
type Planner struct {
	tables Tables
	logger *log.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger used for per-step debug output.
func WithLogger(l *log.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Planner. The tables are validated once here.
func New(tables Tables, opts ...Option) (*Planner, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	p := &Planner{
		tables: tables,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Tables returns the reference tables the planner was built with.
func (p *Planner) Tables() Tables {
	return p.tables
}

// MinimumLevel is the level at which the first birdhouse unlocks.
func (p *Planner) MinimumLevel() int {
	first, _ := p.tables.Tiers.First()
	return first.UnlockLevel
}

// MinimumExperience is the threshold of MinimumLevel.
func (p *Planner) MinimumExperience() int {
	xp, _ := p.tables.Levels.Experience(p.MinimumLevel())
	return xp
}

// Multiplier returns the experience multiplier for a relic tier.
// Tier zero means no Leagues mode and yields 1.
func (p *Planner) Multiplier(tier int) (float64, error) {
	if tier == 0 {
		return 1, nil
	}
	mult, ok := p.tables.Multipliers[tier]
	if !ok {
		lo, hi := p.tables.Multipliers.Range()
		return 0, fmt.Errorf("planner: tier %d not in %d-%d: %w", tier, lo, hi, ErrMultiplierOutOfRange)
	}
	return mult, nil
}

// EffectiveTiers returns the tier table scaled for the given relic tier.
func (p *Planner) EffectiveTiers(multiplierTier int) (TierTable, error) {
	mult, err := p.Multiplier(multiplierTier)
	if err != nil {
		return nil, err
	}
	return p.tables.Tiers.Scaled(mult), nil
}

// Plan runs the benchmark stepper from req.CurrentXP up to req.TargetLevel.
// Each iteration trains on the current tier until the next tier unlocks or
// the target is reached, whichever comes first. No partial plan is returned
// on error.
func (p *Planner) Plan(req Request) (*Plan, error) {
	if err := p.Validate(req); err != nil {
		return nil, err
	}

	mult, err := p.Multiplier(req.MultiplierTier)
	if err != nil {
		return nil, err
	}
	tiers := p.tables.Tiers.Scaled(mult)
	levels := p.tables.Levels
	targetXP, _ := levels.Experience(req.TargetLevel)

	xp := float64(req.CurrentXP)
	level, err := levels.LevelFor(xp)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		StartXP:     req.CurrentXP,
		TargetLevel: req.TargetLevel,
		TargetXP:    targetXP,
		Multiplier:  mult,
	}

	for level < req.TargetLevel {
		current, next := tiers.Resolve(level)
		if current == nil {
			return nil, fmt.Errorf("planner: level %d: %w", level, ErrBelowMinimumExperience)
		}

		benchmark := targetXP
		if next != nil && next.UnlockLevel <= req.TargetLevel {
			benchmark, _ = levels.Experience(next.UnlockLevel)
		}

		tripXP := current.TripExperience()
		if tripXP <= 0 {
			return nil, fmt.Errorf("planner: tier %q: %w", current.Name, ErrNonPositiveYield)
		}
		gap := float64(benchmark) - xp
		if gap <= 0 {
			return nil, fmt.Errorf("planner: benchmark %d at %v xp: %w", benchmark, xp, ErrStalled)
		}

		trips := int(math.Ceil(gap / tripXP))
		step := PlanStep{
			Tier:     current.Name,
			Material: current.Logs(),
			Quantity: trips * BirdhousesPerTrip,
			Trips:    trips,
			StartXP:  xp,
		}
		xp += float64(trips) * tripXP
		step.EndXP = xp
		plan.Steps = append(plan.Steps, step)

		p.logger.Debug("planned segment",
			"tier", step.Tier,
			"benchmark", benchmark,
			"trips", trips,
			"logs", step.Quantity,
			"xp", xp,
		)

		level, err = levels.LevelFor(xp)
		if err != nil {
			return nil, err
		}
	}

	plan.FinalXP = xp
	plan.FinalLevel = level
	return plan, nil
}

// Estimate computes the trips and logs to reach the target while staying on
// the tier unlocked at the starting level.
func (p *Planner) Estimate(req Request) (*Estimate, error) {
	if err := p.Validate(req); err != nil {
		return nil, err
	}
	tiers, err := p.EffectiveTiers(req.MultiplierTier)
	if err != nil {
		return nil, err
	}

	level, err := p.tables.Levels.LevelFor(float64(req.CurrentXP))
	if err != nil {
		return nil, err
	}
	current, _ := tiers.Resolve(level)
	if current == nil {
		return nil, fmt.Errorf("planner: level %d: %w", level, ErrBelowMinimumExperience)
	}

	targetXP, _ := p.tables.Levels.Experience(req.TargetLevel)
	tripXP := current.TripExperience()
	trips := int(math.Ceil((float64(targetXP) - float64(req.CurrentXP)) / tripXP))

	return &Estimate{
		Tier:     current.Name,
		Material: current.Logs(),
		Trips:    trips,
		Logs:     trips * BirdhousesPerTrip,
		EndXP:    float64(req.CurrentXP) + float64(trips)*tripXP,
	}, nil
}
