package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks a request against the planner's tables.
// It returns one of the package's sentinel errors, wrapped with detail.
func (p *Planner) Validate(req Request) error {
	if err := structValidator().Struct(req); err != nil {
		return requestFieldError(err)
	}

	targetXP, ok := p.tables.Levels.Experience(req.TargetLevel)
	if !ok {
		return fmt.Errorf("planner: target level %d: %w", req.TargetLevel, ErrUnknownLevel)
	}

	if minXP := p.MinimumExperience(); req.CurrentXP < minXP {
		return fmt.Errorf("planner: %d xp is below level %d (%d xp): %w",
			req.CurrentXP, p.MinimumLevel(), minXP, ErrBelowMinimumExperience)
	}

	if req.CurrentXP >= targetXP {
		return fmt.Errorf("planner: %d xp already at or past level %d (%d xp): %w",
			req.CurrentXP, req.TargetLevel, targetXP, ErrTargetAlreadyReached)
	}

	if _, err := p.Multiplier(req.MultiplierTier); err != nil {
		return err
	}
	return nil
}

// requestFieldError maps struct tag failures onto the planner's sentinels.
func requestFieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("planner: invalid request: %w", err)
	}

	fe := verrs[0]
	detail := fmt.Sprintf("planner: %s=%v fails %s=%s", fe.Field(), fe.Value(), fe.Tag(), fe.Param())
	switch fe.Field() {
	case "CurrentXP":
		return fmt.Errorf("%s: %w", detail, ErrBelowMinimumExperience)
	case "TargetLevel":
		return fmt.Errorf("%s: %w", detail, ErrUnknownLevel)
	case "MultiplierTier":
		return fmt.Errorf("%s: %w", detail, ErrMultiplierOutOfRange)
	default:
		return errors.New(detail)
	}
}

// ParseWholeNumber parses user text as a base-10 integer.
// Surrounding whitespace is ignored; anything else returns a *NumberError.
func ParseWholeNumber(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &NumberError{Input: trimmed}
	}
	return n, nil
}
