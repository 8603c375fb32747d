package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNumber is returned when text is not a whole number.
	ErrInvalidNumber = errors.New("not a whole number")

	// ErrBelowMinimumExperience means the player cannot build any birdhouse yet.
	ErrBelowMinimumExperience = errors.New("experience below first birdhouse unlock")

	// ErrTargetAlreadyReached means current experience meets the target threshold.
	ErrTargetAlreadyReached = errors.New("target level already reached")

	// ErrMultiplierOutOfRange means the relic tier is not in the multiplier table.
	ErrMultiplierOutOfRange = errors.New("multiplier tier out of range")

	// ErrUnknownLevel means a level is missing from the level table.
	ErrUnknownLevel = errors.New("level not in level table")

	// ErrBelowTable means experience is below the lowest tabulated threshold.
	ErrBelowTable = errors.New("experience below level table")

	// ErrNonPositiveYield guards the stepper against a tier that grants no experience.
	ErrNonPositiveYield = errors.New("tier experience must be positive")

	// ErrStalled means the stepper found no experience gap to close.
	ErrStalled = errors.New("no progress toward benchmark")
)

// NumberError records text that failed to parse as a whole number.
type NumberError struct {
	Input string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("%q: %v", e.Input, ErrInvalidNumber)
}

// Unwrap lets errors.Is match ErrInvalidNumber.
func (e *NumberError) Unwrap() error {
	return ErrInvalidNumber
}
