// Package prompt runs the line-based question and answer session used when
// the planner is driven from a plain terminal or a pipe.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

// ErrAborted is returned when the session ends without a plan.
// The reason has already been shown to the user.
var ErrAborted = errors.New("prompt: session aborted")

// Prompts shown to the user.
const (
	askExperience = "What is your current Hunter xp? (Example: 2224614) "
	askTarget     = "What is your target Hunter level? (Example: 99) "
	askLeagues    = "Type 1 if this is Leagues. "
	askRelicTier  = "What tier have you unlocked? (%d-%d) "
)

// Session asks for the planning inputs one line at a time.
type Session struct {
	planner *planner.Planner
	in      *bufio.Scanner
	out     io.Writer
	logger  *log.Logger
}

// NewSession creates a session reading answers from in and writing prompts to out.
func NewSession(p *planner.Planner, in io.Reader, out io.Writer, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		planner: p,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Run collects a request, computes the plan and prints it.
func (s *Session) Run() (*planner.Plan, error) {
	req, err := s.Collect()
	if err != nil {
		return nil, err
	}

	plan, err := s.planner.Plan(req)
	if err != nil {
		return nil, err
	}
	if err := planner.WritePlan(s.out, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Collect asks every question and returns a validated request.
func (s *Session) Collect() (planner.Request, error) {
	var req planner.Request

	xp, err := s.askNumber(askExperience)
	if err != nil {
		return req, err
	}
	req.CurrentXP = xp
	if minXP := s.planner.MinimumExperience(); xp < minXP {
		s.say("You need at least %d Hunter to make a birdhouse.", s.planner.MinimumLevel())
		return req, fmt.Errorf("%w: %w", ErrAborted, planner.ErrBelowMinimumExperience)
	}

	target, err := s.askNumber(askTarget)
	if err != nil {
		return req, err
	}
	req.TargetLevel = target
	if err := s.planner.Validate(req); err != nil {
		switch {
		case errors.Is(err, planner.ErrTargetAlreadyReached):
			s.say("You've already passed your target.")
		case errors.Is(err, planner.ErrUnknownLevel):
			s.say("Level %d is not in the level table.", target)
		default:
			s.say("%v", err)
		}
		return req, fmt.Errorf("%w: %w", ErrAborted, err)
	}

	leagues, err := s.ask(askLeagues)
	if err != nil {
		return req, err
	}
	if strings.TrimSpace(leagues) == "1" {
		tier, mult, err := s.askRelicTier()
		if err != nil {
			return req, err
		}
		req.MultiplierTier = tier
		s.say("Your XP modifier is %v", mult)
	}

	s.logger.Debug("collected request", "xp", req.CurrentXP, "target", req.TargetLevel, "tier", req.MultiplierTier)
	return req, nil
}

// askRelicTier re-asks until the answer is a tier in the multiplier table.
func (s *Session) askRelicTier() (int, float64, error) {
	lo, hi := s.planner.Tables().Multipliers.Range()
	question := fmt.Sprintf(askRelicTier, lo, hi)
	for {
		answer, err := s.ask(question)
		if err != nil {
			return 0, 0, err
		}
		tier, err := planner.ParseWholeNumber(answer)
		if err == nil && tier != 0 {
			if mult, mErr := s.planner.Multiplier(tier); mErr == nil {
				return tier, mult, nil
			}
		}
		s.logger.Debug("rejected relic tier", "answer", answer)
		s.say("Please enter an integer between %d and %d.", lo, hi)
	}
}

// askNumber asks once; a non-numeric answer ends the session.
func (s *Session) askNumber(question string) (int, error) {
	answer, err := s.ask(question)
	if err != nil {
		return 0, err
	}
	n, err := planner.ParseWholeNumber(answer)
	if err != nil {
		s.say("Sorry, try entering a whole number.")
		return 0, fmt.Errorf("%w: %w", ErrAborted, err)
	}
	return n, nil
}

func (s *Session) ask(question string) (string, error) {
	fmt.Fprint(s.out, question)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("prompt: read answer: %w", err)
		}
		return "", fmt.Errorf("prompt: read answer: %w", io.ErrUnexpectedEOF)
	}
	return s.in.Text(), nil
}

func (s *Session) say(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}
