package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/birdhouse-planner/internal/planner"
	"github.com/vovakirdan/birdhouse-planner/internal/platform/tui"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Plan in a full-screen form",
	Long: `Opens a full-screen form that asks the same questions as 'ask',
re-asks on bad answers and shows the plan as a table.

Controls:
  Enter    - Submit answer
  Esc      - Previous question
  R        - New plan (on the plan screen)
  Q        - Close (on the plan screen)
  Ctrl+C   - Quit`,
	Run: runWizard,
}

func runWizard(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fail("The wizard needs a terminal. Use 'birdhouse ask' or 'birdhouse plan' instead.")
	}

	p := loadPlanner()

	var opts []tui.WizardOption
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		opts = append(opts, tui.WithSize(w, h))
	}

	plan, err := tui.RunWizard(p, opts...)
	if err != nil {
		fail("Error running wizard: %v", err)
	}

	// Leave the last plan on screen after the alt screen closes.
	if plan != nil {
		if err := planner.WritePlan(os.Stdout, plan); err != nil {
			fail("Error writing plan: %v", err)
		}
	}
}
