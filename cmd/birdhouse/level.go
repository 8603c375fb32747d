package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

var flagLevelTier int

var levelCmd = &cobra.Command{
	Use:   "level <xp>",
	Short: "Show the level and birdhouses for an xp value",
	Long: `Prints the Hunter level for the given experience, the birdhouse
you can build there and when the next one unlocks.

Examples:
  birdhouse level 13363
  birdhouse level 2224614 --tier 4`,
	Args: cobra.ExactArgs(1),
	Run:  runLevel,
}

func init() {
	levelCmd.Flags().IntVar(&flagLevelTier, "tier", 0, "Leagues relic tier (0 = not Leagues)")
}

func runLevel(_ *cobra.Command, args []string) {
	xp, err := planner.ParseWholeNumber(args[0])
	if err != nil {
		fail("Error: %v", err)
	}

	p := loadPlanner()
	if err := writeLevel(os.Stdout, p, xp, flagLevelTier); err != nil {
		fail("Error: %v", err)
	}
}

// writeLevel prints the level for xp with the current and next birdhouse.
func writeLevel(w io.Writer, p *planner.Planner, xp, tier int) error {
	tables := p.Tables()
	tiers, err := p.EffectiveTiers(tier)
	if err != nil {
		return err
	}
	level, err := tables.Levels.LevelFor(float64(xp))
	if err != nil {
		return fmt.Errorf("%d xp: %w", xp, err)
	}

	pr := message.NewPrinter(language.English)
	fmt.Fprintln(w, headingStyle.Render(pr.Sprintf("Level %d (%d xp)", level, xp)))

	current, next := tiers.Resolve(level)
	if current == nil {
		fmt.Fprintln(w, pr.Sprintf("No birdhouse yet. You need level %d.", p.MinimumLevel()))
	} else {
		fmt.Fprintln(w, pr.Sprintf("Birdhouse: %s (%s, %v xp per trip)", current.Label(), current.Logs(), current.TripExperience()))
	}

	if next == nil {
		_, err = fmt.Fprintln(w, mutedStyle.Render("Best birdhouse unlocked."))
		return err
	}
	unlockXP, _ := tables.Levels.Experience(next.UnlockLevel)
	_, err = fmt.Fprintln(w, mutedStyle.Render(pr.Sprintf("Next: %s at level %d (%d xp, %d to go)",
		next.Label(), next.UnlockLevel, unlockXP, unlockXP-xp)))
	return err
}
