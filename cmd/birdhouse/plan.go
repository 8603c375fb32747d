package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

var (
	flagXP      int
	flagTarget  int
	flagTier    int
	flagCompare bool
	flagVerbose bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print a plan without asking questions",
	Long: `Prints the logs needed to go from --xp to --target.

--tier selects a Leagues relic tier (0 = not Leagues).
--verbose adds trips and xp per step plus totals.
--compare also shows the cost of staying on your current birdhouse.

Examples:
  birdhouse plan --xp 2224614 --target 99
  birdhouse plan --xp 388 --target 50 --tier 3
  birdhouse plan --xp 13363 --target 60 --verbose --compare`,
	Run: runPlan,
}

func init() {
	planCmd.Flags().IntVar(&flagXP, "xp", 0, "Current Hunter experience")
	planCmd.Flags().IntVar(&flagTarget, "target", 0, "Target Hunter level")
	planCmd.Flags().IntVar(&flagTier, "tier", 0, "Leagues relic tier (0 = not Leagues)")
	planCmd.Flags().BoolVar(&flagCompare, "compare", false, "Compare with staying on the current birdhouse")
	planCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show trips and xp for each step")

	_ = planCmd.MarkFlagRequired("xp")
	_ = planCmd.MarkFlagRequired("target")
}

func runPlan(_ *cobra.Command, _ []string) {
	p := loadPlanner()

	req := planner.Request{
		CurrentXP:      flagXP,
		TargetLevel:    flagTarget,
		MultiplierTier: flagTier,
	}

	plan, err := p.Plan(req)
	if err != nil {
		fail("Error: %v", err)
	}

	if flagVerbose {
		err = writeDetailedPlan(os.Stdout, plan)
	} else {
		err = planner.WritePlan(os.Stdout, plan)
	}
	if err != nil {
		fail("Error writing plan: %v", err)
	}

	if flagCompare {
		est, err := p.Estimate(req)
		if err != nil {
			fail("Error: %v", err)
		}
		if err := writeComparison(os.Stdout, plan, est); err != nil {
			fail("Error writing comparison: %v", err)
		}
	}
}

// writeDetailedPlan prints every step with its trips and xp range, then totals.
func writeDetailedPlan(w io.Writer, plan *planner.Plan) error {
	pr := message.NewPrinter(language.English)

	if _, err := fmt.Fprintln(w, headingStyle.Render(
		pr.Sprintf("Starting from %dxp, level %d needs %dxp", plan.StartXP, plan.TargetLevel, plan.TargetXP))); err != nil {
		return err
	}
	if plan.Multiplier != 1 {
		if _, err := fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("XP modifier: %v", plan.Multiplier))); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %-10s  %-14s  %8s  %6s  %12s  %12s\n", "Birdhouse", "Logs", "Qty", "Trips", "From xp", "To xp")
	fmt.Fprintf(w, "  %-10s  %-14s  %8s  %6s  %12s  %12s\n", "---------", "----", "---", "-----", "-------", "-----")
	for _, s := range plan.Steps {
		_, err := fmt.Fprintf(w, "  %-10s  %-14s  %8s  %6s  %12s  %12s\n",
			planner.TierLabel(s.Tier),
			s.Material,
			pr.Sprintf("%d", s.Quantity),
			pr.Sprintf("%d", s.Trips),
			pr.Sprintf("%d", roundXP(s.StartXP)),
			pr.Sprintf("%d", roundXP(s.EndXP)),
		)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	_, err := fmt.Fprintln(w, pr.Sprintf("Total: %d logs over %d trips, ending at %dxp (level %d)",
		plan.TotalLogs(), plan.TotalTrips(), roundXP(plan.FinalXP), plan.FinalLevel))
	return err
}

// writeComparison prints the single-birdhouse estimate next to the plan totals.
func writeComparison(w io.Writer, plan *planner.Plan, est *planner.Estimate) error {
	pr := message.NewPrinter(language.English)

	fmt.Fprintln(w)
	if _, err := fmt.Fprintln(w, headingStyle.Render("Staying on "+planner.TierLabel(est.Tier)+" instead:")); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, pr.Sprintf("%d %s over %d trips, against %d trips with the plan",
		est.Logs, est.Material, est.Trips, plan.TotalTrips()))
	return err
}

func roundXP(xp float64) int {
	return int(math.Round(xp))
}
