package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/birdhouse-planner/internal/config"
	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the reference tables",
	Long: `Prints the birdhouse, multiplier and level tables in use and
where each was loaded from.

Tables are looked up in --data-dir, then ~/.birdhouse/data,
then ./data, and finally fall back to the built-in defaults.`,
	Run: runTables,
}

func runTables(_ *cobra.Command, _ []string) {
	tables, src, err := config.Load(flagDataDir)
	if err != nil {
		fail("Error loading tables: %v", err)
	}
	if err := writeTables(os.Stdout, tables, src); err != nil {
		fail("Error: %v", err)
	}
}

// writeTables prints the three reference tables with grouped numbers.
func writeTables(w io.Writer, tables planner.Tables, src config.Sources) error {
	pr := message.NewPrinter(language.English)

	fmt.Fprintln(w, headingStyle.Render("Birdhouses"), mutedStyle.Render("("+src.Birdhouses+")"))
	fmt.Fprintf(w, "  %-10s  %-14s  %5s  %8s  %9s\n", "Name", "Logs", "Level", "XP", "Trip XP")
	for _, t := range tables.Tiers {
		fmt.Fprintf(w, "  %-10s  %-14s  %5d  %8s  %9s\n",
			t.Label(), t.Logs(), t.UnlockLevel, pr.Sprintf("%v", t.Experience), pr.Sprintf("%v", t.TripExperience()))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, headingStyle.Render("Leagues multipliers"), mutedStyle.Render("("+src.Multipliers+")"))
	fmt.Fprintf(w, "  %-4s  %s\n", "Tier", "Multiplier")
	for _, tier := range tables.Multipliers.Tiers() {
		fmt.Fprintf(w, "  %-4d  %vx\n", tier, tables.Multipliers[tier])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, headingStyle.Render("Levels"), mutedStyle.Render("("+src.Levels+")"))
	fmt.Fprintf(w, "  %-5s  %12s\n", "Level", "XP")
	for _, th := range tables.Levels {
		if _, err := fmt.Fprintf(w, "  %-5d  %12s\n", th.Level, pr.Sprintf("%d", th.Experience)); err != nil {
			return err
		}
	}
	return nil
}
