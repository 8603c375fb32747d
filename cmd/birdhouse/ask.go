package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/birdhouse-planner/internal/prompt"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer questions and print a plan",
	Long: `Asks for your current Hunter xp, your target level and whether
you are playing Leagues, then prints the logs you need.

Answers are read line by line, so input can also be piped:
  printf '2224614\n99\n0\n' | birdhouse ask`,
	Run: runAsk,
}

func runAsk(_ *cobra.Command, _ []string) {
	p := loadPlanner()

	session := prompt.NewSession(p, os.Stdin, os.Stdout, logger)
	if _, err := session.Run(); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			// The reason has already been printed.
			logger.Debug("session aborted", "error", err)
			os.Exit(1)
		}
		fail("\nError: %v", err)
	}
}
