// birdhouse plans Hunter birdhouse training: how many logs of each type to
// bring to go from your current experience to a target level.
//
// Usage:
//
//	birdhouse                  - Ask for your xp and target, then print the plan
//	birdhouse ask              - Same as above
//	birdhouse plan             - Plan from flags, no questions
//	birdhouse wizard           - Full-screen planner with a plan table
//	birdhouse level <xp>       - Show the level and birdhouses for an xp value
//	birdhouse tables           - Print the reference tables
//	birdhouse serve            - Serve the wizard over SSH
//
// Global flags:
//
//	--data-dir <path>   - Directory with levels.yaml, birdhouses.yaml, multipliers.yaml
//	--log-level <lvl>   - debug, info, warn or error (default: warn)
//	--env-file <path>   - Load environment defaults from this file (default: .env)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/birdhouse-planner/internal/config"
	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

var (
	// Global flags
	flagDataDir  string
	flagLogLevel string
	flagEnvFile  string

	logger   = log.New(os.Stderr)
	settings = config.DefaultSettings()
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "birdhouse",
	Short: "Birdhouse Planner - plan Hunter birdhouse runs",
	Long: `Birdhouse Planner works out how many logs of each type you need to
train Hunter with birdhouses, moving up to each new birdhouse as soon
as it unlocks.

Run without a command to answer a few questions in the terminal.

Available commands:
  ask      - Answer questions line by line (default)
  plan     - Plan from flags
  wizard   - Full-screen planner
  level    - Show the level for an xp value
  tables   - Print the reference tables
  serve    - Serve the wizard over SSH

Examples:
  birdhouse
  birdhouse plan --xp 2224614 --target 99
  birdhouse plan --xp 388 --target 50 --tier 3 --verbose
  birdhouse wizard
  birdhouse serve --ssh :2222`,
	PersistentPreRunE: setup,
	Run:               runAsk,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory with custom reference tables (env "+config.EnvDataDir+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "File with environment defaults")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads environment defaults and configures the logger.
// Flags given on the command line win over the environment.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnvFile(flagEnvFile); err != nil {
		return err
	}
	settings = config.SettingsFromEnv()

	if !cmd.Flags().Changed("data-dir") {
		flagDataDir = settings.DataDir
	}
	if !cmd.Flags().Changed("log-level") {
		flagLogLevel = settings.LogLevel
	}

	l, err := newLogger(flagLogLevel)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// newLogger builds the stderr logger for the given level name.
func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
		Prefix:          "birdhouse",
	}), nil
}

// loadPlanner reads the reference tables and builds a planner, exiting on error.
func loadPlanner() *planner.Planner {
	tables, src, err := config.Load(flagDataDir)
	if err != nil {
		fail("Error loading tables: %v", err)
	}
	logger.Debug("loaded tables",
		"levels", src.Levels,
		"birdhouses", src.Birdhouses,
		"multipliers", src.Multipliers,
	)

	p, err := planner.New(tables, planner.WithLogger(logger))
	if err != nil {
		fail("Error creating planner: %v", err)
	}
	return p
}

// fail prints an error to stderr and exits.
func fail(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf(format, args...)))
	os.Exit(1)
}
