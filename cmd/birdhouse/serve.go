package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/birdhouse-planner/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagMetricsAddr string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner wizard over SSH",
	Long: `Start an SSH server that runs the planner wizard for every connection.

Prometheus metrics and a health check are served over HTTP on --metrics
(/metrics and /healthz). Pass --metrics "" to turn them off.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.birdhouse/host_key

Examples:
  birdhouse serve                           # SSH on :23235, metrics on :9091
  birdhouse serve --ssh :2222               # Listen on port 2222
  birdhouse serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (env BIRDHOUSE_SSH_ADDR)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", ":9091", "Metrics HTTP address, empty to disable (env BIRDHOUSE_METRICS_ADDR)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 15, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	if !cmd.Flags().Changed("ssh") {
		flagSSHAddr = settings.SSHAddr
	}
	if !cmd.Flags().Changed("metrics") {
		flagMetricsAddr = settings.MetricsAddr
	}

	p := loadPlanner()

	cfg := tui.SSHServerConfig{
		Address:        flagSSHAddr,
		HostKeyPath:    flagHostKey,
		MetricsAddress: flagMetricsAddr,
		IdleTimeout:    time.Duration(flagIdleTimeout) * time.Minute,
		// Session events are logged at info even when the CLI default is quieter.
		LogLevel: min(logger.GetLevel(), log.InfoLevel),
	}

	server, err := tui.NewSSHServer(p, cfg)
	if err != nil {
		fail("Error creating server: %v", err)
	}

	fmt.Printf("Starting birdhouse SSH server on %s\n", cfg.Address)
	if cfg.MetricsAddress != "" {
		fmt.Printf("Metrics on http://%s/metrics\n", cfg.MetricsAddress)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
