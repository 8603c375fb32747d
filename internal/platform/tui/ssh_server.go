// Package tui provides the planner wizard and serves it over SSH via Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/birdhouse-planner/internal/metrics"
	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.birdhouse/host_key.
	HostKeyPath string

	// MetricsAddress serves /metrics and /healthz alongside SSH.
	// Empty disables the metrics listener.
	MetricsAddress string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// LogLevel is the minimum level the server logs at.
	LogLevel log.Level
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 15 * time.Minute,
		LogLevel:    log.InfoLevel,
	}
}

// SSHServer wraps a Wish SSH server that runs one planner wizard per session.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	planner *planner.Planner
	metrics *metrics.Server
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(p *planner.Planner, cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "birdhouse-ssh",
		Level:           cfg.LogLevel,
	})

	srv := &SSHServer{
		config:  cfg,
		planner: p,
		logger:  logger,
	}
	if cfg.MetricsAddress != "" {
		srv.metrics = metrics.NewServer(cfg.MetricsAddress)
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".birdhouse", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first, so sessions are counted around the wizard.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.metricsMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a planner wizard for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewWizardModel(s.planner,
		WithSize(pty.Window.Width, pty.Window.Height),
		WithPlanHook(s.planHook(sshSession.User())),
		WithErrorHook(metrics.RecordError),
	)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// planHook counts and logs every plan computed for user.
func (s *SSHServer) planHook(user string) func(*planner.Plan) {
	return func(plan *planner.Plan) {
		metrics.RecordPlan(metrics.SourceSSH, plan)
		s.logger.Info("plan computed",
			"user", user,
			"start_xp", plan.StartXP,
			"target", plan.TargetLevel,
			"logs", plan.TotalLogs(),
		)
	}
}

// metricsMiddleware tracks started and open sessions.
func (s *SSHServer) metricsMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		metrics.SessionsStarted.Inc()
		metrics.SessionsActive.Inc()
		defer metrics.SessionsActive.Dec()
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		started := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(started).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	metricsCtx, stopMetrics := context.WithCancel(context.Background())
	defer stopMetrics()
	if s.metrics != nil {
		s.logger.Info("serving metrics", "address", s.metrics.Addr())
		go func() {
			if err := s.metrics.Run(metricsCtx); err != nil {
				s.logger.Error("metrics server error", "error", err)
			}
		}()
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			select {
			case done <- syscall.SIGTERM:
			default:
			}
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	stopMetrics()
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
