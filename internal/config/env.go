package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by the CLI.
const (
	EnvDataDir     = "BIRDHOUSE_DATA_DIR"
	EnvLogLevel    = "BIRDHOUSE_LOG_LEVEL"
	EnvSSHAddr     = "BIRDHOUSE_SSH_ADDR"
	EnvMetricsAddr = "BIRDHOUSE_METRICS_ADDR"
)

// Settings are defaults for CLI flags, taken from the environment.
type Settings struct {
	DataDir     string
	LogLevel    string
	SSHAddr     string
	MetricsAddr string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:    "warn",
		SSHAddr:     ":23235",
		MetricsAddr: ":9091",
	}
}

// LoadEnvFile loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return nil
}

// SettingsFromEnv overlays environment variables on DefaultSettings.
func SettingsFromEnv() Settings {
	s := DefaultSettings()
	if v := os.Getenv(EnvDataDir); v != "" {
		s.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv(EnvSSHAddr); v != "" {
		s.SSHAddr = v
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		s.MetricsAddr = v
	}
	return s
}
