// Package config provides shell configuration from environment variables
// and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the shell configuration.
// Environment variables provide defaults; flags override them.
type Config struct {
	// CommandDir is the plugin source directory. When empty, the
	// `commands` directory next to the executable is used.
	CommandDir string `env:"LUASHELL_COMMAND_DIR"`

	// Prompt is printed before each input line.
	Prompt string `env:"LUASHELL_PROMPT" envDefault:"> "`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LUASHELL_LOG_LEVEL" envDefault:"info"`

	// Watch enables the command directory watcher. Changes mark the
	// registry for rebuild at the next loop iteration.
	Watch bool `env:"LUASHELL_WATCH" envDefault:"false"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.CommandDir == "" {
		cfg.CommandDir = DefaultCommandDir()
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.CommandDir == "" {
		return fmt.Errorf("command directory is empty")
	}
	return nil
}

// DefaultCommandDir returns the `commands` directory next to the running
// executable, falling back to the working directory when the executable
// path cannot be resolved.
func DefaultCommandDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Join(filepath.Dir(exe), "commands")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "commands"
	}
	return filepath.Join(cwd, "commands")
}
