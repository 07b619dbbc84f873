// Package main is the entry point for the luashell command shell.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/luashell/internal/app"
	"github.com/dshills/luashell/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	application, err := app.New(app.Options{Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	var showVersion bool

	flag.StringVar(&cfg.CommandDir, "commands", cfg.CommandDir, "Command source directory")
	flag.StringVar(&cfg.CommandDir, "c", cfg.CommandDir, "Command source directory (shorthand)")
	flag.StringVar(&cfg.Prompt, "prompt", cfg.Prompt, "Input prompt")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.BoolVar(&cfg.Watch, "watch", cfg.Watch, "Reload when command sources change")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "luashell - Lua-extensible command shell\n\n")
		fmt.Fprintf(os.Stderr, "Usage: luashell [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands are loaded from *.lua files in the command directory.\n")
		fmt.Fprintf(os.Stderr, "Type 'help' at the prompt for the available commands.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("luashell %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
