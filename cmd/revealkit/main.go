// Package main is the entry point for the revealkit demo.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/revealkit/internal/app"
	"github.com/dshills/revealkit/internal/renderer/backend"
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
	opts := parseFlags()

	// Create application
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Script and replay modes run headless; only the interactive demo
	// needs a terminal.
	if opts.ScriptPath == "" && opts.ReplayPath == "" {
		term, err := backend.NewTerminal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
			return 1
		}
		if err := application.SetBackend(term); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
			return 1
		}
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	// Run the application
	if err := application.Run(); err != nil {
		// Check if it's a normal quit using errors.Is for wrapped errors
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Run a Lua scenario and exit")
	flag.StringVar(&opts.ScriptPath, "s", "", "Run a Lua scenario and exit (shorthand)")
	flag.StringVar(&opts.ReplayPath, "replay", "", "Replay a recorded gesture trace and exit")
	flag.StringVar(&opts.ReplayPath, "r", "", "Replay a recorded gesture trace and exit (shorthand)")
	flag.StringVar(&opts.RecordPath, "record", "", "Record the session's gestures to a trace file")
	flag.BoolVar(&opts.EdgeOnly, "edge-only", false, "Only recognize gestures starting at the screen edges")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Revealkit - pointer-driven side panel demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: revealkit [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  revealkit                        Run the interactive demo\n")
		fmt.Fprintf(os.Stderr, "  revealkit -c reveal.toml         Run with a configuration file\n")
		fmt.Fprintf(os.Stderr, "  revealkit -record session.yaml   Record gestures to a trace\n")
		fmt.Fprintf(os.Stderr, "  revealkit -r session.yaml        Replay a recorded trace\n")
		fmt.Fprintf(os.Stderr, "  revealkit -s scenario.lua        Drive the engine from Lua\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Revealkit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if opts.ScriptPath != "" && opts.ReplayPath != "" {
		fmt.Fprintf(os.Stderr, "Error: -script and -replay are mutually exclusive\n")
		os.Exit(1)
	}

	return opts
}
