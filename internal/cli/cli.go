package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/framegrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Values come from the defaults, then the -config settings file, then any
// flag given explicitly on the command line.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("framegrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
framegrid - Run a declarative graph of raw video filters.

Usage:
  framegrid [options] [GRID_PATH]

Arguments:
  GRID_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := app.DefaultConfig()
	gridFlag := flagSet.String("grid", "", "Path to the grid file or directory.")
	gFlag := flagSet.String("g", "", "Path to the grid file or directory (shorthand).")
	configFlag := flagSet.String("config", "", "Path to a TOML settings file.")
	framesFlag := flagSet.Int("frames", defaults.Frames, "Number of frames every sink pulls.")
	poolFlag := flagSet.Bool("pool", defaults.Pool, "Recycle frame buffers through a pool.")
	poolIdleFlag := flagSet.Int("pool-idle", defaults.PoolIdle, "Idle buffers the pool keeps per frame size.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg := defaults
	if *configFlag != "" {
		if err := app.LoadSettings(*configFlag, &cfg); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		slog.Debug("Settings file applied.", "path", *configFlag)
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frames":
			cfg.Frames = *framesFlag
		case "pool":
			cfg.Pool = *poolFlag
		case "pool-idle":
			cfg.PoolIdle = *poolIdleFlag
		case "log-format":
			cfg.LogFormat = *logFormatFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		}
	})

	if *gridFlag != "" {
		cfg.GridPath = *gridFlag
	} else if *gFlag != "" {
		cfg.GridPath = *gFlag
	} else if flagSet.NArg() > 0 {
		cfg.GridPath = flagSet.Arg(0)
	}
	slog.Debug("Grid path determined.", "path", cfg.GridPath)

	if cfg.GridPath == "" {
		slog.Debug("No grid path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
