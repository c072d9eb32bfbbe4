package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/lifegrid/internal/app"
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

// Parse processes command-line arguments. It returns the populated Options,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Options, bool, error) {
	flagSet := flag.NewFlagSet("lifegrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
lifegrid - an HTTP-served Game of Life board.

Usage:
  lifegrid [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to a lifegrid .hcl file or a directory of .hcl files.
    Defaults to ./lifegrid.hcl when present.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the config file or directory.")
	cFlag := flagSet.String("c", "", "Path to the config file or directory (shorthand).")
	portFlag := flagSet.Int("port", 0, "Port for the HTTP server. Overrides the config file.")
	staticDirFlag := flagSet.String("static-dir", "", "Directory with the frontend build. Overrides the config file.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	opts := &app.Options{ConfigPath: path}

	// Only flags the user actually set become overrides.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			opts.Port = portFlag
		case "static-dir":
			opts.StaticDir = staticDirFlag
		case "log-format":
			opts.LogFormat = logFormatFlag
		case "log-level":
			opts.LogLevel = logLevelFlag
		}
	})

	if opts.LogFormat != nil {
		format := strings.ToLower(*opts.LogFormat)
		if format != "text" && format != "json" {
			return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
		}
		opts.LogFormat = &format
	}

	if opts.LogLevel != nil {
		level := strings.ToLower(*opts.LogLevel)
		switch level {
		case "debug", "info", "warn", "error":
			// valid
		default:
			return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
		}
		opts.LogLevel = &level
	}

	if opts.Port != nil && (*opts.Port <= 0 || *opts.Port > 65535) {
		return nil, false, &ExitError{Code: 2, Message: "invalid port: must be in (0, 65535]"}
	}

	return opts, false, nil
}
