package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
)

const (
	storageFile        = "file"
	storagePreferences = "preferences"

	formatText = "text"
	formatJSON = "json"
)

type options struct {
	configDir string
	storage   string
	logLevel  slog.Level
	logFormat string
}

// parseOptions parses command-line flags. -h/--help prints usage to
// output and returns pflag.ErrHelp.
func parseOptions(args []string, output io.Writer) (options, error) {
	var opts options
	var level string

	flagSet := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.StringVar(&opts.configDir, "config-dir", "", "directory for the settings file (default: user config dir)")
	flagSet.StringVar(&opts.storage, "storage", storageFile, "settings storage: file or preferences")
	flagSet.StringVar(&level, "log-level", "info", "log level: debug, info, warn or error")
	flagSet.StringVar(&opts.logFormat, "log-format", formatText, "log format: text or json")

	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return opts, fmt.Errorf("unexpected argument: %s", rest[0])
	}

	if err := opts.logLevel.UnmarshalText([]byte(level)); err != nil {
		return opts, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	opts.storage = strings.ToLower(opts.storage)
	switch opts.storage {
	case storageFile, storagePreferences:
	default:
		return opts, fmt.Errorf("invalid --storage %q: want %s or %s", opts.storage, storageFile, storagePreferences)
	}

	opts.logFormat = strings.ToLower(opts.logFormat)
	switch opts.logFormat {
	case formatText, formatJSON:
	default:
		return opts, fmt.Errorf("invalid --log-format %q: want %s or %s", opts.logFormat, formatText, formatJSON)
	}

	return opts, nil
}

func newLogger(opts options, output io.Writer) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{Level: opts.logLevel}
	if opts.logFormat == formatJSON {
		return slog.New(slog.NewJSONHandler(output, handlerOptions))
	}
	return slog.New(slog.NewTextHandler(output, handlerOptions))
}
