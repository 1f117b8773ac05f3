package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// logger reports progress and chain warnings on stderr. main replaces it
// once -log-level is parsed.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// parseLogLevel accepts the names printed by -help, in any case.
func parseLogLevel(name string) (slog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "debug", "info", "warn", "error":
	default:
		return 0, fmt.Errorf("log level must be debug, info, warn or error: %q", name)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, err
	}

	return level, nil
}

func newLogger(w io.Writer, levelName string) (*slog.Logger, error) {
	level, err := parseLogLevel(levelName)
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
