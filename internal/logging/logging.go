// Package logging builds the process-wide slog logger from configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options controls logger construction. An empty level means info; a
// non-empty File mirrors log output to that file in addition to stdout.
type Options struct {
	Level string
	File  string
	Debug bool
}

// New builds a JSON slog logger. Debug mode switches to the text handler for
// readable local output. The caller decides whether to install it as the
// process default.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	if opts.Debug && level > slog.LevelDebug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.Debug {
		return slog.New(slog.NewTextHandler(out, handlerOpts)), nil
	}
	return slog.New(slog.NewJSONHandler(out, handlerOpts)), nil
}

func parseLevel(raw string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBUG":
		return slog.LevelDebug
	case "", "INFO":
		return slog.LevelInfo
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR", "CRITICAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
