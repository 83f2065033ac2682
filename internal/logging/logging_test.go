package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"CRITICAL", slog.LevelError},
		{"garbage", slog.LevelInfo},
		{"  info  ", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.raw); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestNewWritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := New(Options{Level: "INFO", File: path})
	if err != nil {
		t.Fatalf("new logger failed: %v", err)
	}
	logger.Info("file sink check", "key", "value")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(raw), "file sink check") {
		t.Fatalf("log line missing from file: %s", raw)
	}
	// JSON handler by default.
	if !strings.Contains(string(raw), `"key":"value"`) {
		t.Fatalf("expected JSON output: %s", raw)
	}
}

func TestDebugLowersLevel(t *testing.T) {
	t.Parallel()

	logger, err := New(Options{Level: "ERROR", Debug: true})
	if err != nil {
		t.Fatalf("new logger failed: %v", err)
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("debug mode must enable debug-level logging")
	}
}
