package cmd

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/tabsync/internal/config"
	"github.com/spf13/cobra"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"", slog.LevelInfo, true},
		{"INFO", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := parseLogLevel(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseLogLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestOpenLoggerWritesJSON(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{LogFormat: "json", LogLevel: "debug", LogFile: "logs/test.log"}
	logger, closeLog, err := openLogger(cfg, dir)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("page mounted", "index", 2)
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "logs", "test.log"))
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", data)
	}
	if entry["msg"] != "page mounted" || entry["index"] != float64(2) {
		t.Errorf("entry: %v", entry)
	}
}

func TestOpenLoggerFiltersLevel(t *testing.T) {
	dir := t.TempDir()
	logger, closeLog, err := openLogger(&config.Config{LogLevel: "warn"}, dir)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	closeLog()

	data, err := os.ReadFile(filepath.Join(dir, config.DefaultLogFile))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("log contents: %q", data)
	}
}

func TestApplyLogFlags(t *testing.T) {
	c := &cobra.Command{Use: "x"}
	c.Flags().String("log-level", "", "")
	c.Flags().String("log-format", "", "")
	c.Flags().String("log-file", "", "")
	if err := c.Flags().Parse([]string{"--log-level", "debug"}); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{LogLevel: "error", LogFormat: "json"}
	applyLogFlags(c, cfg)
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("config: %+v", cfg)
	}
}
