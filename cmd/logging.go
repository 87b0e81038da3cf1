package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/tabsync/internal/config"
	"github.com/spf13/cobra"
)

// parseLogLevel maps a level name to slog. ok is false for unknown names,
// which log at info.
func parseLogLevel(s string) (level slog.Level, ok bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func newLogHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// applyLogFlags lets the persistent log flags override the config.
func applyLogFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if v, _ := flags.GetString("log-level"); flags.Changed("log-level") {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetString("log-format"); flags.Changed("log-format") {
		cfg.LogFormat = v
	}
	if v, _ := flags.GetString("log-file"); flags.Changed("log-file") {
		cfg.LogFile = v
	}
}

// openLogger returns a logger writing to the configured log file. The tab
// view owns the terminal, so nothing is logged to stderr.
func openLogger(cfg *config.Config, baseDir string) (*slog.Logger, func() error, error) {
	level, ok := parseLogLevel(cfg.LogLevel)
	path := cfg.LogFilePath(baseDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(newLogHandler(f, cfg.LogFormat, level))
	if !ok {
		logger.Warn("unknown log level, using info", "level", cfg.LogLevel)
	}
	return logger, f.Close, nil
}
