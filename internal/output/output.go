// Package output provides styled terminal output helpers (success, error,
// warning, activity lines) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/tabsync/internal/feed"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	actorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message to stderr
func Error(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("ERROR: "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for JSON output
const (
	ErrCodeInvalidInput  = "invalid_input"
	ErrCodeNotFound      = "not_found"
	ErrCodeDatabaseError = "database_error"
	ErrCodeConfigError   = "config_error"
)

// JSONError outputs an error in JSON format
func JSONError(code, message string) {
	JSON(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// FormatActivity formats an activity as a one-line listing:
// "#12 ada minted Lumen #4  3h ago"
func FormatActivity(a feed.Activity) string {
	parts := []string{subtleStyle.Render(fmt.Sprintf("#%d", a.ID)), actorStyle.Render(a.Actor), a.Verb}
	if a.Object != "" {
		parts = append(parts, titleStyle.Render(a.Object))
	}
	return strings.Join(parts, " ") + "  " + subtleStyle.Render(FormatTimeAgo(a.CreatedAt))
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
