package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/tabsync/internal/feed"
)

func TestFormatTimeAgo(t *testing.T) {
	tests := []struct {
		name     string
		ago      time.Duration
		expected string
	}{
		{"now", 0, "just now"},
		{"seconds", 59 * time.Second, "just now"},
		{"minute boundary", time.Minute, "1m ago"},
		{"minutes", 30 * time.Minute, "30m ago"},
		{"hour boundary", time.Hour, "1h ago"},
		{"hours", 23 * time.Hour, "23h ago"},
		{"day boundary", 24 * time.Hour, "1d ago"},
		{"days", 6 * 24 * time.Hour, "6d ago"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTimeAgo(time.Now().Add(-tc.ago)); got != tc.expected {
				t.Errorf("FormatTimeAgo(-%v) = %q, want %q", tc.ago, got, tc.expected)
			}
		})
	}
}

func TestFormatTimeAgoDate(t *testing.T) {
	tm := time.Now().Add(-7 * 24 * time.Hour)
	if got := FormatTimeAgo(tm); got != tm.Format("2006-01-02") {
		t.Errorf("week old time = %q", got)
	}
}

func TestFormatActivity(t *testing.T) {
	a := feed.Activity{ID: 12, Actor: "ada", Verb: "minted", Object: "Lumen #4", CreatedAt: time.Now().Add(-3 * time.Hour)}
	got := ansi.Strip(FormatActivity(a))
	if got != "#12 ada minted Lumen #4  3h ago" {
		t.Errorf("FormatActivity = %q", got)
	}

	a.Object = ""
	got = ansi.Strip(FormatActivity(a))
	if strings.Contains(got, "  minted") || !strings.HasPrefix(got, "#12 ada minted  ") {
		t.Errorf("no object: %q", got)
	}
}

func TestRenderMarkdownWithWidth(t *testing.T) {
	out, err := RenderMarkdownWithWidth("# Keys\n\nSome **bold** text", 40)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ansi.Strip(out), "bold") {
		t.Errorf("rendered: %q", out)
	}
	if out, _ := RenderMarkdownWithWidth("   ", 40); out != "" {
		t.Errorf("blank input rendered %q", out)
	}
}

func TestTerminalWidthFallsBackToColumns(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	t.Setenv("COLUMNS", "")
	if got := TerminalWidth(f.Fd(), 0); got != defaultMarkdownWidth {
		t.Errorf("no terminal, no COLUMNS: got %d", got)
	}
	t.Setenv("COLUMNS", "132")
	if got := TerminalWidth(f.Fd(), 60); got != 132 {
		t.Errorf("COLUMNS=132: got %d", got)
	}
}

func TestPrintMarkdownWritesSourceWhenPiped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.md")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	src := "# Key bindings\n\n| Keys | Action |\n| --- | --- |\n| `j` | Scroll down |\n"
	for _, plain := range []bool{false, true} {
		if err := PrintMarkdown(f, src, plain); err != nil {
			t.Fatalf("PrintMarkdown(plain=%v): %v", plain, err)
		}
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != src+src {
		t.Errorf("non-terminal output should be the markdown source:\n%s", got)
	}
}
