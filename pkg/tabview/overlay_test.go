package tabview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestMaxLineWidth(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"empty", nil, 0},
		{"single", []string{"tabs"}, 4},
		{"widest wins", []string{"a", "abcdef", "abc"}, 6},
		{"styled", []string{"\x1b[1mbold\x1b[0m", "xy"}, 4},
		{"wide runes", []string{"表"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxLineWidth(tt.lines); got != tt.want {
				t.Errorf("maxLineWidth(%q) = %d, want %d", tt.lines, got, tt.want)
			}
		})
	}
}

func TestDimLine(t *testing.T) {
	if got := dimLine(""); got != "" {
		t.Errorf("dimLine of empty = %q", got)
	}
	got := dimLine("\x1b[35mtab strip\x1b[0m")
	if strings.Contains(got, "\x1b[35m") {
		t.Error("original styling kept")
	}
	if ansi.Strip(got) != "tab strip" {
		t.Errorf("text changed: %q", ansi.Strip(got))
	}
}

func TestCompositeRow(t *testing.T) {
	tests := []struct {
		name   string
		bg     string
		startX int
		want   string
	}{
		{"middle", "AAAAAAAAAA", 3, "AAAMMMAAAA"},
		{"left edge", "AAAAAAAAAA", 0, "MMMAAAAAAA"},
		{"right edge", "AAAAAAAAAA", 7, "AAAAAAAMMM"},
		{"short background", "AA", 3, "AA MMM"},
		{"empty background", "", 3, "   MMM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(compositeRow(tt.bg, "MMM", tt.startX, 3, 10))
			if got != tt.want {
				t.Errorf("compositeRow = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverlayModalHeight(t *testing.T) {
	tests := []struct {
		name   string
		bg     string
		modal  string
		width  int
		height int
	}{
		{"fits", "AAA\nBBB\nCCC", "X", 3, 3},
		{"short background", "A", "MM\nMM", 5, 5},
		{"tall background", strings.Repeat("Z\n", 20), "M", 4, 6},
		{"modal wider than screen", "A", "MMMMMMM", 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverlayModal(tt.bg, tt.modal, tt.width, tt.height)
			if n := len(strings.Split(got, "\n")); n != tt.height {
				t.Errorf("got %d lines, want %d", n, tt.height)
			}
			for _, ml := range strings.Split(tt.modal, "\n") {
				if !strings.Contains(got, ml) {
					t.Errorf("modal line %q missing", ml)
				}
			}
		})
	}
}

func TestOverlayModalCentered(t *testing.T) {
	bg := strings.Repeat("AAAAAAAAAA\n", 10)
	lines := strings.Split(OverlayModal(bg, "MMM", 10, 10), "\n")
	for i, line := range lines {
		plain := ansi.Strip(line)
		if i == 4 {
			if plain != "AAAMMMAAAA" {
				t.Errorf("row 4 = %q", plain)
			}
			continue
		}
		if strings.Contains(plain, "M") {
			t.Errorf("modal leaked onto row %d", i)
		}
	}
}
