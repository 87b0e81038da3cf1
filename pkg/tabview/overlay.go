package tabview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))

// OverlayModal centers modal over background, dimming what shows around it.
// The result is exactly height lines.
func OverlayModal(background, modal string, width, height int) string {
	bg := strings.Split(background, "\n")
	for len(bg) < height {
		bg = append(bg, "")
	}
	bg = bg[:height]

	ml := strings.Split(modal, "\n")
	mw := maxLineWidth(ml)
	startX := max(0, (width-mw)/2)
	startY := max(0, (height-len(ml))/2)

	out := make([]string, height)
	for i, line := range bg {
		if mi := i - startY; mi >= 0 && mi < len(ml) {
			out[i] = compositeRow(line, ml[mi], startX, mw, width)
			continue
		}
		out[i] = dimLine(line)
	}
	return strings.Join(out, "\n")
}

// compositeRow places modalLine at modalStartX over a dimmed bgLine.
func compositeRow(bgLine, modalLine string, modalStartX, modalWidth, totalWidth int) string {
	left := padLine(ansi.Cut(bgLine, 0, modalStartX), modalStartX)
	right := ""
	if end := modalStartX + modalWidth; end < totalWidth {
		right = ansi.Cut(bgLine, end, totalWidth)
	}
	return dimLine(left) + padLine(modalLine, modalWidth) + dimLine(right)
}

// dimLine strips a line's styling and renders it dimmed.
func dimLine(s string) string {
	if s == "" {
		return ""
	}
	return dimStyle.Render(ansi.Strip(s))
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}
