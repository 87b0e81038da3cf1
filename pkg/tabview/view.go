package tabview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/tabsync/pkg/tabview/keymap"
)

const footerHeight = 1

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	height := m.pageHeight()

	body := m.pagesView(height)
	for i, line := range m.topBlock() {
		if i < len(body) {
			body[i] = line
		}
	}
	view := strings.Join(body, "\n") + "\n" + m.renderFooter()

	if m.HelpOpen {
		return OverlayModal(view, m.renderHelp(), m.Width, m.Height)
	}
	return view
}

// collapsedRows is how many header rows are scrolled away.
func (m Model) collapsedRows() int {
	return int(math.Round(-m.Root.Geometry().TranslateY))
}

// stripTop is the screen row of the tab labels.
func (m Model) stripTop() int {
	return max(0, m.Header.Height()-m.collapsedRows())
}

// topBlock is the visible part of the header followed by the tab strip.
func (m Model) topBlock() []string {
	var lines []string
	for _, l := range m.Header.Lines(m.collapsedRows()) {
		lines = append(lines, padLine(l, m.Width))
	}
	return append(lines, strings.Split(m.Strip.View(m.Root.Selection()), "\n")...)
}

// pagesView renders the pager. Between pages the two neighbours are shown
// side by side, shifted by the fractional position.
func (m Model) pagesView(height int) []string {
	pos := m.Pager.Position()
	left := int(math.Floor(pos))
	leftLines := m.pageLines(left, height)
	shift := int(math.Round((pos - float64(left)) * float64(m.Width)))
	if shift == 0 {
		return leftLines
	}

	rightLines := m.pageLines(left+1, height)
	out := make([]string, height)
	for i := range out {
		out[i] = ansi.Cut(leftLines[i], shift, m.Width) + ansi.Cut(rightLines[i], 0, shift)
	}
	return out
}

// pageLines renders one slot as exactly height lines of the full width.
// Slots that have not mounted are blank.
func (m Model) pageLines(index, height int) []string {
	out := make([]string, height)
	var src []string
	if p := m.Page(index); p != nil {
		src = strings.Split(p.View(), "\n")
	}
	for i := range out {
		line := ""
		if i < len(src) {
			line = src[i]
		}
		out[i] = padLine(line, m.Width)
	}
	return out
}

// renderFooter renders key hints and the selection status
func (m Model) renderFooter() string {
	hints := m.Keymap.FooterHelp()
	if m.CurrentContext() == keymap.ContextInput {
		hints = m.Keymap.InputFooterHelp()
	}
	if pk := m.Keymap.PendingKey(); pk != "" {
		hints = pk + "…  " + hints
	}
	keys := footerStyle.Render(" " + hints)
	if m.Notice != "" {
		keys = noticeStyle.Render(" " + m.Notice)
	}

	sel := m.Root.Selected()
	status := statusStyle.Render(fmt.Sprintf("%d/%d %s", sel+1, len(m.Tabs), m.Tabs[sel].Title))

	pad := m.Width - lipgloss.Width(keys) - lipgloss.Width(status)
	if pad < 0 {
		keys = ansi.Truncate(keys, max(0, m.Width-lipgloss.Width(status)), "…")
		pad = 0
	}
	return keys + footerStyle.Render(strings.Repeat(" ", pad)) + status
}

func (m Model) helpLines() []string {
	return strings.Split(strings.Trim(m.Keymap.GenerateHelp(), "\n"), "\n")
}

// helpVisibleHeight is the help box's content height.
func (m Model) helpVisibleHeight() int {
	return max(1, m.Height-4)
}

func (m Model) helpMaxScroll() int {
	return max(0, len(m.helpLines())-m.helpVisibleHeight())
}

// renderHelp renders the help box shown over the view
func (m Model) renderHelp() string {
	lines := m.helpLines()
	start := min(m.HelpScroll, m.helpMaxScroll())
	end := min(len(lines), start+m.helpVisibleHeight())
	return helpBoxStyle.Render(helpStyle.Render(strings.Join(lines[start:end], "\n")))
}
