package tabview

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/tabsync/internal/tabs"
)

const (
	// StripHeight is the tab strip's row count: labels, then the indicator.
	StripHeight = 2
	stripFrames = 6
	triggerGap  = 1
)

// TabStrip draws the triggers in a horizontally scrollable row. It is the
// tab root's strip scroller and animates its own offset.
type TabStrip struct {
	titles  []string
	x       []int
	widths  []int
	content int
	width   int

	offset   float64
	from, to float64
	frame    int
	gen      int
	queue    *cmdQueue
}

// NewTabStrip lays out one trigger per title.
func NewTabStrip(titles []string, queue *cmdQueue) *TabStrip {
	s := &TabStrip{titles: titles, queue: queue}
	pos := 0
	for _, t := range titles {
		w := ansi.StringWidth(t) + 2
		s.x = append(s.x, pos)
		s.widths = append(s.widths, w)
		pos += w + triggerGap
	}
	s.content = max(0, pos-triggerGap)
	return s
}

// Height returns the strip's row count.
func (s *TabStrip) Height() int {
	return StripHeight
}

// SetWidth sets the visible width and keeps the offset in range.
func (s *TabStrip) SetWidth(width int) {
	s.width = width
	s.offset = s.clamp(s.offset)
}

// Rects returns every trigger's layout in strip content columns.
func (s *TabStrip) Rects() []tabs.Rect {
	out := make([]tabs.Rect, len(s.x))
	for i := range s.x {
		out[i] = tabs.Rect{X: float64(s.x[i]), Width: float64(s.widths[i])}
	}
	return out
}

// Offset returns the current scroll offset in columns.
func (s *TabStrip) Offset() float64 {
	return s.offset
}

// Animating reports whether a scroll animation is running.
func (s *TabStrip) Animating() bool {
	return s.frame < stripFrames && s.from != s.to
}

// ContentX converts a screen column to a strip content column.
func (s *TabStrip) ContentX(col int) float64 {
	return float64(col) + math.Round(s.offset)
}

func (s *TabStrip) clamp(x float64) float64 {
	maxOff := float64(max(0, s.content-s.width))
	return math.Max(0, math.Min(x, maxOff))
}

// ScrollTo scrolls to a content column, clamped to the scrollable range.
func (s *TabStrip) ScrollTo(offset float64, animated bool) {
	target := s.clamp(offset)
	s.gen++
	if !animated || target == s.offset {
		s.offset, s.from, s.to = target, target, target
		s.frame = stripFrames
		return
	}
	s.from, s.to, s.frame = s.offset, target, 0
	s.queue.push(s.tick())
}

func (s *TabStrip) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return stripFrameMsg{gen: gen}
	})
}

// Update advances the scroll animation.
func (s *TabStrip) Update(msg stripFrameMsg) tea.Cmd {
	if msg.gen != s.gen || s.frame >= stripFrames {
		return nil
	}
	s.frame++
	t := float64(s.frame) / stripFrames
	ease := 1 - math.Pow(1-t, 3)
	s.offset = s.from + (s.to-s.from)*ease
	if s.frame >= stripFrames {
		s.offset = s.to
		return nil
	}
	return s.tick()
}

// View renders the labels and the indicator. The indicator slides between
// triggers while the pager is between pages.
func (s *TabStrip) View(sel tabs.SelectionState) string {
	var labels strings.Builder
	for i, t := range s.titles {
		if i > 0 {
			labels.WriteString(strings.Repeat(" ", triggerGap))
		}
		style := triggerStyle
		if i == sel.SelectedIndex {
			style = activeTriggerStyle
		}
		labels.WriteString(style.Render(" " + t + " "))
	}

	ix, iw := s.indicator(sel)
	rule := stripRuleStyle.Render(strings.Repeat("─", ix)) +
		indicatorStyle.Render(strings.Repeat("━", iw)) +
		stripRuleStyle.Render(strings.Repeat("─", max(0, s.content-ix-iw)))

	off := int(math.Round(s.offset))
	return s.window(labels.String(), off) + "\n" + s.window(rule, off)
}

// indicator returns the indicator column and width for a pager position.
func (s *TabStrip) indicator(sel tabs.SelectionState) (int, int) {
	if len(s.x) == 0 {
		return 0, 0
	}
	p := min(max(sel.Position, 0), len(s.x)-1)
	x, w := float64(s.x[p]), float64(s.widths[p])
	if f := sel.FractionalOffset; f > 0 && p+1 < len(s.x) {
		x += (float64(s.x[p+1]) - x) * f
		w += (float64(s.widths[p+1]) - w) * f
	}
	return int(math.Round(x)), int(math.Round(w))
}

// window cuts the visible part of a content-wide row and pads it to the
// strip width.
func (s *TabStrip) window(row string, off int) string {
	return padLine(ansi.Cut(row, off, off+s.width), s.width)
}

// padLine pads or truncates s to exactly width cells.
func padLine(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}
