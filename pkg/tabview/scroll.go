package tabview

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tabsync/internal/tabs"
)

// scrollBody is the scrolling core shared by the page types. Content sits
// below TopHeight blank rows that the header block covers, and is padded so
// the header can always collapse fully.
//
// Raw offsets are viewport rows minus the inset offset, so in content inset
// mode the resting position is -inset.
type scrollBody struct {
	vp      viewport.Model
	binding *tabs.PageBinding
	lines   []string
	width   int
	height  int
	reserve int // rows kept free at the bottom

	pending    float64
	hasPending bool

	// afterScroll runs after every reported scroll
	afterScroll func()
}

func newScrollBody() scrollBody {
	return scrollBody{vp: viewport.New(0, 0)}
}

func (s *scrollBody) inset() float64 {
	return s.binding.InsetOffset()
}

func (s *scrollBody) topRows() int {
	return int(math.Round(s.binding.TopHeight()))
}

// ScrollTo moves to a raw offset. Before Mount the offset is held.
func (s *scrollBody) ScrollTo(offset float64, animated bool) {
	if s.binding == nil {
		s.pending, s.hasPending = offset, true
		return
	}
	s.vp.SetYOffset(int(math.Round(offset + s.inset())))
	s.report()
}

// Offset returns the raw offset.
func (s *scrollBody) Offset() float64 {
	if s.binding == nil && s.hasPending {
		return s.pending
	}
	return float64(s.vp.YOffset) - s.inset()
}

func (s *scrollBody) report() {
	s.binding.OnScroll(s.Offset())
	if s.afterScroll != nil {
		s.afterScroll()
	}
}

// Mount binds the body and applies a held offset.
func (s *scrollBody) Mount(b *tabs.PageBinding) tea.Cmd {
	s.binding = b
	s.render()
	if s.hasPending {
		s.hasPending = false
		s.vp.SetYOffset(int(math.Round(s.pending + s.inset())))
	}
	s.report()
	return nil
}

// SetSize resizes the viewport.
func (s *scrollBody) SetSize(width, height int) {
	s.width, s.height = width, height
	s.resize()
}

func (s *scrollBody) resize() {
	s.vp.Width = s.width
	s.vp.Height = max(0, s.height-s.reserve)
	s.render()
}

func (s *scrollBody) setLines(lines []string) {
	s.lines = lines
	s.render()
}

// render rebuilds the viewport content, keeping the offset where it can.
func (s *scrollBody) render() {
	top := s.topRows()
	minRows := int(math.Ceil(s.binding.MinContentHeight(float64(s.vp.Height))))
	out := make([]string, 0, max(top+len(s.lines), minRows))
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	out = append(out, s.lines...)
	for len(out) < minRows {
		out = append(out, "")
	}

	y := s.vp.YOffset
	s.vp.SetContent(strings.Join(out, "\n"))
	s.vp.SetYOffset(y)
	if s.binding != nil && s.vp.YOffset != y {
		s.report()
	}
}

// ScrollBy scrolls by lines, down when positive.
func (s *scrollBody) ScrollBy(lines int) tea.Cmd {
	if lines > 0 {
		s.vp.ScrollDown(lines)
	} else if lines < 0 {
		s.vp.ScrollUp(-lines)
	}
	s.report()
	return nil
}

// GotoTop scrolls to the resting position.
func (s *scrollBody) GotoTop() tea.Cmd {
	s.vp.GotoTop()
	s.report()
	return nil
}

// GotoBottom scrolls to the end of the content.
func (s *scrollBody) GotoBottom() tea.Cmd {
	s.vp.GotoBottom()
	s.report()
	return nil
}

// Update ignores messages.
func (s *scrollBody) Update(msg tea.Msg) tea.Cmd {
	return nil
}

// View renders the visible rows.
func (s *scrollBody) View() string {
	return s.vp.View()
}

// visibleContent returns the content line range not covered by the header
// block, in s.lines coordinates.
func (s *scrollBody) visibleContent() (first, last int) {
	covered := s.topRows() + int(math.Round(s.binding.TranslateY()))
	start := s.vp.YOffset + covered - s.topRows()
	end := s.vp.YOffset + s.vp.Height - s.topRows()
	return max(0, start), min(len(s.lines), end)
}
