package tabview

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tabsync/internal/tabs"
)

// frameInterval paces the strip and pager animations
const frameInterval = time.Second / 30

// Page is the content of one pager slot. It is built when its slot mounts,
// bound to the tab root, and must report its raw offset through the binding
// after every scroll.
type Page interface {
	tabs.Scrollable

	// Mount hands the page its binding. Any ScrollTo received before Mount
	// must be applied here.
	Mount(b *tabs.PageBinding) tea.Cmd
	SetSize(width, height int)
	ScrollBy(lines int) tea.Cmd
	GotoTop() tea.Cmd
	GotoBottom() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// InputPage is a page with a text input that can take the keyboard.
type InputPage interface {
	Page
	FocusInput() tea.Cmd
	BlurInput()
	SubmitInput() tea.Cmd
	Capturing() bool
}

// FocusAware pages are told when they gain or lose tab focus.
type FocusAware interface {
	FocusChanged(focused bool) tea.Cmd
}

// KeyboardAvoider pages reserve rows at the bottom while their input has
// focus.
type KeyboardAvoider interface {
	AvoidKeyboard(rows int)
}

// Tab is one page slot: its spec plus a constructor run at mount time.
type Tab struct {
	tabs.PageSpec
	New func() Page
}

// SelectTabMsg drives the selection from outside the view, like a
// controlled index.
type SelectTabMsg struct {
	Index int
}

// NoticeMsg shows a one-line notice in the footer until the next key.
type NoticeMsg struct {
	Text string
}

// settleMsg fires when no scroll input arrived for the settle delay.
type settleMsg struct{ gen int }

// stripFrameMsg advances the tab strip scroll animation
type stripFrameMsg struct{ gen int }

// pagerFrameMsg advances the pager transition
type pagerFrameMsg struct{ gen int }

// cmdQueue collects work produced inside engine callbacks, which cannot
// return commands. The model drains it at the end of every Update.
type cmdQueue struct {
	cmds   []tea.Cmd
	mounts []int
}

func (q *cmdQueue) push(cmd tea.Cmd) {
	if cmd != nil {
		q.cmds = append(q.cmds, cmd)
	}
}

func (q *cmdQueue) drain() []tea.Cmd {
	cmds := q.cmds
	q.cmds = nil
	return cmds
}

func (q *cmdQueue) takeMounts() []int {
	m := q.mounts
	q.mounts = nil
	return m
}
