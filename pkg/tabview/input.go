package tabview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tabsync/pkg/tabview/keymap"
)

// wheelLines is how far one mouse wheel notch scrolls
const wheelLines = 3

// handleKey dispatches a key through the keymap. It reports quit separately
// so Update can release the root first.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	ctx := m.CurrentContext()
	cmd, found := m.Keymap.Lookup(msg, ctx)

	if ctx == keymap.ContextInput {
		// Only the input's own commands and non-printable quits escape the
		// input; everything else is typing.
		switch {
		case found && (cmd == keymap.CmdInputSubmit || cmd == keymap.CmdInputCancel):
		case found && cmd == keymap.CmdQuit && !keymap.IsPrintable(msg):
		default:
			p, _ := m.activePage()
			return p.Update(msg), false
		}
	}

	if !found {
		return nil, false
	}
	return m.execute(cmd, ctx)
}

// execute runs a command in ctx.
func (m *Model) execute(cmd keymap.Command, ctx keymap.Context) (tea.Cmd, bool) {
	if ctx == keymap.ContextHelp {
		switch cmd {
		case keymap.CmdClose, keymap.CmdToggleHelp:
			m.HelpOpen = false
		case keymap.CmdScrollDown:
			m.HelpScroll = min(m.HelpScroll+1, m.helpMaxScroll())
		case keymap.CmdScrollUp:
			m.HelpScroll = max(0, m.HelpScroll-1)
		case keymap.CmdQuit:
			return nil, true
		}
		return nil, false
	}

	half := max(1, m.pageHeight()/2)
	full := max(1, m.pageHeight()-m.Strip.Height())

	switch cmd {
	case keymap.CmdQuit:
		return nil, true
	case keymap.CmdToggleHelp:
		m.HelpOpen = true
		m.HelpScroll = 0

	case keymap.CmdScrollDown:
		return m.scrollActive(func(p Page) tea.Cmd { return p.ScrollBy(1) }), false
	case keymap.CmdScrollUp:
		return m.scrollActive(func(p Page) tea.Cmd { return p.ScrollBy(-1) }), false
	case keymap.CmdHalfPageDown:
		return m.scrollActive(func(p Page) tea.Cmd { return p.ScrollBy(half) }), false
	case keymap.CmdHalfPageUp:
		return m.scrollActive(func(p Page) tea.Cmd { return p.ScrollBy(-half) }), false
	case keymap.CmdFullPageDown:
		return m.scrollActive(func(p Page) tea.Cmd { return p.ScrollBy(full) }), false
	case keymap.CmdFullPageUp:
		return m.scrollActive(func(p Page) tea.Cmd { return p.ScrollBy(-full) }), false
	case keymap.CmdScrollTop:
		return m.scrollActive(func(p Page) tea.Cmd { return p.GotoTop() }), false
	case keymap.CmdScrollBottom:
		return m.scrollActive(func(p Page) tea.Cmd { return p.GotoBottom() }), false
	case keymap.CmdScrollToTop:
		return m.scrollActive(func(Page) tea.Cmd {
			m.Root.ScrollToTop()
			return nil
		}), false

	case keymap.CmdSwipeNext:
		m.Pager.Swipe(1)
	case keymap.CmdSwipePrev:
		m.Pager.Swipe(-1)
	case keymap.CmdNextTab:
		m.pressTab((m.Root.Selected() + 1) % len(m.Tabs))
	case keymap.CmdPrevTab:
		m.pressTab((m.Root.Selected() - 1 + len(m.Tabs)) % len(m.Tabs))

	case keymap.CmdFocusInput:
		p, _ := m.activePage()
		if ip, ok := p.(InputPage); ok {
			return ip.FocusInput(), false
		}
	case keymap.CmdInputSubmit:
		p, _ := m.activePage()
		if ip, ok := p.(InputPage); ok {
			return ip.SubmitInput(), false
		}
	case keymap.CmdInputCancel:
		p, _ := m.activePage()
		if ip, ok := p.(InputPage); ok {
			ip.BlurInput()
		}

	default:
		if n, ok := keymap.TabNumber(cmd); ok {
			m.pressTab(n - 1)
		}
	}
	return nil, false
}

// handleMouse scrolls the active page with the wheel, swipes with the
// horizontal wheel, and presses triggers on click.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.HelpOpen || msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelDown:
		return m.scrollActive(func(p Page) tea.Cmd { return p.ScrollBy(wheelLines) })
	case tea.MouseButtonWheelUp:
		return m.scrollActive(func(p Page) tea.Cmd { return p.ScrollBy(-wheelLines) })
	case tea.MouseButtonWheelRight:
		m.Pager.Swipe(1)
	case tea.MouseButtonWheelLeft:
		m.Pager.Swipe(-1)
	case tea.MouseButtonLeft:
		if msg.Y == m.stripTop() {
			if i, ok := m.Root.TriggerAt(m.Strip.ContentX(msg.X)); ok {
				m.pressTab(i)
			}
		}
	}
	return nil
}
