// Package tabview is a Bubble Tea front end for the tabs engine: a
// collapsible header, a scrollable tab strip, and a pager of scrollable
// pages that keep the header consistent across tab switches.
package tabview

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tabsync/internal/tabs"
	"github.com/marcus/tabsync/pkg/tabview/keymap"
)

// DefaultSettleDelay is how long scroll input must pause before a scroll
// counts as settled.
const DefaultSettleDelay = 150 * time.Millisecond

// Config configures a Model.
type Config struct {
	Tabs []Tab
	// Header is the collapsible header slot; nil means no header.
	Header       *Header
	InitialIndex int
	Lazy         bool
	Inset        tabs.InsetMode
	SettleDelay  time.Duration
	Keymap       *keymap.Registry

	OnIndexChange  func(index int)
	OnTriggerPress func(index int)
	Logger         *slog.Logger
}

// Model is the Bubble Tea model for a tab view
type Model struct {
	Root   *tabs.Root
	Tabs   []Tab
	Header *Header
	Strip  *TabStrip
	Pager  *Pager
	Keymap *keymap.Registry

	// Window dimensions
	Width  int
	Height int

	// UI state
	HelpOpen   bool
	HelpScroll int
	Notice     string

	// pages and bindings are indexed by slot and filled as slots mount.
	// Their backing arrays are shared by every copy of the model.
	pages    []Page
	bindings []*tabs.PageBinding

	settleDelay time.Duration
	settleGen   *int
	queue       *cmdQueue
	logger      *slog.Logger
}

// NewModel builds the tab root and its front end.
func NewModel(cfg Config) (Model, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	km := cfg.Keymap
	if km == nil {
		km = keymap.NewRegistry()
		keymap.RegisterDefaults(km)
	}
	delay := cfg.SettleDelay
	if delay <= 0 {
		delay = DefaultSettleDelay
	}

	specs := make([]tabs.PageSpec, len(cfg.Tabs))
	titles := make([]string, len(cfg.Tabs))
	for i, t := range cfg.Tabs {
		specs[i] = t.PageSpec
		titles[i] = t.Title
	}

	queue := &cmdQueue{}
	pages := make([]Page, len(cfg.Tabs))

	root, err := tabs.NewRoot(specs, tabs.Options{
		InitialIndex:  cfg.InitialIndex,
		Lazy:          cfg.Lazy,
		Inset:         cfg.Inset,
		HasHeader:     cfg.Header != nil,
		HasTabList:    true,
		TabListHeight: StripHeight,
		ScreenFocused: true,
		OnIndexChange: func(index int) {
			// Leaving a page takes the keyboard back from its input.
			for i, p := range pages {
				if ip, ok := p.(InputPage); ok && i != index {
					ip.BlurInput()
				}
			}
			if cfg.OnIndexChange != nil {
				cfg.OnIndexChange(index)
			}
		},
		OnTriggerPress: cfg.OnTriggerPress,
		Logger:         logger,
	})
	if err != nil {
		return Model{}, fmt.Errorf("tab view: %w", err)
	}

	root.OnPageMount(func(index int) {
		queue.mounts = append(queue.mounts, index)
	})
	queue.mounts = append(queue.mounts, root.Mounted()...)

	strip := NewTabStrip(titles, queue)
	root.SetStripScroller(strip)
	pager := NewPager(root, queue)
	root.SetPager(pager)

	gen := 0
	return Model{
		Root:        root,
		Tabs:        cfg.Tabs,
		Header:      cfg.Header,
		Strip:       strip,
		Pager:       pager,
		Keymap:      km,
		pages:       pages,
		bindings:    make([]*tabs.PageBinding, len(cfg.Tabs)),
		settleDelay: delay,
		settleGen:   &gen,
		queue:       queue,
		logger:      logger,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Page returns the page in slot index, or nil before it mounts.
func (m Model) Page(index int) Page {
	if index < 0 || index >= len(m.pages) {
		return nil
	}
	return m.pages[index]
}

// Close releases the tab root.
func (m Model) Close() {
	m.Root.Close()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		m.Notice = ""
		cmd, quit := m.handleKey(msg)
		if quit {
			m.Root.Close()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tea.FocusMsg:
		m.Root.SetScreenFocused(true)

	case tea.BlurMsg:
		m.Root.SetScreenFocused(false)

	case NoticeMsg:
		m.Notice = msg.Text

	case SelectTabMsg:
		m.Root.SetIndex(msg.Index)

	case settleMsg:
		if msg.gen == *m.settleGen {
			if b := m.bindings[m.Root.Selected()]; b != nil {
				b.EndDrag()
			}
		}

	case stripFrameMsg:
		cmds = append(cmds, m.Strip.Update(msg))

	case pagerFrameMsg:
		cmds = append(cmds, m.Pager.Update(msg))

	default:
		// Loader replies, spinner ticks and the like go to every mounted
		// page; each ignores what is not addressed to it.
		for _, p := range m.pages {
			if p != nil {
				cmds = append(cmds, p.Update(msg))
			}
		}
	}

	m.mountPending()
	cmds = append(cmds, m.queue.drain()...)
	return m, tea.Batch(cmds...)
}

// resize measures the header and strip and resizes mounted pages.
func (m *Model) resize(width, height int) {
	m.Width, m.Height = width, height

	if m.Header != nil {
		m.Header.SetWidth(width)
		m.Root.MeasureHeader(float64(m.Header.Height()))
	}
	m.Strip.SetWidth(width)
	m.Root.MeasureTabList(float64(m.Strip.Height()))
	for i, r := range m.Strip.Rects() {
		m.Root.OnTriggerLayout(i, r)
	}
	m.Root.OnStripLayout(float64(width))

	for _, p := range m.pages {
		if p != nil {
			p.SetSize(width, m.pageHeight())
		}
	}
}

func (m Model) pageHeight() int {
	return max(0, m.Height-footerHeight)
}

// mountPending builds and binds slots that mounted since the last Update.
// Pages wait until every slot has been measured.
func (m *Model) mountPending() {
	if !m.Root.Ready() || m.Width == 0 {
		return
	}
	for _, i := range m.queue.takeMounts() {
		if m.pages[i] != nil {
			continue
		}
		tab := m.Tabs[i]
		p := tab.New()
		p.SetSize(m.Width, m.pageHeight())
		if ka, ok := p.(KeyboardAvoider); ok && tab.KeyboardAvoiding {
			ka.AvoidKeyboard(tab.KeyboardOffset)
		}
		m.pages[i] = p
		b := m.Root.Bind(i, p)
		m.bindings[i] = b
		m.queue.push(p.Mount(b))

		if fa, ok := p.(FocusAware); ok {
			queue := m.queue
			m.Root.WatchFocus(i, func(focused bool) {
				queue.push(fa.FocusChanged(focused))
			})
			if m.Root.IsTabFocused(i) {
				m.queue.push(fa.FocusChanged(true))
			}
		}
		m.logger.Debug("tab page mounted", "page", i, "title", tab.Title)
	}
}

// activePage returns the selected page and its binding, if mounted.
func (m Model) activePage() (Page, *tabs.PageBinding) {
	sel := m.Root.Selected()
	return m.pages[sel], m.bindings[sel]
}

// capturing reports whether the active page's input has the keyboard.
func (m Model) capturing() bool {
	p, _ := m.activePage()
	ip, ok := p.(InputPage)
	return ok && ip.Capturing()
}

// CurrentContext returns the keymap context for the current UI state.
func (m Model) CurrentContext() keymap.Context {
	switch {
	case m.HelpOpen:
		return keymap.ContextHelp
	case m.capturing():
		return keymap.ContextInput
	default:
		return keymap.ContextTabs
	}
}

// scrollActive runs a user scroll on the active page as one interaction:
// sync is suppressed now and requested once input pauses.
func (m Model) scrollActive(scroll func(p Page) tea.Cmd) tea.Cmd {
	p, b := m.activePage()
	if p == nil {
		return nil
	}
	b.BeginDrag()
	cmd := scroll(p)
	*m.settleGen++
	gen := *m.settleGen
	settle := tea.Tick(m.settleDelay, func(time.Time) tea.Msg {
		return settleMsg{gen: gen}
	})
	return tea.Batch(cmd, settle)
}

// pressTab selects a tab the way a trigger press does.
func (m Model) pressTab(index int) {
	if index < 0 || index >= len(m.Tabs) {
		return
	}
	m.Root.PressTrigger(index)
}
