package demo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/tabsync/internal/feed"
	"github.com/marcus/tabsync/pkg/tabview"
)

// liveRecent is how many entries the live page lists
const liveRecent = 10

var liveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

type liveMsg struct {
	gen    int
	count  int
	recent []feed.Activity
	err    error
}

// livePage polls the feed and animates a spinner, but only while its tab is
// focused.
type livePage struct {
	*tabview.ScrollView
	src      Source
	interval time.Duration
	logger   *slog.Logger
	spin     spinner.Model

	focused bool
	gen     int
	loaded  bool
	count   int
	recent  []feed.Activity
	err     error
}

func newLivePage(opts Options) *livePage {
	p := &livePage{
		ScrollView: tabview.NewScrollView(""),
		src:        opts.Source,
		interval:   opts.PollInterval,
		logger:     opts.Logger,
		spin:       spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(liveStyle)),
	}
	p.render()
	return p
}

// FocusChanged starts polling on focus and stops it on blur.
func (p *livePage) FocusChanged(focused bool) tea.Cmd {
	p.focused = focused
	p.gen++
	p.render()
	if !focused {
		return nil
	}
	return tea.Batch(p.spin.Tick, p.poll(0))
}

func (p *livePage) poll(delay time.Duration) tea.Cmd {
	gen, src := p.gen, p.src
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		n, err := src.Count(ctx)
		if err != nil {
			return liveMsg{gen: gen, err: err}
		}
		recent, err := src.List(ctx, 0, liveRecent)
		return liveMsg{gen: gen, count: n, recent: recent, err: err}
	}
	if delay <= 0 {
		return fetch
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return fetch() })
}

func (p *livePage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !p.focused {
			return nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		p.render()
		return cmd

	case liveMsg:
		// Replies from before the last focus change are dropped.
		if msg.gen != p.gen {
			return nil
		}
		if msg.err != nil {
			p.logger.Warn("live poll failed", "err", msg.err)
		}
		p.loaded = true
		p.count, p.recent, p.err = msg.count, msg.recent, msg.err
		p.render()
		return p.poll(p.interval)
	}
	return nil
}

func (p *livePage) render() {
	var b strings.Builder
	switch {
	case !p.focused:
		b.WriteString(timeStyle.Render(" ○ paused while another tab is open"))
	case p.err != nil:
		fmt.Fprintf(&b, " %s %s", p.spin.View(), p.err)
	case !p.loaded:
		fmt.Fprintf(&b, " %s connecting…", p.spin.View())
	default:
		fmt.Fprintf(&b, " %s %s", p.spin.View(), liveStyle.Render(fmt.Sprintf("%d activities", p.count)))
	}
	b.WriteString("\n")
	for _, a := range p.recent {
		b.WriteString("\n")
		b.WriteString(renderActivity(a, 0))
	}
	p.SetText(b.String())
}
