package tabview

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tabsync/internal/tabs"
)

const (
	pagerFrames = 8
	// pagerRelease is the frame at which a swipe is let go and the pager
	// starts settling.
	pagerRelease = 3
)

// Pager animates the horizontal transition between pages and reports every
// frame to the tab root, as a native pager would.
type Pager struct {
	root  *tabs.Root
	queue *cmdQueue
	count int

	pos      float64
	from, to float64
	target   int
	frame    int
	gen      int
	swiping  bool
}

// NewPager creates a pager resting on the root's selected page.
func NewPager(root *tabs.Root, queue *cmdQueue) *Pager {
	sel := root.Selected()
	return &Pager{
		root:   root,
		queue:  queue,
		count:  len(root.Pages()),
		pos:    float64(sel),
		from:   float64(sel),
		to:     float64(sel),
		target: sel,
		frame:  pagerFrames,
	}
}

// Position returns the visual position in pages.
func (p *Pager) Position() float64 {
	return p.pos
}

// Moving reports whether a transition is running.
func (p *Pager) Moving() bool {
	return p.frame < pagerFrames
}

// SetPage animates to index. The selection is already committed by the
// caller, so frames report settling and never a drag.
func (p *Pager) SetPage(index int) {
	if index < 0 || index >= p.count {
		return
	}
	p.start(index, false)
}

// Swipe moves one page in dir like a released drag: frames first, then
// settling, then the selection.
func (p *Pager) Swipe(dir int) {
	next := p.target + dir
	if dir == 0 || next < 0 || next >= p.count {
		return
	}
	p.start(next, true)
}

func (p *Pager) start(index int, swipe bool) {
	p.gen++
	p.target = index
	p.swiping = swipe
	p.from, p.to = p.pos, float64(index)
	if p.from == p.to {
		p.frame = pagerFrames
		p.root.OnPageSelected(index)
		return
	}
	p.frame = 0
	p.queue.push(p.tick())
}

func (p *Pager) tick() tea.Cmd {
	gen := p.gen
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return pagerFrameMsg{gen: gen}
	})
}

// Update advances the transition.
func (p *Pager) Update(msg pagerFrameMsg) tea.Cmd {
	if msg.gen != p.gen || p.frame >= pagerFrames {
		return nil
	}
	p.frame++
	t := float64(p.frame) / pagerFrames
	ease := 1 - math.Pow(1-t, 2)
	p.pos = p.from + (p.to-p.from)*ease

	if p.frame >= pagerFrames {
		p.pos = p.to
		p.root.OnPageSelected(p.target)
		return nil
	}

	left := math.Floor(p.pos)
	if !p.swiping {
		p.root.OnPagerAnimating(p.pos-left, int(left))
		return p.tick()
	}
	p.root.OnPagerScroll(p.pos-left, int(left))
	if p.frame == pagerRelease {
		p.root.OnPagerSettling()
	}
	return p.tick()
}
