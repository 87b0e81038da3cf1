package tabs

// TabStripController keeps the active trigger centered in the tab strip.
type TabStripController struct {
	layouts    map[int]Rect
	stripWidth float64
	scroller   Scroller
	seen       bool
	target     float64
	hasTarget  bool
}

// NewTabStripController creates a controller with no layouts.
func NewTabStripController() *TabStripController {
	return &TabStripController{layouts: make(map[int]Rect)}
}

// SetScroller sets the strip's scrollable. May be nil.
func (c *TabStripController) SetScroller(s Scroller) {
	c.scroller = s
}

// OnTriggerLayout records a trigger's measured layout.
func (c *TabStripController) OnTriggerLayout(index int, rect Rect) {
	c.layouts[index] = rect
}

// OnStripLayout records the visible strip width.
func (c *TabStripController) OnStripLayout(width float64) {
	c.stripWidth = width
}

// Layout returns a trigger's layout, if it has been measured.
func (c *TabStripController) Layout(index int) (Rect, bool) {
	r, ok := c.layouts[index]
	return r, ok
}

// TriggerAt returns the trigger whose layout contains x.
func (c *TabStripController) TriggerAt(x float64) (int, bool) {
	for i, r := range c.layouts {
		if x >= r.X && x < r.X+r.Width {
			return i, true
		}
	}
	return 0, false
}

// OnIndexChange scrolls the strip to center index. The first call only
// records the index so the initial mount does not scroll.
func (c *TabStripController) OnIndexChange(index int) {
	if !c.seen {
		c.seen = true
		return
	}
	rect, ok := c.layouts[index]
	if !ok {
		return
	}
	c.target = rect.X - c.stripWidth/2 + rect.Width/2
	c.hasTarget = true
	if c.scroller != nil {
		c.scroller.ScrollTo(c.target, true)
	}
}

// Target returns the last auto-scroll target.
func (c *TabStripController) Target() (float64, bool) {
	return c.target, c.hasTarget
}
