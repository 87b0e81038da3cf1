package tabs

// Scroller accepts programmatic scroll commands. Commands are fire-and-forget:
// callers never wait for an animation to finish.
type Scroller interface {
	ScrollTo(offset float64, animated bool)
}

// Scrollable is a Scroller that also reports where it currently is.
// Offsets are in the page's raw content coordinates, which include the inset
// for InsetContent pages.
type Scrollable interface {
	Scroller
	Offset() float64
}

// ScrollerFunc adapts a function to Scroller.
type ScrollerFunc func(offset float64, animated bool)

// ScrollTo calls f.
func (f ScrollerFunc) ScrollTo(offset float64, animated bool) {
	f(offset, animated)
}

// Rect is a trigger's horizontal layout inside the tab strip.
type Rect struct {
	X     float64
	Width float64
}
