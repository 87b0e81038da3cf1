package tabs

// PageBinding is what a page's scrollable wrapper gets from the Root: a way
// to report its own scrolling and read the header state. A binding from a
// misuse (or a closed root) is inert.
type PageBinding struct {
	root  *Root
	index int
}

func (b *PageBinding) live() bool {
	return b != nil && b.root != nil && !b.root.closed
}

// Index returns the bound page.
func (b *PageBinding) Index() int {
	return b.index
}

// Active reports whether the bound page is the selected page.
func (b *PageBinding) Active() bool {
	return b.live() && b.root.position.Selected() == b.index
}

// OnScroll reports the page's current raw offset. Events from a page that is
// not selected are dropped here, before they can reach the header: they come
// from reconciliation scrolls or from a gesture that lost focus mid-flight.
func (b *PageBinding) OnScroll(y float64) {
	if !b.Active() {
		return
	}
	b.root.reconciler.Record(b.index, y)
	b.root.header.OnActiveListScroll(y)
}

// BeginDrag marks the start of a user drag on the page.
func (b *PageBinding) BeginDrag() {
	if b.live() {
		b.root.reconciler.BeginInteraction()
	}
}

// EndDrag marks the end of a user drag on the page.
func (b *PageBinding) EndDrag() {
	if b.live() {
		b.root.reconciler.EndInteraction(b.index)
	}
}

// BeginMomentum marks the start of a momentum scroll.
func (b *PageBinding) BeginMomentum() {
	b.BeginDrag()
}

// EndMomentum marks the end of a momentum scroll.
func (b *PageBinding) EndMomentum() {
	b.EndDrag()
}

// TranslateY returns the header offset.
func (b *PageBinding) TranslateY() float64 {
	if !b.live() {
		return 0
	}
	return b.root.header.TranslateY().Get()
}

// InsetOffset returns the offset between raw and header coordinates.
func (b *PageBinding) InsetOffset() float64 {
	if !b.live() {
		return 0
	}
	return b.root.header.InsetOffset()
}

// TopHeight returns the header plus tab strip height, the space a page must
// leave above its content.
func (b *PageBinding) TopHeight() float64 {
	if !b.live() {
		return 0
	}
	return b.root.header.Geometry().TopHeight()
}

// MinContentHeight is the least content height that still lets the header
// collapse fully on a viewport of the given height.
func (b *PageBinding) MinContentHeight(viewport float64) float64 {
	return viewport + b.TopHeight()
}

// Offset returns the page's recorded offset.
func (b *PageBinding) Offset() float64 {
	if !b.live() {
		return 0
	}
	return b.root.reconciler.Offset(b.index)
}

// Focused reports whether the page is selected and its screen is focused.
func (b *PageBinding) Focused() bool {
	return b.live() && b.root.focus.IsTabFocused(b.index)
}
