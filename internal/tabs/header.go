package tabs

import "math"

// InsetMode selects how a page's scrollable makes room for the header.
type InsetMode int

const (
	// InsetPadding pads the top of the content by header+strip height.
	// Offsets start at 0.
	InsetPadding InsetMode = iota
	// InsetContent keeps the header space outside the content. Offsets start
	// at -(header+strip).
	InsetContent
)

// String returns the config name of the mode
func (m InsetMode) String() string {
	if m == InsetContent {
		return "content"
	}
	return "padding"
}

// ParseInsetMode parses a config name. Unknown names map to InsetPadding.
func ParseInsetMode(s string) InsetMode {
	if s == "content" {
		return InsetContent
	}
	return InsetPadding
}

// HeaderGeometry describes the shared header block.
type HeaderGeometry struct {
	HeaderHeight   float64
	TabStripHeight float64
	TranslateY     float64
}

// TopHeight is the header plus the tab strip.
func (g HeaderGeometry) TopHeight() float64 {
	return g.HeaderHeight + g.TabStripHeight
}

// VisibleHeader is how many header rows are still on screen.
func (g HeaderGeometry) VisibleHeader() float64 {
	return g.HeaderHeight + g.TranslateY
}

// HeaderCollapseController derives the header's translateY from the active
// page's scroll offset.
type HeaderCollapseController struct {
	headerHeight   float64
	tabStripHeight float64
	inset          InsetMode
	translateY     *Value[float64]
}

// NewHeaderCollapseController creates a controller with no measured heights.
func NewHeaderCollapseController(inset InsetMode) *HeaderCollapseController {
	return &HeaderCollapseController{
		inset:      inset,
		translateY: NewValue(0.0),
	}
}

// SetHeights records measured header and tab strip heights.
func (h *HeaderCollapseController) SetHeights(header, tabStrip float64) {
	h.headerHeight = math.Max(header, 0)
	h.tabStripHeight = math.Max(tabStrip, 0)
	// Re-clamp against the new height.
	if t := h.translateY.Get(); t < -h.headerHeight {
		h.translateY.Set(-h.headerHeight)
	}
}

// Inset returns the controller's inset mode.
func (h *HeaderCollapseController) Inset() InsetMode {
	return h.inset
}

// InsetOffset is the difference between a page's raw content offset and the
// offset the header math works in. Zero for InsetPadding.
func (h *HeaderCollapseController) InsetOffset() float64 {
	if h.inset == InsetContent {
		return h.headerHeight + h.tabStripHeight
	}
	return 0
}

// OnActiveListScroll recomputes translateY from the active list's offset.
// Callers must only forward events from the active page.
func (h *HeaderCollapseController) OnActiveListScroll(y float64) {
	h.translateY.Set(h.collapseFor(y))
}

func (h *HeaderCollapseController) collapseFor(y float64) float64 {
	if h.headerHeight <= 0 {
		return 0
	}
	if h.inset == InsetContent {
		top := h.headerHeight + h.tabStripHeight
		return interpolateClamp(y, -top, -h.tabStripHeight, 0, -h.headerHeight)
	}
	return interpolateClamp(y, 0, h.headerHeight, 0, -h.headerHeight)
}

// TranslateY exposes the derived header offset.
func (h *HeaderCollapseController) TranslateY() Readable[float64] {
	return h.translateY
}

// Geometry returns a snapshot of the header block.
func (h *HeaderCollapseController) Geometry() HeaderGeometry {
	return HeaderGeometry{
		HeaderHeight:   h.headerHeight,
		TabStripHeight: h.tabStripHeight,
		TranslateY:     h.translateY.Get(),
	}
}

// interpolateClamp maps x from [in0,in1] onto [out0,out1], clamping outside
// the input range.
func interpolateClamp(x, in0, in1, out0, out1 float64) float64 {
	if in1 == in0 {
		return out0
	}
	t := (x - in0) / (in1 - in0)
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	v := out0 + t*(out1-out0)
	if v == 0 {
		// avoid -0 leaking into comparisons and rendering
		return 0
	}
	return v
}
