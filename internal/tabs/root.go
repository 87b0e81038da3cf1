package tabs

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrNoPages is returned when a root is created without pages.
	ErrNoPages = errors.New("tabs: at least one page is required")
	// ErrInvalidIndex is returned for an initial index outside the pages.
	ErrInvalidIndex = errors.New("tabs: index out of range")
)

// PageSpec describes one page slot of the root.
type PageSpec struct {
	Title string
	// KeyboardAvoiding reserves KeyboardOffset rows at the bottom of the page
	// while its text input has focus.
	KeyboardAvoiding bool
	KeyboardOffset   int
}

// Pager is the horizontal page container. SetPage starts an animated
// transition; the pager reports progress through Root.OnPagerScroll and
// completion through Root.OnPageSelected.
type Pager interface {
	SetPage(index int)
}

// Options configures a Root.
type Options struct {
	InitialIndex int
	// Lazy defers mounting a page until it is first selected.
	Lazy  bool
	Inset InsetMode
	// HasHeader and HasTabList name which slots are present. Pages are held
	// back until every present slot has been measured.
	HasHeader  bool
	HasTabList bool
	// TabListHeight, when set, is used until the tab list is measured.
	TabListHeight float64
	// ScreenFocused is the navigation focus at construction.
	ScreenFocused bool
	OnIndexChange func(index int)
	// OnTriggerPress runs before the pager starts moving.
	OnTriggerPress func(index int)
	Logger         *slog.Logger
}

// Root coordinates the position store, header collapse, lazy mounting,
// reconciliation and tab strip for one tab view.
type Root struct {
	pages []PageSpec
	opts  Options

	position   *PositionStore
	header     *HeaderCollapseController
	mount      *LazyMountManager
	reconciler *ScrollReconciler
	strip      *TabStripController
	focus      *FocusTracker
	pager      Pager

	headerMeasured bool
	listMeasured   bool
	headerHeight   float64
	listHeight     float64

	onMount []func(index int)
	cancel  []func()
	closed  bool
	logger  *slog.Logger
}

// NewRoot wires a Root for pages.
func NewRoot(pages []PageSpec, opts Options) (*Root, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if opts.InitialIndex < 0 || opts.InitialIndex >= len(pages) {
		return nil, fmt.Errorf("initial index %d of %d pages: %w", opts.InitialIndex, len(pages), ErrInvalidIndex)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Root{
		pages:  pages,
		opts:   opts,
		logger: logger,
	}
	r.position = NewPositionStore(len(pages), opts.InitialIndex)
	r.header = NewHeaderCollapseController(opts.Inset)
	r.mount = NewLazyMountManager(len(pages), opts.InitialIndex, opts.Lazy)
	r.reconciler = NewScrollReconciler(len(pages), opts.InitialIndex, r.header, r.mount, logger)
	r.strip = NewTabStripController()
	r.focus = NewFocusTracker(r.position.Index(), opts.ScreenFocused)
	r.listHeight = opts.TabListHeight
	r.listMeasured = opts.TabListHeight > 0

	r.mount.OnMount(func(index int) {
		for _, fn := range r.onMount {
			fn(index)
		}
	})

	// Order matters: the reconciler must see the new active page before the
	// mount callback binds it.
	r.cancel = append(r.cancel, r.position.Index().Subscribe(func(prev, next int) {
		r.reconciler.OnIndexSelected(next)
		r.mount.OnIndexSelected(next)
		r.strip.OnIndexChange(next)
		r.logger.Debug("tab selected", "from", prev, "to", next)
		if r.opts.OnIndexChange != nil {
			r.opts.OnIndexChange(next)
		}
	}))
	// Initial mount: records the index without scrolling the strip.
	r.strip.OnIndexChange(opts.InitialIndex)

	return r, nil
}

// Pages returns the page slots.
func (r *Root) Pages() []PageSpec {
	return r.pages
}

// SetPager installs the pager.
func (r *Root) SetPager(p Pager) {
	r.pager = p
}

// SetStripScroller installs the tab strip's scrollable.
func (r *Root) SetStripScroller(s Scroller) {
	r.strip.SetScroller(s)
}

// OnPageMount registers fn to run when a lazily mounted page is first
// selected. Pages mounted at construction are listed by Mounted.
func (r *Root) OnPageMount(fn func(index int)) {
	r.onMount = append(r.onMount, fn)
}

// MeasureHeader records the header slot's measured height.
func (r *Root) MeasureHeader(h float64) {
	r.headerHeight = h
	r.headerMeasured = true
	r.header.SetHeights(r.headerHeight, r.listHeight)
}

// MeasureTabList records the tab list slot's measured height.
func (r *Root) MeasureTabList(h float64) {
	r.listHeight = h
	r.listMeasured = h > 0
	r.header.SetHeights(r.headerHeight, r.listHeight)
}

// Ready reports whether pages may be shown: every present slot has a height.
func (r *Root) Ready() bool {
	if r.opts.HasHeader && !r.headerMeasured {
		return false
	}
	if r.opts.HasTabList && !r.listMeasured {
		return false
	}
	return true
}

// Bind attaches a mounted page's scrollable and returns the narrow contract
// the page uses to report scrolling. Binding an unmounted page is a misuse
// and yields an inert binding.
func (r *Root) Bind(index int, s Scrollable) *PageBinding {
	if index < 0 || index >= len(r.pages) {
		r.logger.Error("tab page bound outside pager", "page", index, "pages", len(r.pages))
		return &PageBinding{index: index}
	}
	if !r.mount.IsMounted(index) {
		r.logger.Error("tab page bound before mount", "page", index)
		return &PageBinding{index: index}
	}
	r.reconciler.Attach(index, s)
	return &PageBinding{root: r, index: index}
}

// PressTrigger selects index synchronously, then asks the pager to animate
// there. Derived state (mount set, strip scroll) updates before the pager
// moves.
func (r *Root) PressTrigger(index int) {
	if index < 0 || index >= len(r.pages) {
		r.logger.Error("tab trigger outside pager", "trigger", index, "pages", len(r.pages))
		return
	}
	if r.opts.OnTriggerPress != nil {
		r.opts.OnTriggerPress(index)
	}
	r.position.OnIndexSelected(index)
	if r.pager != nil {
		r.pager.SetPage(index)
	}
}

// SetIndex drives the selection from outside, like a controlled prop.
func (r *Root) SetIndex(index int) {
	if index < 0 || index >= len(r.pages) {
		r.logger.Error("tab index out of range", "index", index, "pages", len(r.pages))
		return
	}
	if r.pager != nil {
		r.pager.SetPage(index)
		return
	}
	r.position.OnIndexSelected(index)
}

// OnPagerScroll is the pager's swipe frame callback.
func (r *Root) OnPagerScroll(offset float64, position int) {
	r.position.OnPagerScroll(offset, position)
}

// OnPagerAnimating is the pager's frame callback for transitions it runs on
// its own, after PressTrigger or SetIndex.
func (r *Root) OnPagerAnimating(offset float64, position int) {
	r.position.OnPagerAnimating(offset, position)
}

// OnPagerSettling is called when a swipe is released.
func (r *Root) OnPagerSettling() {
	r.position.OnPagerSettling()
}

// OnPageSelected is the pager's completion callback.
func (r *Root) OnPageSelected(index int) {
	r.position.OnIndexSelected(index)
}

// OnTriggerLayout records a trigger's layout in the tab strip.
func (r *Root) OnTriggerLayout(index int, rect Rect) {
	if index < 0 || index >= len(r.pages) {
		r.logger.Error("tab trigger layout outside pager", "trigger", index)
		return
	}
	r.strip.OnTriggerLayout(index, rect)
}

// OnStripLayout records the visible tab strip width.
func (r *Root) OnStripLayout(width float64) {
	r.strip.OnStripLayout(width)
}

// SetScreenFocused forwards the navigation focus provider's answer.
func (r *Root) SetScreenFocused(focused bool) {
	r.focus.SetScreenFocused(focused)
}

// IsTabFocused reports whether page is selected and the screen is focused.
func (r *Root) IsTabFocused(page int) bool {
	if page < 0 || page >= len(r.pages) {
		r.logger.Error("tab focus queried outside pager", "page", page)
		return false
	}
	return r.focus.IsTabFocused(page)
}

// WatchFocus calls fn whenever page gains or loses focus.
func (r *Root) WatchFocus(page int, fn func(focused bool)) func() {
	if page < 0 || page >= len(r.pages) {
		r.logger.Error("tab focus watched outside pager", "page", page)
		return func() {}
	}
	stop := r.focus.Watch(page, fn)
	r.cancel = append(r.cancel, stop)
	return stop
}

// ScrollToTop scrolls the active page and the tab strip back to the start.
func (r *Root) ScrollToTop() {
	active := r.position.Selected()
	if slot := r.reconciler.pages[active]; slot.scrollable != nil {
		slot.scrollable.ScrollTo(-r.header.InsetOffset(), true)
	}
	if r.strip.scroller != nil {
		r.strip.scroller.ScrollTo(0, true)
	}
}

// Selected returns the committed selected index.
func (r *Root) Selected() int { return r.position.Selected() }

// Selection returns the full pager state.
func (r *Root) Selection() SelectionState { return r.position.State().Get() }

// Position exposes the position store's read side.
func (r *Root) Position() Readable[SelectionState] { return r.position.State() }

// Geometry returns the header geometry.
func (r *Root) Geometry() HeaderGeometry { return r.header.Geometry() }

// TranslateY exposes the header offset.
func (r *Root) TranslateY() Readable[float64] { return r.header.TranslateY() }

// IsMounted reports whether a page has been mounted.
func (r *Root) IsMounted(index int) bool { return r.mount.IsMounted(index) }

// Mounted lists mounted pages.
func (r *Root) Mounted() []int { return r.mount.Mounted() }

// PageState returns a page's reconciliation state.
func (r *Root) PageState(index int) PageState { return r.reconciler.State(index) }

// PageOffset returns a page's recorded scroll offset.
func (r *Root) PageOffset(index int) float64 { return r.reconciler.Offset(index) }

// SyncRequested reports whether inactive pages are being reconciled.
func (r *Root) SyncRequested() bool { return r.reconciler.SyncRequest().Get() }

// StripTarget returns the last tab strip auto-scroll target.
func (r *Root) StripTarget() (float64, bool) { return r.strip.Target() }

// TriggerAt hit-tests the tab strip in strip content coordinates.
func (r *Root) TriggerAt(x float64) (int, bool) { return r.strip.TriggerAt(x) }

// TriggerLayout returns a trigger's measured layout.
func (r *Root) TriggerLayout(index int) (Rect, bool) { return r.strip.Layout(index) }

// Close releases subscriptions and makes every binding inert.
func (r *Root) Close() {
	if r.closed {
		return
	}
	r.closed = true
	for _, c := range r.cancel {
		c()
	}
	r.cancel = nil
	for i := range r.pages {
		r.reconciler.Detach(i)
	}
}
