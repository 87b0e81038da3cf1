package tabs

import "log/slog"

// PageState is a page's reconciliation state
type PageState int

const (
	PageIdle    PageState = iota // Not selected, offset frozen
	PageActive                   // Selected; owns translateY
	PageSyncing                  // Not selected, being driven to match translateY
)

// String returns display name for page state
func (s PageState) String() string {
	switch s {
	case PageActive:
		return "active"
	case PageSyncing:
		return "syncing"
	default:
		return "idle"
	}
}

type pageSlot struct {
	scrollable Scrollable
	offset     float64
	state      PageState
	target     float64
}

// ScrollReconciler moves inactive pages so that the header stays consistent
// when the user switches to them.
//
// syncRequest is false while the user is interacting with any page and flips
// true when the active page's drag or momentum ends. Reconciliation only runs
// while it is true.
type ScrollReconciler struct {
	header      *HeaderCollapseController
	mount       *LazyMountManager
	pages       []pageSlot
	active      int
	syncRequest *Value[bool]
	logger      *slog.Logger
}

// NewScrollReconciler creates a reconciler for pageCount pages with active
// selected.
func NewScrollReconciler(pageCount, active int, header *HeaderCollapseController, mount *LazyMountManager, logger *slog.Logger) *ScrollReconciler {
	if logger == nil {
		logger = slog.Default()
	}
	r := &ScrollReconciler{
		header:      header,
		mount:       mount,
		pages:       make([]pageSlot, pageCount),
		active:      active,
		syncRequest: NewValue(false),
		logger:      logger,
	}
	if active >= 0 && active < pageCount {
		r.pages[active].state = PageActive
	}

	r.syncRequest.Subscribe(func(_, next bool) {
		if next {
			r.reconcile()
			return
		}
		// A new interaction started: stop driving anything.
		for i := range r.pages {
			if r.pages[i].state == PageSyncing {
				r.pages[i].state = PageIdle
			}
		}
	})
	header.TranslateY().Subscribe(func(_, _ float64) {
		if r.syncRequest.Get() {
			r.reconcile()
		}
	})
	return r
}

// SyncRequest exposes the sync flag.
func (r *ScrollReconciler) SyncRequest() Readable[bool] {
	return r.syncRequest
}

// Attach binds a mounted page's scrollable and moves it to the offset implied
// by the current translateY, so a late-mounted page never shows an expanded
// header. Returns the applied offset.
func (r *ScrollReconciler) Attach(index int, s Scrollable) float64 {
	if !r.valid(index) {
		return 0
	}
	slot := &r.pages[index]
	slot.scrollable = s
	slot.offset = r.mountOffset()
	if s != nil {
		s.ScrollTo(slot.offset, false)
	}
	return slot.offset
}

// Detach drops a page's scrollable. Its recorded offset is kept.
func (r *ScrollReconciler) Detach(index int) {
	if r.valid(index) {
		r.pages[index].scrollable = nil
	}
}

// mountOffset is the raw offset that matches the current header collapse.
func (r *ScrollReconciler) mountOffset() float64 {
	return -r.header.TranslateY().Get() - r.header.InsetOffset()
}

// Record stores the active page's own scroll offset.
func (r *ScrollReconciler) Record(index int, y float64) {
	if !r.valid(index) || index != r.active {
		return
	}
	r.pages[index].offset = y
}

// BeginInteraction suppresses reconciliation while a drag or momentum scroll
// is in progress on any page.
func (r *ScrollReconciler) BeginInteraction() {
	r.syncRequest.Set(false)
}

// EndInteraction requests reconciliation once the active page settles.
// Settling of an inactive page is ignored.
func (r *ScrollReconciler) EndInteraction(index int) {
	if index != r.active {
		return
	}
	r.syncRequest.Set(true)
}

// OnIndexSelected makes index the active page. Any pending sync target for it
// is dropped; the scroll command already issued is left to finish.
func (r *ScrollReconciler) OnIndexSelected(index int) {
	if !r.valid(index) {
		return
	}
	if r.valid(r.active) && r.active != index {
		r.pages[r.active].state = PageIdle
	}
	r.active = index
	slot := &r.pages[index]
	slot.state = PageActive
	slot.target = 0
	r.syncRequest.Set(false)
}

// State returns a page's reconciliation state.
func (r *ScrollReconciler) State(index int) PageState {
	if !r.valid(index) {
		return PageIdle
	}
	return r.pages[index].state
}

// Offset returns a page's recorded offset.
func (r *ScrollReconciler) Offset(index int) float64 {
	if !r.valid(index) {
		return 0
	}
	return r.pages[index].offset
}

// Target returns the sync target of a page in PageSyncing.
func (r *ScrollReconciler) Target(index int) (float64, bool) {
	if !r.valid(index) || r.pages[index].state != PageSyncing {
		return 0, false
	}
	return r.pages[index].target, true
}

func (r *ScrollReconciler) reconcile() {
	geo := r.header.Geometry()
	absT := -geo.TranslateY
	inset := r.header.InsetOffset()

	for i := range r.pages {
		if i == r.active {
			continue
		}
		slot := &r.pages[i]
		if !r.mount.IsMounted(i) || slot.scrollable == nil {
			// Picked up by Attach when the page mounts.
			continue
		}
		if !(absT < geo.HeaderHeight || slot.offset+inset < absT) {
			continue
		}
		target := absT - inset
		if slot.offset == target {
			continue
		}
		slot.state = PageSyncing
		slot.target = target
		// Recorded before the command goes out: the scroll animation is not
		// awaited and a fast page switch must see the new value.
		slot.offset = target
		r.logger.Debug("reconcile page", "page", i, "target", target, "translate_y", geo.TranslateY)
		slot.scrollable.ScrollTo(target, false)
	}
}

func (r *ScrollReconciler) valid(index int) bool {
	return index >= 0 && index < len(r.pages)
}
