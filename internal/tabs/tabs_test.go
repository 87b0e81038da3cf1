package tabs

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

// fakeScrollable records scroll commands and echoes them back as scroll
// events, like a real scrollable does after a programmatic scroll.
type fakeScrollable struct {
	offset  float64
	calls   []float64
	binding *PageBinding
}

func (f *fakeScrollable) ScrollTo(y float64, animated bool) {
	f.offset = y
	f.calls = append(f.calls, y)
	if f.binding != nil {
		f.binding.OnScroll(y)
	}
}

func (f *fakeScrollable) Offset() float64 { return f.offset }

type fakePager struct {
	pages []int
}

func (p *fakePager) SetPage(index int) { p.pages = append(p.pages, index) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func threePages() []PageSpec {
	return []PageSpec{{Title: "Created"}, {Title: "Owned"}, {Title: "Liked"}}
}

// newTestRoot builds a measured root with header 100 and strip 40, and binds
// every page that is mounted now or later.
func newTestRoot(t *testing.T, opts Options) (*Root, map[int]*fakeScrollable) {
	t.Helper()
	opts.Logger = quietLogger()
	opts.HasHeader = true
	opts.HasTabList = true
	opts.ScreenFocused = true
	r, err := NewRoot(threePages(), opts)
	if err != nil {
		t.Fatalf("NewRoot: %v", err)
	}
	r.MeasureHeader(100)
	r.MeasureTabList(40)

	pages := make(map[int]*fakeScrollable)
	bind := func(i int) {
		f := &fakeScrollable{}
		f.binding = r.Bind(i, f)
		f.calls = nil
		pages[i] = f
	}
	r.OnPageMount(bind)
	for _, i := range r.Mounted() {
		bind(i)
	}
	return r, pages
}

// drag simulates a full drag on a page ending at y.
func drag(f *fakeScrollable, y float64) {
	f.binding.BeginDrag()
	f.offset = y
	f.binding.OnScroll(y)
	f.binding.EndDrag()
}

func TestNewRootErrors(t *testing.T) {
	if _, err := NewRoot(nil, Options{}); !errors.Is(err, ErrNoPages) {
		t.Errorf("expected ErrNoPages, got %v", err)
	}
	if _, err := NewRoot(threePages(), Options{InitialIndex: 3}); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestHeaderCollapseClamps(t *testing.T) {
	tests := []struct {
		name  string
		inset InsetMode
		y     float64
		want  float64
	}{
		{"padding above top", InsetPadding, -25, 0},
		{"padding at top", InsetPadding, 0, 0},
		{"padding midway", InsetPadding, 60, -60},
		{"padding fully collapsed", InsetPadding, 100, -100},
		{"padding far past header", InsetPadding, 1e6, -100},
		{"content at inset", InsetContent, -140, 0},
		{"content midway", InsetContent, -80, -60},
		{"content collapsed", InsetContent, -40, -100},
		{"content far past header", InsetContent, 5000, -100},
		{"content pulled down", InsetContent, -400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeaderCollapseController(tt.inset)
			h.SetHeights(100, 40)
			h.OnActiveListScroll(tt.y)
			got := h.TranslateY().Get()
			if got != tt.want {
				t.Errorf("translateY for y=%v: got %v, want %v", tt.y, got, tt.want)
			}
			if got < -100 || got > 0 {
				t.Errorf("translateY %v outside [-100, 0]", got)
			}
		})
	}
}

func TestHeaderUnmeasuredNeverCollapses(t *testing.T) {
	h := NewHeaderCollapseController(InsetPadding)
	h.OnActiveListScroll(500)
	if got := h.TranslateY().Get(); got != 0 {
		t.Errorf("expected 0 without header height, got %v", got)
	}
}

func TestPositionStoreClamps(t *testing.T) {
	s := NewPositionStore(3, 7)
	if s.Selected() != 2 {
		t.Errorf("initial index should clamp to 2, got %d", s.Selected())
	}

	s.OnPagerScroll(1.5, -4)
	st := s.State().Get()
	if st.Position != 0 {
		t.Errorf("position should clamp to 0, got %d", st.Position)
	}
	if st.FractionalOffset < 0 || st.FractionalOffset >= 1 {
		t.Errorf("fractional offset %v outside [0,1)", st.FractionalOffset)
	}
	if st.Phase != PhaseDragging {
		t.Errorf("expected dragging, got %s", st.Phase)
	}

	s.OnPagerSettling()
	if s.State().Get().Phase != PhaseSettling {
		t.Errorf("expected settling, got %s", s.State().Get().Phase)
	}

	s.OnIndexSelected(9)
	st = s.State().Get()
	if st.SelectedIndex != 2 || st.Phase != PhaseIdle || st.FractionalOffset != 0 {
		t.Errorf("unexpected state after select: %+v", st)
	}
}

func TestPositionStoreNotifiesOncePerCommit(t *testing.T) {
	s := NewPositionStore(3, 0)
	var got []int
	s.Index().Subscribe(func(_, next int) { got = append(got, next) })

	s.OnPagerScroll(0.2, 0)
	s.OnPagerScroll(0.7, 0)
	s.OnIndexSelected(1)
	s.OnIndexSelected(1)

	if len(got) != 1 || got[0] != 1 {
		t.Errorf("expected one notification for index 1, got %v", got)
	}
}

func TestPositionStoreProgrammaticFramesNeverDrag(t *testing.T) {
	s := NewPositionStore(3, 0)
	var phases []DragPhase
	s.State().Subscribe(func(_, next SelectionState) { phases = append(phases, next.Phase) })

	s.OnIndexSelected(2)
	s.OnPagerAnimating(0.4, 0)
	s.OnPagerAnimating(0.9, 1)
	s.OnIndexSelected(2)

	for i, p := range phases {
		if p == PhaseDragging {
			t.Fatalf("update %d reported a drag: %v", i, phases)
		}
	}
	if st := s.State().Get(); st.Phase != PhaseIdle || st.Position != 2 {
		t.Errorf("state after animation: %+v", st)
	}

	// A user drag already in flight keeps its phase
	s.OnPagerScroll(0.1, 1)
	s.OnPagerAnimating(0.2, 1)
	if got := s.State().Get().Phase; got != PhaseDragging {
		t.Errorf("phase: got %s, want dragging", got)
	}
}

func TestLazyMountIsMonotonic(t *testing.T) {
	r, _ := newTestRoot(t, Options{Lazy: true})

	selected := map[int]bool{0: true}
	for _, i := range []int{2, 0, 2, 1, 0} {
		r.PressTrigger(i)
		selected[i] = true
		for _, m := range r.Mounted() {
			if !selected[m] {
				t.Errorf("page %d mounted without ever being selected", m)
			}
		}
	}
	for i := 0; i < 3; i++ {
		if !r.IsMounted(i) {
			t.Errorf("page %d should stay mounted", i)
		}
	}
}

func TestEagerMountsEverything(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: false})
	if len(r.Mounted()) != 3 || len(pages) != 3 {
		t.Fatalf("expected all 3 pages mounted, got %v", r.Mounted())
	}
}

func TestReconcileOnSettle(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: false})

	drag(pages[0], 60)
	if got := r.TranslateY().Get(); got != -60 {
		t.Fatalf("translateY: got %v, want -60", got)
	}

	// Page 1 never scrolled: reconciliation moves it to abs(-60) - 0.
	if len(pages[1].calls) != 1 || pages[1].calls[0] != 60 {
		t.Errorf("page 1 scroll commands: got %v, want [60]", pages[1].calls)
	}
	if got := r.PageOffset(1); got != 60 {
		t.Errorf("page 1 recorded offset: got %v, want 60", got)
	}
	if r.PageState(1) != PageSyncing {
		t.Errorf("page 1 state: got %s, want syncing", r.PageState(1))
	}

	r.PressTrigger(1)
	if r.PageState(1) != PageActive || r.PageState(0) != PageIdle {
		t.Errorf("states after switch: page0=%s page1=%s", r.PageState(0), r.PageState(1))
	}
	if got := r.TranslateY().Get(); got != -60 {
		t.Errorf("switching must not move the header, got %v", got)
	}
}

func TestLateMountAppliesHeaderOffset(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: true})

	drag(pages[0], 60)
	if _, ok := pages[1]; ok {
		t.Fatal("page 1 should not be mounted yet")
	}

	r.PressTrigger(1)
	p1, ok := pages[1]
	if !ok {
		t.Fatal("page 1 should mount on selection")
	}
	if p1.offset != 60 {
		t.Errorf("late-mounted page offset: got %v, want 60", p1.offset)
	}
	if got := r.PageOffset(1); got != 60 {
		t.Errorf("recorded offset: got %v, want 60", got)
	}
	if got := r.TranslateY().Get(); got != -60 {
		t.Errorf("header flashed: translateY %v", got)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: false})

	drag(pages[0], 60)
	before := len(pages[2].calls)
	offset := r.PageOffset(2)

	// Settle again with the same header offset.
	pages[0].binding.BeginDrag()
	pages[0].binding.EndDrag()

	if len(pages[2].calls) != before {
		t.Errorf("second sync issued commands: %v", pages[2].calls)
	}
	if r.PageOffset(2) != offset {
		t.Errorf("offset changed from %v to %v", offset, r.PageOffset(2))
	}
}

func TestSwitchBackDoesNotDrift(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: false})

	drag(pages[0], 30)
	r.PressTrigger(1)
	r.PressTrigger(0)

	if got := r.PageOffset(0); got != 30 {
		t.Errorf("page 0 drifted to %v", got)
	}
	if len(pages[0].calls) != 0 {
		t.Errorf("page 0 was scrolled programmatically: %v", pages[0].calls)
	}
}

func TestDeepPageUntouchedWhenHeaderCollapsed(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: false})

	r.PressTrigger(1)
	drag(pages[1], 500)
	r.PressTrigger(0)
	pages[1].calls = nil

	drag(pages[0], 300)
	if got := r.TranslateY().Get(); got != -100 {
		t.Fatalf("translateY: got %v, want -100", got)
	}
	if len(pages[1].calls) != 0 {
		t.Errorf("page already past the header was moved: %v", pages[1].calls)
	}
	if got := r.PageOffset(1); got != 500 {
		t.Errorf("page 1 offset: got %v, want 500", got)
	}
	// Page 2 only ever saw header offsets short of its position.
	if got := r.PageOffset(2); got != 100 {
		t.Errorf("page 2 offset: got %v, want 100", got)
	}
}

func TestInactiveScrollEventsIgnored(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: false})

	drag(pages[0], 40)
	pages[2].binding.OnScroll(90)

	if got := r.TranslateY().Get(); got != -40 {
		t.Errorf("inactive page changed header: %v", got)
	}
	if got := r.PageOffset(2); got != 40 {
		t.Errorf("inactive page recorded its own event: %v", got)
	}
}

func TestInteractionSuppressesSync(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: false})

	pages[0].binding.BeginDrag()
	pages[0].binding.OnScroll(50)
	if r.SyncRequested() {
		t.Fatal("sync requested mid-drag")
	}
	if len(pages[1].calls) != 0 {
		t.Errorf("page 1 moved mid-drag: %v", pages[1].calls)
	}

	// An inactive page settling does not request sync.
	pages[1].binding.EndDrag()
	if r.SyncRequested() {
		t.Error("inactive page settle requested sync")
	}

	pages[0].binding.EndMomentum()
	if !r.SyncRequested() {
		t.Error("active page settle should request sync")
	}
	if len(pages[1].calls) != 1 {
		t.Errorf("page 1 commands after settle: %v", pages[1].calls)
	}

	pages[0].binding.BeginMomentum()
	if r.SyncRequested() || r.PageState(1) != PageIdle {
		t.Errorf("new interaction should clear sync, page1=%s", r.PageState(1))
	}
}

func TestSelectionCancelsSyncing(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: false})

	drag(pages[0], 60)
	if _, ok := r.reconciler.Target(2); !ok {
		t.Fatal("page 2 should be syncing")
	}
	r.PressTrigger(2)
	if _, ok := r.reconciler.Target(2); ok {
		t.Error("pending target should be dropped on activation")
	}
	if r.PageState(2) != PageActive {
		t.Errorf("page 2 state: %s", r.PageState(2))
	}
	if r.SyncRequested() {
		t.Error("index change should clear sync request")
	}
}

func TestContentInsetScenario(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: false, Inset: InsetContent})

	// Attach put every page at -(header+strip).
	if got := r.PageOffset(1); got != -140 {
		t.Fatalf("initial offset: got %v, want -140", got)
	}

	drag(pages[0], -80)
	if got := r.TranslateY().Get(); got != -60 {
		t.Fatalf("translateY: got %v, want -60", got)
	}
	if got := r.PageOffset(1); got != -80 {
		t.Errorf("page 1 offset: got %v, want -80", got)
	}
}

func TestTabStripCentersTrigger(t *testing.T) {
	r, _ := newTestRoot(t, Options{Lazy: true})
	var scrolled []float64
	r.SetStripScroller(ScrollerFunc(func(x float64, animated bool) {
		if !animated {
			t.Error("strip scroll should be animated")
		}
		scrolled = append(scrolled, x)
	}))
	r.OnStripLayout(320)
	r.OnTriggerLayout(0, Rect{X: 0, Width: 100})
	r.OnTriggerLayout(2, Rect{X: 300, Width: 80})

	r.PressTrigger(2)
	target, ok := r.StripTarget()
	if !ok || target != 180 {
		t.Errorf("strip target: got %v (%v), want 180", target, ok)
	}
	if len(scrolled) != 1 || scrolled[0] != 180 {
		t.Errorf("strip scroll commands: %v", scrolled)
	}

	// Trigger 1 has no layout yet: skipped silently.
	r.PressTrigger(1)
	if len(scrolled) != 1 {
		t.Errorf("unmeasured trigger scrolled the strip: %v", scrolled)
	}
}

func TestTabStripFirstTransitionDoesNothing(t *testing.T) {
	c := NewTabStripController()
	calls := 0
	c.SetScroller(ScrollerFunc(func(float64, bool) { calls++ }))
	c.OnStripLayout(320)
	c.OnTriggerLayout(1, Rect{X: 200, Width: 60})

	c.OnIndexChange(1)
	if calls != 0 {
		t.Error("first transition should not scroll")
	}
	c.OnIndexChange(1)
	if calls != 1 {
		t.Errorf("expected a scroll on the second transition, got %d", calls)
	}
	if target, _ := c.Target(); target != 70 {
		t.Errorf("target: got %v, want 70", target)
	}
}

func TestTriggerPressMidSwipe(t *testing.T) {
	var changes []int
	r, _ := newTestRoot(t, Options{Lazy: true, OnIndexChange: func(i int) { changes = append(changes, i) }})
	pager := &fakePager{}
	r.SetPager(pager)
	r.OnStripLayout(320)
	r.OnTriggerLayout(2, Rect{X: 300, Width: 80})

	// Swipe halfway toward page 1.
	r.OnPagerScroll(0.5, 0)
	r.PressTrigger(2)

	if r.Selected() != 2 {
		t.Errorf("selected: got %d, want 2", r.Selected())
	}
	if !r.IsMounted(2) || r.IsMounted(1) {
		t.Errorf("mounted set: %v", r.Mounted())
	}
	if target, _ := r.StripTarget(); target != 180 {
		t.Errorf("strip target: %v", target)
	}
	if len(pager.pages) != 1 || pager.pages[0] != 2 {
		t.Errorf("pager commands: %v", pager.pages)
	}

	// Pager animation completes later.
	r.OnPageSelected(2)
	if len(changes) != 1 || changes[0] != 2 {
		t.Errorf("index change callbacks: %v", changes)
	}
}

func TestSetIndexWithoutPager(t *testing.T) {
	r, _ := newTestRoot(t, Options{Lazy: true})
	r.SetIndex(2)
	if r.Selected() != 2 || !r.IsMounted(2) {
		t.Errorf("controlled index not applied: selected=%d mounted=%v", r.Selected(), r.Mounted())
	}
	r.SetIndex(5)
	if r.Selected() != 2 {
		t.Error("out-of-range index should be ignored")
	}
}

func TestFocus(t *testing.T) {
	r, _ := newTestRoot(t, Options{Lazy: true})

	var events []bool
	r.WatchFocus(1, func(f bool) { events = append(events, f) })

	if !r.IsTabFocused(0) || r.IsTabFocused(1) {
		t.Fatal("page 0 should start focused")
	}
	r.PressTrigger(1)
	r.SetScreenFocused(false)
	if r.IsTabFocused(1) {
		t.Error("page unfocused when screen loses focus")
	}
	r.SetScreenFocused(true)
	r.PressTrigger(2)

	want := []bool{true, false, true, false}
	if len(events) != len(want) {
		t.Fatalf("focus events: got %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: got %v, want %v", i, events[i], want[i])
		}
	}
	if r.IsTabFocused(7) {
		t.Error("unknown page should not be focused")
	}
}

func TestMisuseIsInert(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: true})

	b := r.Bind(1, &fakeScrollable{})
	b.BeginDrag()
	b.OnScroll(80)
	if r.SyncRequested() || r.TranslateY().Get() != 0 {
		t.Error("binding for unmounted page should be inert")
	}

	r.PressTrigger(-1)
	r.PressTrigger(3)
	if r.Selected() != 0 {
		t.Errorf("invalid trigger changed selection to %d", r.Selected())
	}

	r.Close()
	pages[0].binding.OnScroll(70)
	if r.TranslateY().Get() != 0 {
		t.Error("binding should be inert after Close")
	}
}

func TestReadyWaitsForMeasurement(t *testing.T) {
	r, err := NewRoot(threePages(), Options{HasHeader: true, HasTabList: true, Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	if r.Ready() {
		t.Error("ready before measurement")
	}
	r.MeasureHeader(6)
	if r.Ready() {
		t.Error("ready without tab list height")
	}
	r.MeasureTabList(2)
	if !r.Ready() {
		t.Error("should be ready")
	}

	r2, _ := NewRoot(threePages(), Options{HasTabList: true, TabListHeight: 2, Logger: quietLogger()})
	if !r2.Ready() {
		t.Error("no header slot and a preset tab list height should be ready")
	}
}

func TestScrollToTop(t *testing.T) {
	r, pages := newTestRoot(t, Options{Lazy: false})
	drag(pages[0], 80)
	r.ScrollToTop()
	if pages[0].offset != 0 {
		t.Errorf("active page offset: %v", pages[0].offset)
	}
	if got := r.TranslateY().Get(); got != 0 {
		t.Errorf("header should expand, translateY %v", got)
	}
}

func TestValueSubscribeCancel(t *testing.T) {
	v := NewValue(1)
	n := 0
	cancel := v.Subscribe(func(_, _ int) { n++ })
	v.Set(2)
	v.Set(2)
	cancel()
	v.Set(3)
	if n != 1 {
		t.Errorf("expected 1 notification, got %d", n)
	}
	if v.Subscribers() != 0 {
		t.Errorf("subscriber not removed")
	}
}
