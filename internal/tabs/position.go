package tabs

import "math"

// DragPhase is the pager's gesture phase
type DragPhase int

const (
	PhaseIdle     DragPhase = iota // No swipe in progress
	PhaseDragging                  // User is swiping between pages
	PhaseSettling                  // Swipe released, pager animating to rest
)

// String returns the display name for a phase
func (p DragPhase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	default:
		return "idle"
	}
}

// SelectionState is the continuously updating pager position.
// Position is the page the pager is currently leaving or resting on and
// FractionalOffset is how far it has moved toward Position+1.
type SelectionState struct {
	SelectedIndex    int
	Position         int
	FractionalOffset float64
	Phase            DragPhase
}

// PositionStore holds SelectionState. The pager is its only writer.
type PositionStore struct {
	pageCount int
	state     *Value[SelectionState]
	index     *Value[int]
}

// NewPositionStore creates a store for pageCount pages starting at initial.
func NewPositionStore(pageCount, initial int) *PositionStore {
	s := &PositionStore{pageCount: pageCount}
	initial = s.clampIndex(initial)
	s.state = NewValue(SelectionState{SelectedIndex: initial, Position: initial})
	s.index = NewValue(initial)
	return s
}

// State exposes the full selection state to readers.
func (s *PositionStore) State() Readable[SelectionState] {
	return s.state
}

// Index exposes only the committed selected index. Subscribers fire once per
// committed change, not on every swipe frame.
func (s *PositionStore) Index() Readable[int] {
	return s.index
}

// Selected returns the committed selected index.
func (s *PositionStore) Selected() int {
	return s.index.Get()
}

// PageCount returns the number of pages.
func (s *PositionStore) PageCount() int {
	return s.pageCount
}

// OnPagerScroll records an in-flight swipe frame.
func (s *PositionStore) OnPagerScroll(offset float64, position int) {
	s.recordFrame(offset, position, PhaseDragging)
}

// OnPagerAnimating records a frame of a transition nobody is dragging, such
// as the pager moving after a trigger press. It reports settling from the
// first frame.
func (s *PositionStore) OnPagerAnimating(offset float64, position int) {
	s.recordFrame(offset, position, PhaseSettling)
}

func (s *PositionStore) recordFrame(offset float64, position int, from DragPhase) {
	st := s.state.Get()
	st.Position = s.clampIndex(position)
	st.FractionalOffset = clampFraction(offset)
	if st.Phase == PhaseIdle {
		st.Phase = from
	}
	s.state.Set(st)
}

// OnPagerSettling marks that the swipe was released and the pager is
// animating to rest.
func (s *PositionStore) OnPagerSettling() {
	st := s.state.Get()
	if st.Phase == PhaseIdle {
		return
	}
	st.Phase = PhaseSettling
	s.state.Set(st)
}

// OnIndexSelected commits a selection. Index subscribers run before this
// returns.
func (s *PositionStore) OnIndexSelected(index int) {
	index = s.clampIndex(index)
	st := s.state.Get()
	st.SelectedIndex = index
	st.Position = index
	st.FractionalOffset = 0
	st.Phase = PhaseIdle
	s.state.Set(st)
	s.index.Set(index)
}

func (s *PositionStore) clampIndex(i int) int {
	if i < 0 || s.pageCount == 0 {
		return 0
	}
	if i >= s.pageCount {
		return s.pageCount - 1
	}
	return i
}

func clampFraction(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f >= 1 {
		// [0,1): a full page of travel is the next position at offset 0
		return 0.999999
	}
	return f
}
