package tabs

// FocusTracker answers "is page i visible to the user right now": page i is
// selected and the screen hosting the tab root is itself focused.
type FocusTracker struct {
	index  Readable[int]
	screen *Value[bool]
}

// NewFocusTracker creates a tracker. screenFocused is the initial answer of
// the navigation focus provider.
func NewFocusTracker(index Readable[int], screenFocused bool) *FocusTracker {
	return &FocusTracker{index: index, screen: NewValue(screenFocused)}
}

// SetScreenFocused is called by the navigation focus provider.
func (f *FocusTracker) SetScreenFocused(focused bool) {
	f.screen.Set(focused)
}

// ScreenFocused reports the navigation focus.
func (f *FocusTracker) ScreenFocused() bool {
	return f.screen.Get()
}

// IsTabFocused reports whether page is focused.
func (f *FocusTracker) IsTabFocused(page int) bool {
	return f.screen.Get() && f.index.Get() == page
}

// Watch calls fn with page's focus every time it changes. fn is not called
// for the current state. The returned function stops the watch.
func (f *FocusTracker) Watch(page int, fn func(focused bool)) func() {
	last := f.IsTabFocused(page)
	check := func() {
		now := f.IsTabFocused(page)
		if now != last {
			last = now
			fn(now)
		}
	}
	stopIndex := f.index.Subscribe(func(_, _ int) { check() })
	stopScreen := f.screen.Subscribe(func(_, _ bool) { check() })
	return func() {
		stopIndex()
		stopScreen()
	}
}
