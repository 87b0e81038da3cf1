package keymap

// DefaultBindings returns the default key bindings for the tab view.
// Bindings are organized by context and follow vim conventions where applicable.
func DefaultBindings() []Binding {
	return []Binding{
		// ============================================================
		// GLOBAL BINDINGS
		// These work in all contexts unless overridden
		// ============================================================
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "?", Command: CmdToggleHelp, Context: ContextGlobal, Description: "Toggle help"},

		// ============================================================
		// TAB BINDINGS
		// Active when no page input has focus
		// ============================================================
		{Key: "q", Command: CmdQuit, Context: ContextTabs, Description: "Quit"},

		// Scrolling the active page
		{Key: "j", Command: CmdScrollDown, Context: ContextTabs, Description: "Scroll down"},
		{Key: "down", Command: CmdScrollDown, Context: ContextTabs, Description: "Scroll down"},
		{Key: "k", Command: CmdScrollUp, Context: ContextTabs, Description: "Scroll up"},
		{Key: "up", Command: CmdScrollUp, Context: ContextTabs, Description: "Scroll up"},
		{Key: "ctrl+d", Command: CmdHalfPageDown, Context: ContextTabs, Description: "Half page down"},
		{Key: "ctrl+u", Command: CmdHalfPageUp, Context: ContextTabs, Description: "Half page up"},
		{Key: "ctrl+f", Command: CmdFullPageDown, Context: ContextTabs, Description: "Full page down"},
		{Key: "ctrl+b", Command: CmdFullPageUp, Context: ContextTabs, Description: "Full page up"},
		{Key: "pgdown", Command: CmdFullPageDown, Context: ContextTabs, Description: "Page down"},
		{Key: "pgup", Command: CmdFullPageUp, Context: ContextTabs, Description: "Page up"},
		{Key: "G", Command: CmdScrollBottom, Context: ContextTabs, Description: "Go to bottom"},
		{Key: "g g", Command: CmdScrollTop, Context: ContextTabs, Description: "Go to top"},
		{Key: "home", Command: CmdScrollTop, Context: ContextTabs, Description: "Go to top"},
		{Key: "end", Command: CmdScrollBottom, Context: ContextTabs, Description: "Go to bottom"},
		{Key: "t", Command: CmdScrollToTop, Context: ContextTabs, Description: "Scroll page and tabs to top"},

		// Pager swipes
		{Key: "l", Command: CmdSwipeNext, Context: ContextTabs, Description: "Swipe to next page"},
		{Key: "right", Command: CmdSwipeNext, Context: ContextTabs, Description: "Swipe to next page"},
		{Key: "h", Command: CmdSwipePrev, Context: ContextTabs, Description: "Swipe to previous page"},
		{Key: "left", Command: CmdSwipePrev, Context: ContextTabs, Description: "Swipe to previous page"},

		// Trigger presses
		{Key: "tab", Command: CmdNextTab, Context: ContextTabs, Description: "Next tab"},
		{Key: "shift+tab", Command: CmdPrevTab, Context: ContextTabs, Description: "Previous tab"},
		{Key: "1", Command: CmdTab1, Context: ContextTabs, Description: "Tab 1"},
		{Key: "2", Command: CmdTab2, Context: ContextTabs, Description: "Tab 2"},
		{Key: "3", Command: CmdTab3, Context: ContextTabs, Description: "Tab 3"},
		{Key: "4", Command: CmdTab4, Context: ContextTabs, Description: "Tab 4"},
		{Key: "5", Command: CmdTab5, Context: ContextTabs, Description: "Tab 5"},
		{Key: "6", Command: CmdTab6, Context: ContextTabs, Description: "Tab 6"},
		{Key: "7", Command: CmdTab7, Context: ContextTabs, Description: "Tab 7"},
		{Key: "8", Command: CmdTab8, Context: ContextTabs, Description: "Tab 8"},
		{Key: "9", Command: CmdTab9, Context: ContextTabs, Description: "Tab 9"},

		{Key: "/", Command: CmdFocusInput, Context: ContextTabs, Description: "Focus page input"},

		// ============================================================
		// INPUT BINDINGS
		// Active while a page's text input has focus; other keys go to
		// the input
		// ============================================================
		{Key: "enter", Command: CmdInputSubmit, Context: ContextInput, Description: "Apply"},
		{Key: "esc", Command: CmdInputCancel, Context: ContextInput, Description: "Leave input"},

		// ============================================================
		// HELP BINDINGS
		// ============================================================
		{Key: "esc", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "q", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "j", Command: CmdScrollDown, Context: ContextHelp, Description: "Scroll down"},
		{Key: "down", Command: CmdScrollDown, Context: ContextHelp, Description: "Scroll down"},
		{Key: "k", Command: CmdScrollUp, Context: ContextHelp, Description: "Scroll up"},
		{Key: "up", Command: CmdScrollUp, Context: ContextHelp, Description: "Scroll up"},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
}
