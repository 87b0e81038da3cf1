package keymap

import (
	"fmt"
	"sort"
	"strings"
)

// HelpSection represents a group of bindings in help text
type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

// HelpBinding represents a single binding for display
type HelpBinding struct {
	Keys        string // Combined keys like "j / k" or "↑ / ↓"
	Description string
}

// helpSections lists the commands shown per help section, in display order
var helpSections = []struct {
	title    string
	context  Context
	commands []Command
}{
	{"SCROLLING", ContextTabs, []Command{
		CmdScrollDown, CmdScrollUp, CmdHalfPageDown, CmdHalfPageUp,
		CmdFullPageDown, CmdFullPageUp, CmdScrollTop, CmdScrollBottom, CmdScrollToTop,
	}},
	{"TABS", ContextTabs, []Command{
		CmdSwipeNext, CmdSwipePrev, CmdNextTab, CmdPrevTab,
	}},
	{"PAGE INPUT", ContextInput, []Command{
		CmdFocusInput, CmdInputSubmit, CmdInputCancel,
	}},
	{"GENERAL", ContextTabs, []Command{
		CmdToggleHelp, CmdQuit,
	}},
}

// Sections builds the help sections from the registry's current bindings, so
// user overrides show up in help.
func (r *Registry) Sections() []HelpSection {
	tabKeys := r.BindingsByCommand(ContextTabs)
	inputKeys := r.BindingsByCommand(ContextInput)

	var out []HelpSection
	for _, sec := range helpSections {
		keys := tabKeys
		if sec.context == ContextInput {
			keys = inputKeys
		}
		hs := HelpSection{Title: sec.title}
		for _, cmd := range sec.commands {
			k := keys[cmd]
			if cmd == CmdFocusInput {
				k = tabKeys[cmd]
			}
			if len(k) == 0 {
				continue
			}
			hs.Bindings = append(hs.Bindings, HelpBinding{Keys: strings.Join(k, " / "), Description: CommandHelp(cmd)})
		}
		if sec.title == "TABS" {
			if len(tabKeys[CmdTab1]) > 0 {
				hs.Bindings = append(hs.Bindings, HelpBinding{Keys: "1 … 9", Description: "Jump to tab"})
			}
		}
		if len(hs.Bindings) > 0 {
			out = append(out, hs)
		}
	}
	return out
}

// GenerateHelp generates help text from the registry bindings
func (r *Registry) GenerateHelp() string {
	var sb strings.Builder
	sb.WriteString("\nTAB VIEW - Key Bindings\n")

	for _, sec := range r.Sections() {
		sb.WriteString("\n" + sec.Title + ":\n")
		for _, b := range sec.Bindings {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", b.Keys, b.Description))
		}
	}

	sb.WriteString("\nPress ? to close help\n")
	return sb.String()
}

// FooterHelp generates a compact help string for the footer
func (r *Registry) FooterHelp() string {
	return "j/k:scroll  h/l:swipe  tab:next  1-9:jump  t:top  /:input  ?:help  q:quit"
}

// InputFooterHelp generates help text while a page input has focus
func (r *Registry) InputFooterHelp() string {
	return "enter:apply  esc:leave input"
}

// CommandHelp returns help info for a specific command
func CommandHelp(cmd Command) string {
	switch cmd {
	case CmdQuit:
		return "Quit"
	case CmdToggleHelp:
		return "Show/hide keyboard shortcuts"
	case CmdScrollDown:
		return "Scroll active page down one line"
	case CmdScrollUp:
		return "Scroll active page up one line"
	case CmdHalfPageDown:
		return "Scroll down half a page"
	case CmdHalfPageUp:
		return "Scroll up half a page"
	case CmdFullPageDown:
		return "Scroll down a full page"
	case CmdFullPageUp:
		return "Scroll up a full page"
	case CmdScrollTop:
		return "Jump to top of page"
	case CmdScrollBottom:
		return "Jump to bottom of page"
	case CmdScrollToTop:
		return "Reset page and tab strip to the start"
	case CmdSwipeNext:
		return "Swipe to next page"
	case CmdSwipePrev:
		return "Swipe to previous page"
	case CmdNextTab:
		return "Select next tab"
	case CmdPrevTab:
		return "Select previous tab"
	case CmdFocusInput:
		return "Focus the page's input"
	case CmdInputSubmit:
		return "Apply input"
	case CmdInputCancel:
		return "Leave input"
	case CmdClose:
		return "Close overlay"
	default:
		if n, ok := TabNumber(cmd); ok {
			return fmt.Sprintf("Jump to tab %d", n)
		}
		return string(cmd)
	}
}

// BindingsByCommand groups bindings by command for help generation
func (r *Registry) BindingsByCommand(context Context) map[Command][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[Command][]string)

	// Add bindings for this context
	for _, b := range r.bindings[context] {
		result[b.Command] = append(result[b.Command], formatKey(b.Key))
	}

	// Add global bindings
	if context != ContextGlobal {
		for _, b := range r.bindings[ContextGlobal] {
			// Don't add if already defined in context
			if _, exists := result[b.Command]; !exists {
				result[b.Command] = append(result[b.Command], formatKey(b.Key))
			}
		}
	}

	// User overrides, in key order so help output is stable
	overrides := make([]string, 0, len(r.userOverrides))
	for k := range r.userOverrides {
		overrides = append(overrides, k)
	}
	sort.Strings(overrides)
	for _, k := range overrides {
		ctx, key := parseBinding(k)
		if ctx != context && ctx != ContextGlobal {
			continue
		}
		cmd := r.userOverrides[k]
		shown := formatKey(key)
		if !containsKey(result[cmd], shown) {
			result[cmd] = append(result[cmd], shown)
		}
	}

	return result
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// MarkdownReference renders the help sections as markdown tables, one per
// section, for the about page and `tabsync keys`.
func (r *Registry) MarkdownReference() string {
	var b strings.Builder
	for i, sec := range r.Sections() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n| Keys | Action |\n| --- | --- |\n", strings.ToLower(sec.Title))
		for _, hb := range sec.Bindings {
			fmt.Fprintf(&b, "| `%s` | %s |\n", hb.Keys, hb.Description)
		}
	}
	return b.String()
}

// keyNames maps key names to their display form
var keyNames = map[string]string{
	"up":        "↑",
	"down":      "↓",
	"left":      "←",
	"right":     "→",
	"enter":     "Enter",
	"esc":       "Esc",
	"tab":       "Tab",
	"shift+tab": "Shift+Tab",
	"space":     "Space",
	"backspace": "Backspace",
	"pgup":      "PgUp",
	"pgdown":    "PgDn",
	"home":      "Home",
	"end":       "End",
}

// formatKey formats a key string for display
func formatKey(key string) string {
	parts := strings.Fields(key)
	for i, p := range parts {
		if name, ok := keyNames[p]; ok {
			parts[i] = name
			continue
		}
		if rest, ok := strings.CutPrefix(p, "ctrl+"); ok {
			if name, ok := keyNames[rest]; ok {
				rest = name
			}
			parts[i] = "Ctrl+" + rest
		}
	}
	return strings.Join(parts, " ")
}

// AllCommands returns all defined commands sorted alphabetically
func AllCommands() []Command {
	cmds := []Command{
		CmdQuit, CmdToggleHelp,
		CmdScrollDown, CmdScrollUp, CmdHalfPageDown, CmdHalfPageUp,
		CmdFullPageDown, CmdFullPageUp, CmdScrollTop, CmdScrollBottom, CmdScrollToTop,
		CmdSwipeNext, CmdSwipePrev, CmdNextTab, CmdPrevTab,
		CmdTab1, CmdTab2, CmdTab3, CmdTab4, CmdTab5, CmdTab6, CmdTab7, CmdTab8, CmdTab9,
		CmdFocusInput, CmdInputSubmit, CmdInputCancel, CmdClose,
	}

	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i] < cmds[j]
	})

	return cmds
}
