package tabview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/tabsync/internal/tabs"
	"github.com/sahilm/fuzzy"
)

// FlatListConfig configures a FlatList.
type FlatListConfig[T any] struct {
	// Render draws one item; it may span several rows.
	Render func(item T, width int) string
	// FilterText enables the fuzzy filter input, matching on its result.
	FilterText  func(item T) string
	Placeholder string
	// OnViewableItemsChanged is called with the range of items not hidden by
	// the header block, [first, last).
	OnViewableItemsChanged func(first, last int)
	// OnSubmit is called with the query when the input is applied.
	OnSubmit func(query string) tea.Cmd
}

// FlatList renders every item of a slice, with an optional fuzzy filter.
type FlatList[T any] struct {
	scrollBody
	cfg   FlatListConfig[T]
	items []T

	// visible item indexes in display order; starts[i] is the first row of
	// the i-th visible item
	visible []int
	starts  []int

	input     textinput.Model
	capturing bool
	keyboard  int

	viewFirst, viewLast int
}

// NewFlatList returns a list page over items.
func NewFlatList[T any](items []T, cfg FlatListConfig[T]) *FlatList[T] {
	l := &FlatList[T]{scrollBody: newScrollBody(), cfg: cfg, items: items, viewFirst: -1}
	if cfg.FilterText != nil {
		l.input = textinput.New()
		l.input.Prompt = "/ "
		l.input.Placeholder = cfg.Placeholder
		l.reserve = 1
	}
	l.afterScroll = l.checkViewable
	l.refilter()
	return l
}

// SetItems replaces the items and reapplies the filter.
func (l *FlatList[T]) SetItems(items []T) {
	l.items = items
	l.refilter()
}

// Items returns the items currently shown, in display order.
func (l *FlatList[T]) Items() []T {
	out := make([]T, len(l.visible))
	for i, idx := range l.visible {
		out[i] = l.items[idx]
	}
	return out
}

// Query returns the filter text.
func (l *FlatList[T]) Query() string {
	return l.input.Value()
}

// SetSize resizes the page and re-renders items at the new width.
func (l *FlatList[T]) SetSize(width, height int) {
	l.width, l.height = width, height
	l.input.Width = max(0, width-4)
	l.relayout()
}

// Mount binds the page.
func (l *FlatList[T]) Mount(b *tabs.PageBinding) tea.Cmd {
	cmd := l.scrollBody.Mount(b)
	l.checkViewable()
	return cmd
}

// AvoidKeyboard reserves rows under the input while it has focus.
func (l *FlatList[T]) AvoidKeyboard(rows int) {
	l.keyboard = rows
	l.relayout()
}

// FocusInput gives the filter input the keyboard.
func (l *FlatList[T]) FocusInput() tea.Cmd {
	if l.cfg.FilterText == nil {
		return nil
	}
	l.capturing = true
	l.relayout()
	return l.input.Focus()
}

// BlurInput releases the keyboard, keeping the query.
func (l *FlatList[T]) BlurInput() {
	if !l.capturing {
		return
	}
	l.capturing = false
	l.input.Blur()
	l.relayout()
}

// SubmitInput applies the query and releases the keyboard.
func (l *FlatList[T]) SubmitInput() tea.Cmd {
	l.BlurInput()
	if l.cfg.OnSubmit != nil {
		return l.cfg.OnSubmit(l.input.Value())
	}
	return nil
}

// Capturing reports whether the input has the keyboard.
func (l *FlatList[T]) Capturing() bool {
	return l.capturing
}

// Update feeds keys to the focused input and refilters on change.
func (l *FlatList[T]) Update(msg tea.Msg) tea.Cmd {
	if l.cfg.FilterText == nil {
		return nil
	}
	if _, isKey := msg.(tea.KeyMsg); isKey && !l.capturing {
		return nil
	}
	before := l.input.Value()
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	if l.input.Value() != before {
		l.refilter()
	}
	return cmd
}

// View renders the list with the input and keyboard area below it.
func (l *FlatList[T]) View() string {
	if l.cfg.FilterText == nil {
		return l.vp.View()
	}
	parts := []string{l.vp.View(), ansi.Truncate(l.input.View(), l.width, "")}
	if l.capturing && l.keyboard > 0 {
		hint := fmt.Sprintf("%d of %d · enter apply · esc leave", len(l.visible), len(l.items))
		parts = append(parts, keyboardStyle.
			Width(l.width).
			Height(l.keyboard-1).
			Render(hint))
	}
	return strings.Join(parts, "\n")
}

func (l *FlatList[T]) relayout() {
	l.reserve = 0
	if l.cfg.FilterText != nil {
		l.reserve = 1
		if l.capturing && l.keyboard > 0 {
			l.reserve += l.keyboard
		}
	}
	l.vp.Width = l.width
	l.vp.Height = max(0, l.height-l.reserve)
	l.rebuild()
}

// refilter recomputes the visible items from the query. An empty query
// shows everything in order; otherwise best matches come first.
func (l *FlatList[T]) refilter() {
	q := strings.TrimSpace(l.input.Value())
	l.visible = l.visible[:0]
	if q == "" || l.cfg.FilterText == nil {
		for i := range l.items {
			l.visible = append(l.visible, i)
		}
	} else {
		texts := make([]string, len(l.items))
		for i, it := range l.items {
			texts[i] = l.cfg.FilterText(it)
		}
		for _, m := range fuzzy.Find(q, texts) {
			l.visible = append(l.visible, m.Index)
		}
	}
	l.rebuild()
}

func (l *FlatList[T]) rebuild() {
	var lines []string
	l.starts = l.starts[:0]
	for _, idx := range l.visible {
		l.starts = append(l.starts, len(lines))
		var text string
		if l.cfg.Render != nil {
			text = l.cfg.Render(l.items[idx], l.width)
		} else {
			text = fmt.Sprint(l.items[idx])
		}
		lines = append(lines, strings.Split(text, "\n")...)
	}
	if len(l.visible) == 0 && l.input.Value() != "" {
		lines = append(lines, subtleStyle.Render("  no matches"))
	}
	l.setLines(lines)
	l.checkViewable()
}

// checkViewable reports the visible item range when it changes.
func (l *FlatList[T]) checkViewable() {
	if l.cfg.OnViewableItemsChanged == nil || l.binding == nil {
		return
	}
	first, last := l.viewableItems()
	if first == l.viewFirst && last == l.viewLast {
		return
	}
	l.viewFirst, l.viewLast = first, last
	l.cfg.OnViewableItemsChanged(first, last)
}

// viewableItems maps the visible row range onto display item positions.
func (l *FlatList[T]) viewableItems() (first, last int) {
	rowFirst, rowLast := l.visibleContent()
	first, last = -1, 0
	for i, start := range l.starts {
		end := len(l.lines)
		if i+1 < len(l.starts) {
			end = l.starts[i+1]
		}
		if end <= rowFirst || start >= rowLast {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i + 1
	}
	if first < 0 {
		return 0, 0
	}
	return first, last
}
