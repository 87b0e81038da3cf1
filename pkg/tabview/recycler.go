package tabview

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/tabsync/internal/tabs"
)

// LoadFunc fetches up to limit items starting at offset.
type LoadFunc[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// RowsMsg carries a page of items loaded for a RecyclerList.
type RowsMsg[T any] struct {
	ListID string
	Epoch  int
	Offset int
	Items  []T
	Done   bool
	Err    error
}

// RecyclerConfig configures a RecyclerList.
type RecyclerConfig[T any] struct {
	// ID routes RowsMsg to this list.
	ID     string
	Render func(item T, width int) string
	// ItemHeight is the fixed row count of every item.
	ItemHeight int
	Load       LoadFunc[T]
	PageSize   int
	// EndThreshold is how close to the end, in visible heights, scrolling
	// must come before the next page loads.
	EndThreshold float64
}

// RecyclerList is a list of fixed-height items that only renders the rows
// in view, loading more items as the end comes into reach.
type RecyclerList[T any] struct {
	scrollBody
	cfg     RecyclerConfig[T]
	items   []T
	loading bool
	done    bool
	err     error
	filling bool
	epoch   int
}

// NewRecyclerList returns an empty list that loads its first page on mount.
func NewRecyclerList[T any](cfg RecyclerConfig[T]) *RecyclerList[T] {
	if cfg.ItemHeight <= 0 {
		cfg.ItemHeight = 1
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 30
	}
	if cfg.EndThreshold <= 0 {
		cfg.EndThreshold = 0.5
	}
	r := &RecyclerList[T]{scrollBody: newScrollBody(), cfg: cfg}
	r.afterScroll = r.fill
	return r
}

// Len returns the number of loaded items.
func (r *RecyclerList[T]) Len() int {
	return len(r.items)
}

// Loading reports whether a page is in flight.
func (r *RecyclerList[T]) Loading() bool {
	return r.loading
}

// Done reports whether the source ran out of items.
func (r *RecyclerList[T]) Done() bool {
	return r.done
}

// Mount binds the list and starts the first load.
func (r *RecyclerList[T]) Mount(b *tabs.PageBinding) tea.Cmd {
	r.scrollBody.Mount(b)
	return r.maybeLoad()
}

// SetSize resizes the list.
func (r *RecyclerList[T]) SetSize(width, height int) {
	r.width, r.height = width, height
	r.resize()
	r.fill()
}

// ScrollBy scrolls and loads more when near the end.
func (r *RecyclerList[T]) ScrollBy(lines int) tea.Cmd {
	r.scrollBody.ScrollBy(lines)
	return r.maybeLoad()
}

// GotoBottom scrolls to the last loaded item and loads more.
func (r *RecyclerList[T]) GotoBottom() tea.Cmd {
	r.scrollBody.GotoBottom()
	return r.maybeLoad()
}

// Reset drops the loaded items and starts over from the first page.
func (r *RecyclerList[T]) Reset() tea.Cmd {
	r.epoch++
	r.items = nil
	r.done = false
	r.err = nil
	r.loading = false
	r.fill()
	return r.maybeLoad()
}

// Update appends loaded rows addressed to this list.
func (r *RecyclerList[T]) Update(msg tea.Msg) tea.Cmd {
	rows, ok := msg.(RowsMsg[T])
	if !ok || rows.ListID != r.cfg.ID {
		return nil
	}
	// A reset while loading makes the reply stale.
	if rows.Epoch != r.epoch || rows.Offset != len(r.items) {
		return nil
	}
	r.loading = false
	if rows.Err != nil {
		r.err = rows.Err
		r.fill()
		return nil
	}
	r.items = append(r.items, rows.Items...)
	r.done = rows.Done
	r.fill()
	return r.maybeLoad()
}

// maybeLoad starts the next page when the visible end is within the
// threshold of the loaded end.
func (r *RecyclerList[T]) maybeLoad() tea.Cmd {
	if r.loading || r.done || r.err != nil || r.cfg.Load == nil || r.binding == nil {
		return nil
	}
	remaining := float64(len(r.lines) - (r.vp.YOffset + r.vp.Height - r.topRows()))
	if len(r.items) > 0 && remaining > r.cfg.EndThreshold*float64(r.vp.Height) {
		return nil
	}
	r.loading = true
	r.fill()

	id, epoch, offset, limit, load := r.cfg.ID, r.epoch, len(r.items), r.cfg.PageSize, r.cfg.Load
	return func() tea.Msg {
		items, err := load(context.Background(), offset, limit)
		return RowsMsg[T]{ListID: id, Epoch: epoch, Offset: offset, Items: items, Done: err == nil && len(items) < limit, Err: err}
	}
}

// fill renders only the items overlapping the viewport; the rest of the
// rows stay blank so the content height is still right.
func (r *RecyclerList[T]) fill() {
	if r.filling {
		return
	}
	r.filling = true
	defer func() { r.filling = false }()

	ih := r.cfg.ItemHeight
	rows := len(r.items) * ih
	lines := make([]string, rows, rows+1)

	top := r.topRows()
	first := max(0, (r.vp.YOffset-top)/ih)
	last := min(len(r.items), int(math.Ceil(float64(r.vp.YOffset-top+r.vp.Height)/float64(ih)))+1)
	for i := first; i < last; i++ {
		var text string
		if r.cfg.Render != nil {
			text = r.cfg.Render(r.items[i], r.width)
		} else {
			text = fmt.Sprint(r.items[i])
		}
		item := strings.Split(text, "\n")
		for j := 0; j < ih; j++ {
			if j < len(item) {
				lines[i*ih+j] = ansi.Truncate(item[j], r.width, "…")
			}
		}
	}

	switch {
	case r.err != nil:
		lines = append(lines, errorStyle.Render("  load failed: "+r.err.Error()))
	case r.loading:
		lines = append(lines, subtleStyle.Render("  loading…"))
	case r.done && len(r.items) == 0:
		lines = append(lines, subtleStyle.Render("  nothing here yet"))
	}
	r.setLines(lines)
}
