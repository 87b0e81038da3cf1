package demo

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/tabsync/internal/feed"
	"github.com/marcus/tabsync/internal/output"
	"github.com/marcus/tabsync/pkg/tabview"
)

var (
	actorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	objectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// activityRows is the height of one rendered activity
const activityRows = 2

// renderActivity draws an activity as a sentence over its age.
func renderActivity(a feed.Activity, width int) string {
	parts := []string{" " + actorStyle.Render(a.Actor), a.Verb}
	if a.Object != "" {
		parts = append(parts, objectStyle.Render(a.Object))
	}
	return strings.Join(parts, " ") + "\n" + timeStyle.Render("   "+output.FormatTimeAgo(a.CreatedAt))
}

// feedLoader pages through all activity, or one verb of it.
func feedLoader(src Source, verb string) tabview.LoadFunc[feed.Activity] {
	return func(ctx context.Context, offset, limit int) ([]feed.Activity, error) {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		if verb == "" {
			return src.List(ctx, offset, limit)
		}
		return src.ListByVerb(ctx, verb, offset, limit)
	}
}

func newActivityList(id, verb string, opts Options) *tabview.RecyclerList[feed.Activity] {
	return tabview.NewRecyclerList(tabview.RecyclerConfig[feed.Activity]{
		ID:         id,
		Render:     renderActivity,
		ItemHeight: activityRows,
		Load:       feedLoader(opts.Source, verb),
		PageSize:   opts.PageSize,
	})
}
