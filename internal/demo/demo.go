// Package demo builds the pages of the tabsync demo over the activity feed.
package demo

import (
	"context"
	"log/slog"
	"time"

	"github.com/marcus/tabsync/internal/feed"
	"github.com/marcus/tabsync/internal/tabs"
	"github.com/marcus/tabsync/pkg/tabview"
	"github.com/marcus/tabsync/pkg/tabview/keymap"
)

// DefaultHeader is the collapsible header shown above the tabs.
const DefaultHeader = `# tabsync
Recent activity across the collection. Scroll any tab to fold this header away; the other tabs follow.`

const (
	defaultPollInterval = 2 * time.Second
	loadTimeout         = 5 * time.Second
	searchKeyboardRows  = 3
)

// Source is the activity the pages read.
type Source interface {
	List(ctx context.Context, offset, limit int) ([]feed.Activity, error)
	ListByVerb(ctx context.Context, verb string, offset, limit int) ([]feed.Activity, error)
	Count(ctx context.Context) (int, error)
}

// Options configures the demo pages.
type Options struct {
	Source   Source
	PageSize int
	Keymap   *keymap.Registry
	Logger   *slog.Logger
	// PollInterval is how often the live page refreshes while it has focus
	PollInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.Keymap == nil {
		o.Keymap = keymap.NewRegistry()
		keymap.RegisterDefaults(o.Keymap)
	}
	return o
}

// Tabs returns the demo's page slots in display order.
func Tabs(opts Options) []tabview.Tab {
	opts = opts.withDefaults()
	return []tabview.Tab{
		{
			PageSpec: tabs.PageSpec{Title: "Activity"},
			New:      func() tabview.Page { return newActivityList("activity", "", opts) },
		},
		{
			PageSpec: tabs.PageSpec{Title: "Mints"},
			New:      func() tabview.Page { return newActivityList("mints", "minted", opts) },
		},
		{
			PageSpec: tabs.PageSpec{Title: "Follows"},
			New:      func() tabview.Page { return newActivityList("follows", "followed", opts) },
		},
		{
			PageSpec: tabs.PageSpec{Title: "Search", KeyboardAvoiding: true, KeyboardOffset: searchKeyboardRows},
			New:      func() tabview.Page { return newSearchPage(opts) },
		},
		{
			PageSpec: tabs.PageSpec{Title: "Live"},
			New:      func() tabview.Page { return newLivePage(opts) },
		},
		{
			PageSpec: tabs.PageSpec{Title: "About"},
			New:      func() tabview.Page { return tabview.NewMarkdownView(aboutMarkdown(opts.Keymap)) },
		},
	}
}
