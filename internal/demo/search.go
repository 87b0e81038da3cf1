package demo

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tabsync/internal/feed"
	"github.com/marcus/tabsync/internal/tabs"
	"github.com/marcus/tabsync/pkg/tabview"
)

// searchLimit caps how much recent activity the search page filters
const searchLimit = 500

type searchLoadedMsg struct {
	items []feed.Activity
	err   error
}

// searchPage fuzzy-filters recent activity. Its input avoids the keyboard
// area while focused.
type searchPage struct {
	*tabview.FlatList[feed.Activity]
	src    Source
	logger *slog.Logger
}

func newSearchPage(opts Options) *searchPage {
	p := &searchPage{src: opts.Source, logger: opts.Logger}
	p.FlatList = tabview.NewFlatList(nil, tabview.FlatListConfig[feed.Activity]{
		Render:      renderActivity,
		FilterText:  feed.Activity.String,
		Placeholder: "press / to filter activity",
		OnSubmit: func(query string) tea.Cmd {
			p.logger.Debug("search applied", "query", query, "matches", len(p.Items()))
			return nil
		},
	})
	return p
}

// Mount binds the list and loads the items to search.
func (p *searchPage) Mount(b *tabs.PageBinding) tea.Cmd {
	return tea.Batch(p.FlatList.Mount(b), p.load())
}

func (p *searchPage) load() tea.Cmd {
	src := p.src
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		items, err := src.List(ctx, 0, searchLimit)
		return searchLoadedMsg{items: items, err: err}
	}
}

func (p *searchPage) Update(msg tea.Msg) tea.Cmd {
	if loaded, ok := msg.(searchLoadedMsg); ok {
		if loaded.err != nil {
			p.logger.Error("load search items", "err", loaded.err)
			return nil
		}
		p.SetItems(loaded.items)
		return nil
	}
	return p.FlatList.Update(msg)
}
