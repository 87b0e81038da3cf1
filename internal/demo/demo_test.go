package demo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/tabsync/internal/feed"
	"github.com/marcus/tabsync/internal/tabs"
	"github.com/marcus/tabsync/pkg/tabview"
	"github.com/marcus/tabsync/pkg/tabview/keymap"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seededStore returns a store holding n seeded activities.
func seededStore(t *testing.T, n int) *feed.Store {
	t.Helper()
	s, err := feed.Open(filepath.Join(t.TempDir(), "feed.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Seed(context.Background(), n, time.Now()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	return s
}

func testOptions(src Source) Options {
	return Options{Source: src, PageSize: 10, Logger: quietLogger(), PollInterval: time.Hour}.withDefaults()
}

func binding(t *testing.T, page tabs.Scrollable) *tabs.PageBinding {
	t.Helper()
	root, err := tabs.NewRoot([]tabs.PageSpec{{Title: "only"}}, tabs.Options{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	return root.Bind(0, page)
}

// run executes cmd and any batch it expands to.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

type failingSource struct{}

func (failingSource) List(context.Context, int, int) ([]feed.Activity, error) {
	return nil, errors.New("offline")
}

func (failingSource) ListByVerb(context.Context, string, int, int) ([]feed.Activity, error) {
	return nil, errors.New("offline")
}

func (failingSource) Count(context.Context) (int, error) {
	return 0, errors.New("offline")
}

func TestTabs(t *testing.T) {
	got := Tabs(Options{})
	want := []string{"Activity", "Mints", "Follows", "Search", "Live", "About"}
	if len(got) != len(want) {
		t.Fatalf("got %d tabs", len(got))
	}
	for i, tab := range got {
		if tab.Title != want[i] {
			t.Errorf("tab %d: %q, want %q", i, tab.Title, want[i])
		}
		if tab.New == nil {
			t.Errorf("tab %q has no constructor", tab.Title)
		}
	}
	if !got[3].KeyboardAvoiding || got[3].KeyboardOffset != searchKeyboardRows {
		t.Error("search tab should avoid the keyboard")
	}
}

func TestTabsMountInModel(t *testing.T) {
	m, err := tabview.NewModel(tabview.Config{
		Tabs:   Tabs(testOptions(seededStore(t, 20))),
		Header: tabview.NewHeader(DefaultHeader),
		Lazy:   true,
		Logger: quietLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(tabview.Model)
	if m.Page(0) == nil {
		t.Fatal("activity page not mounted")
	}
	if m.Root.Geometry().HeaderHeight <= 0 {
		t.Error("header not measured")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Follows") {
		t.Error("tab strip missing from view")
	}
}

func TestActivityListFiltersByVerb(t *testing.T) {
	opts := testOptions(seededStore(t, 100))
	tests := []struct {
		name    string
		verb    string
		want    string
		notWant string
	}{
		{"all", "", "listed", ""},
		{"mints", "minted", "minted", "listed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newActivityList(tt.name, tt.verb, opts)
			p.SetSize(60, 10)
			cmd := p.Mount(binding(t, p))
			for _, msg := range run(cmd) {
				p.Update(msg)
			}
			if p.Len() != 10 {
				t.Fatalf("first page: %d rows", p.Len())
			}
			view := ansi.Strip(p.View())
			if !strings.Contains(view, tt.want) {
				t.Errorf("view missing %q:\n%s", tt.want, view)
			}
			if tt.notWant != "" && strings.Contains(view, tt.notWant) {
				t.Errorf("view has %q:\n%s", tt.notWant, view)
			}
		})
	}
}

func TestRenderActivity(t *testing.T) {
	a := feed.Activity{Actor: "ada", Verb: "minted", Object: "Lumen", CreatedAt: time.Now().Add(-2 * time.Hour)}
	lines := strings.Split(ansi.Strip(renderActivity(a, 40)), "\n")
	if len(lines) != activityRows {
		t.Fatalf("rendered %d rows", len(lines))
	}
	if strings.TrimSpace(lines[0]) != "ada minted Lumen" || strings.TrimSpace(lines[1]) != "2h ago" {
		t.Errorf("rendered %q", lines)
	}
}

func TestSearchPageFilters(t *testing.T) {
	p := newSearchPage(testOptions(seededStore(t, 100)))
	p.SetSize(60, 20)
	for _, msg := range run(p.Mount(binding(t, p))) {
		p.Update(msg)
	}
	if len(p.Items()) != 100 {
		t.Fatalf("loaded %d items", len(p.Items()))
	}

	p.FocusInput()
	for _, r := range "followed" {
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	items := p.Items()
	follows := 0
	for _, a := range items {
		if a.Verb == "followed" {
			follows++
		}
	}
	if follows != 16 || len(items) == 100 {
		t.Errorf("filtered to %d items with %d follows", len(items), follows)
	}
}

func TestSearchPageLoadError(t *testing.T) {
	p := newSearchPage(testOptions(failingSource{}))
	p.SetSize(60, 20)
	for _, msg := range run(p.Mount(binding(t, p))) {
		if cmd := p.Update(msg); cmd != nil {
			t.Error("load error should not schedule work")
		}
	}
	if len(p.Items()) != 0 {
		t.Error("items after a failed load")
	}
}

func TestLivePagePollsWhileFocused(t *testing.T) {
	p := newLivePage(testOptions(seededStore(t, 30)))
	// status, a blank row, then two rows per recent entry
	p.SetSize(60, 2+2*liveRecent+2)
	p.Mount(binding(t, p))
	if !strings.Contains(p.View(), "paused") {
		t.Fatalf("unfocused view: %q", p.View())
	}

	for _, msg := range run(p.FocusChanged(true)) {
		p.Update(msg)
	}
	view := ansi.Strip(p.View())
	if !strings.Contains(view, "30 activities") {
		t.Errorf("focused view: %q", view)
	}
	if strings.Count(view, "ago") != liveRecent {
		t.Errorf("expected %d recent entries:\n%s", liveRecent, view)
	}

	gen := p.gen
	if p.FocusChanged(false) != nil {
		t.Error("blur should not start work")
	}
	if p.Update(liveMsg{gen: gen, count: 99}) != nil {
		t.Error("reply from before blur scheduled another poll")
	}
	if strings.Contains(p.View(), "99") || !strings.Contains(p.View(), "paused") {
		t.Errorf("stale reply applied: %q", p.View())
	}
	if p.Update(p.spin.Tick()) != nil {
		t.Error("spinner kept ticking while unfocused")
	}
}

func TestLivePageShowsPollError(t *testing.T) {
	p := newLivePage(testOptions(failingSource{}))
	p.SetSize(60, 20)
	p.Mount(binding(t, p))
	for _, msg := range run(p.FocusChanged(true)) {
		p.Update(msg)
	}
	if !strings.Contains(p.View(), "offline") {
		t.Errorf("error not shown: %q", p.View())
	}
}

func TestAboutMarkdownListsBindings(t *testing.T) {
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	km.RegisterBinding(keymap.Binding{Key: "x", Command: keymap.CmdScrollToTop, Context: keymap.ContextTabs})

	md := aboutMarkdown(km)
	for _, want := range []string{"| Keys | Action |", "Scroll active page down one line", "`t / x`"} {
		if !strings.Contains(md, want) {
			t.Errorf("about page missing %q", want)
		}
	}
}
