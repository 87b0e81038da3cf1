package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/tabsync/internal/config"
	"github.com/marcus/tabsync/internal/demo"
	"github.com/marcus/tabsync/internal/feed"
	"github.com/marcus/tabsync/internal/output"
	"github.com/marcus/tabsync/internal/tabs"
	"github.com/marcus/tabsync/internal/version"
	"github.com/marcus/tabsync/pkg/tabview"
	"github.com/marcus/tabsync/pkg/tabview/keymap"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// defaultSeed is how many activities an empty feed is seeded with
const defaultSeed = 200

// insetFlag is a pflag.Value accepting the inset mode names.
type insetFlag struct {
	mode string
}

var _ pflag.Value = (*insetFlag)(nil)

func (f *insetFlag) String() string { return f.mode }

func (f *insetFlag) Set(s string) error {
	switch s {
	case "padding", "content":
		f.mode = s
		return nil
	default:
		return fmt.Errorf("invalid inset %q (use padding or content)", s)
	}
}

func (f *insetFlag) Type() string { return "inset" }

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"open"},
	Short:   "Open the tab view",
	Long: `Open the tab view over the local activity feed.

Key bindings:
  j/k            Scroll the active page
  h/l            Swipe between pages
  Tab/Shift+Tab  Next/previous tab
  1-9            Jump to tab
  t              Scroll page and tab strip to the start
  /              Focus the page's input
  ?              Toggle help
  q              Quit

Press ? inside the view for the full list, including overrides from
.tabsync/keymap.json.`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			output.Error("tabsync run needs an interactive terminal")
			return errors.New("stdout is not a terminal")
		}

		baseDir := getBaseDir()
		cfg, err := config.Load(baseDir)
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}
		applyLogFlags(cmd, cfg)
		if err := applyRunFlags(cmd, cfg); err != nil {
			output.Error("%v", err)
			return err
		}

		logger, closeLog, err := openLogger(cfg, baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer closeLog()

		store, err := feed.Open(cfg.FeedDBPath(baseDir))
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer store.Close()

		seed, _ := cmd.Flags().GetInt("seed")
		if seed > 0 {
			if _, err := seedIfEmpty(cmd.Context(), store, seed); err != nil {
				output.Error("seed feed: %v", err)
				return err
			}
		}

		model, err := newTabModel(baseDir, cfg, store, loadKeymap(baseDir, logger), logger)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
		if noCheck, _ := cmd.Flags().GetBool("no-update-check"); !noCheck {
			go notifyUpdate(p, logger)
		}

		logger.Info("tab view started", "version", versionStr, "inset", cfg.Inset, "lazy", cfg.LazyEnabled())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running tab view: %w", err)
		}
		return nil
	},
}

// applyRunFlags lets explicit run flags override the config.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("inset") {
		cfg.Inset = flags.Lookup("inset").Value.String()
	}
	if flags.Changed("lazy") {
		lazy, _ := flags.GetBool("lazy")
		cfg.Lazy = &lazy
	}
	if flags.Changed("tab") {
		tab, _ := flags.GetInt("tab")
		if tab < 1 {
			return fmt.Errorf("invalid tab %d (tabs are numbered from 1)", tab)
		}
		cfg.InitialTab = tab - 1
		cfg.LastTab = nil
	}
	if flags.Changed("settle") {
		d, _ := flags.GetDuration("settle")
		if d <= 0 {
			return fmt.Errorf("invalid settle delay %v", d)
		}
		cfg.SettleDelayMS = int(d / time.Millisecond)
	}
	if flags.Changed("header") {
		cfg.Header, _ = flags.GetString("header")
	}
	return nil
}

// loadKeymap returns the default bindings with the user's overrides applied.
// A broken overrides file is logged and ignored.
func loadKeymap(baseDir string, logger *slog.Logger) *keymap.Registry {
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	kcfg, err := keymap.LoadConfig(keymap.ConfigPath(baseDir))
	if err != nil {
		logger.Warn("ignoring keymap overrides", "path", keymap.ConfigPath(baseDir), "err", err)
		return km
	}
	keymap.ApplyConfig(km, kcfg)
	return km
}

func newTabModel(baseDir string, cfg *config.Config, store *feed.Store, km *keymap.Registry, logger *slog.Logger) (tabview.Model, error) {
	pages := demo.Tabs(demo.Options{
		Source:   store,
		PageSize: cfg.PageSize(),
		Keymap:   km,
		Logger:   logger,
	})

	header := cfg.Header
	if header == "" {
		header = demo.DefaultHeader
	}

	return tabview.NewModel(tabview.Config{
		Tabs:         pages,
		Header:       tabview.NewHeader(header),
		InitialIndex: cfg.StartTab(len(pages)),
		Lazy:         cfg.LazyEnabled(),
		Inset:        tabs.ParseInsetMode(cfg.Inset),
		SettleDelay:  cfg.SettleDelay(),
		Keymap:       km,
		OnIndexChange: func(index int) {
			logger.Debug("tab selected", "index", index, "title", pages[index].Title)
			if !cfg.RememberTab {
				return
			}
			if err := config.SetLastTab(baseDir, index); err != nil {
				logger.Warn("save last tab", "err", err)
			}
		},
		OnTriggerPress: func(index int) {
			logger.Debug("tab trigger pressed", "index", index)
		},
		Logger: logger,
	})
}

// notifyUpdate shows a footer notice when a newer release exists.
func notifyUpdate(p *tea.Program, logger *slog.Logger) {
	msg, ok := version.CheckAsync(versionStr)().(version.UpdateAvailableMsg)
	if !ok {
		return
	}
	logger.Info("update available", "current", msg.CurrentVersion, "latest", msg.LatestVersion)
	text := fmt.Sprintf("update available: %s → %s", msg.CurrentVersion, msg.LatestVersion)
	if msg.UpdateCommand != "" {
		text += "  (" + msg.UpdateCommand + ")"
	}
	p.Send(tabview.NoticeMsg{Text: text})
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.Var(&insetFlag{mode: tabs.InsetPadding.String()}, "inset", "how pages make room for the header: padding or content")
	fs.Bool("lazy", true, "build pages the first time their tab is selected")
	fs.Int("tab", 1, "tab to open with, numbered from 1")
	fs.Duration("settle", 0, "pause after scrolling before other pages catch up (default 150ms)")
	fs.String("header", "", "markdown for the collapsible header")
	fs.Int("seed", defaultSeed, "seed an empty feed with this many activities (0 to skip)")
	fs.Bool("no-update-check", false, "do not check for a newer release")
}

func init() {
	addRunFlags(runCmd.Flags())
	rootCmd.AddCommand(runCmd)
}
