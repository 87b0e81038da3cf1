package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/marcus/tabsync/internal/config"
	"github.com/marcus/tabsync/internal/output"
	"github.com/marcus/tabsync/internal/suggest"
	"github.com/spf13/cobra"
)

// validConfigKeys lists the supported config keys for set/get.
var validConfigKeys = []string{
	"inset",
	"lazy",
	"initial_tab",
	"remember_tab",
	"settle_delay_ms",
	"feed_page_size",
	"feed_db",
	"log_level",
	"log_format",
	"log_file",
	"header",
}

var errUnknownKey = errors.New("unknown config key")

func isValidConfigKey(key string) bool {
	for _, k := range validConfigKeys {
		if k == key {
			return true
		}
	}
	return false
}

func reportUnknownKey(key string) {
	output.Error("unknown config key: %s", key)
	if hint := suggest.Hint(key, validConfigKeys); hint != "" {
		fmt.Println(hint)
		return
	}
	fmt.Println("Valid keys:", strings.Join(validConfigKeys, ", "))
}

func parseBool(val string) (bool, error) {
	switch strings.ToLower(val) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q (use true/false/1/0)", val)
	}
}

func parseNonNegative(val string) (int, error) {
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid value %q (want a non-negative integer)", val)
	}
	return n, nil
}

// setConfigValue parses val for key and stores it in cfg.
func setConfigValue(cfg *config.Config, key, val string) error {
	switch key {
	case "inset":
		if err := (&insetFlag{}).Set(val); err != nil {
			return err
		}
		cfg.Inset = val
	case "lazy":
		b, err := parseBool(val)
		if err != nil {
			return err
		}
		cfg.Lazy = &b
	case "initial_tab":
		n, err := parseNonNegative(val)
		if err != nil {
			return err
		}
		cfg.InitialTab = n
	case "remember_tab":
		b, err := parseBool(val)
		if err != nil {
			return err
		}
		cfg.RememberTab = b
		if !b {
			cfg.LastTab = nil
		}
	case "settle_delay_ms":
		n, err := parseNonNegative(val)
		if err != nil {
			return err
		}
		cfg.SettleDelayMS = n
	case "feed_page_size":
		n, err := parseNonNegative(val)
		if err != nil {
			return err
		}
		cfg.FeedPageSize = n
	case "feed_db":
		cfg.FeedDB = val
	case "log_level":
		if _, ok := parseLogLevel(val); !ok {
			return fmt.Errorf("invalid log level %q (use debug/info/warn/error)", val)
		}
		cfg.LogLevel = strings.ToLower(val)
	case "log_format":
		if val != "text" && val != "json" {
			return fmt.Errorf("invalid log format %q (use text/json)", val)
		}
		cfg.LogFormat = val
	case "log_file":
		cfg.LogFile = val
	case "header":
		cfg.Header = val
	default:
		return fmt.Errorf("%w: %s", errUnknownKey, key)
	}
	return nil
}

// getConfigValue returns the value for key, marking unset keys with their
// default.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	orDefault := func(v, def string) string {
		if v == "" {
			return def + " (default)"
		}
		return v
	}
	switch key {
	case "inset":
		return orDefault(cfg.Inset, "padding"), nil
	case "lazy":
		if cfg.Lazy == nil {
			return "true (default)", nil
		}
		return strconv.FormatBool(*cfg.Lazy), nil
	case "initial_tab":
		return strconv.Itoa(cfg.InitialTab), nil
	case "remember_tab":
		return strconv.FormatBool(cfg.RememberTab), nil
	case "settle_delay_ms":
		if cfg.SettleDelayMS <= 0 {
			return fmt.Sprintf("%d (default)", config.DefaultSettleDelay.Milliseconds()), nil
		}
		return strconv.Itoa(cfg.SettleDelayMS), nil
	case "feed_page_size":
		if cfg.FeedPageSize <= 0 {
			return fmt.Sprintf("%d (default)", config.DefaultFeedPageSize), nil
		}
		return strconv.Itoa(cfg.FeedPageSize), nil
	case "feed_db":
		return orDefault(cfg.FeedDB, config.DefaultFeedDB), nil
	case "log_level":
		return orDefault(cfg.LogLevel, config.DefaultLogLevel), nil
	case "log_format":
		return orDefault(cfg.LogFormat, config.DefaultLogFormat), nil
	case "log_file":
		return orDefault(cfg.LogFile, config.DefaultLogFile), nil
	case "header":
		return orDefault(cfg.Header, "built-in"), nil
	default:
		return "", fmt.Errorf("%w: %s", errUnknownKey, key)
	}
}

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage tabsync configuration",
	GroupID: "system",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]

		if !isValidConfigKey(key) {
			reportUnknownKey(key)
			return fmt.Errorf("%w: %s", errUnknownKey, key)
		}

		err := config.Update(getBaseDir(), func(cfg *config.Config) error {
			return setConfigValue(cfg, key, val)
		})
		if err != nil {
			output.Error("%v", err)
			return err
		}

		output.Success("set %s = %s", key, val)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		if !isValidConfigKey(key) {
			reportUnknownKey(key)
			return fmt.Errorf("%w: %s", errUnknownKey, key)
		}

		cfg, err := config.Load(getBaseDir())
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}

		val, err := getConfigValue(cfg, key)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Println(val)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			output.Error("marshal config: %v", err)
			return err
		}

		fmt.Println(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the config interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()
		cfg, err := config.Load(baseDir)
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}

		fs := newConfigForm(cfg)
		if err := fs.Form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				output.Warning("config unchanged")
				return nil
			}
			output.Error("%v", err)
			return err
		}

		if err := config.Update(baseDir, fs.apply); err != nil {
			output.Error("save config: %v", err)
			return err
		}
		output.Success("saved %s", ".tabsync/config.json")
		return nil
	},
}

// configForm holds the values edited by config init.
type configForm struct {
	Form *huh.Form

	Inset       string
	Lazy        bool
	RememberTab bool
	PageSize    string
	LogLevel    string
}

func newConfigForm(cfg *config.Config) *configForm {
	fs := &configForm{
		Inset:       tabsInsetName(cfg.Inset),
		Lazy:        cfg.LazyEnabled(),
		RememberTab: cfg.RememberTab,
		PageSize:    strconv.Itoa(cfg.PageSize()),
		LogLevel:    cfg.LogLevel,
	}
	if fs.LogLevel == "" {
		fs.LogLevel = config.DefaultLogLevel
	}

	fs.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Header inset").
				Description("How pages make room for the collapsible header").
				Options(
					huh.NewOption("Padding: pages start below the header", "padding"),
					huh.NewOption("Content: offsets start negative", "content"),
				).
				Value(&fs.Inset),
			huh.NewConfirm().
				Title("Lazy pages").
				Description("Build pages the first time their tab is selected").
				Value(&fs.Lazy),
			huh.NewConfirm().
				Title("Remember tab").
				Description("Reopen on the last selected tab").
				Value(&fs.RememberTab),
		).Title("Tab view"),
		huh.NewGroup(
			huh.NewInput().
				Title("Feed page size").
				Value(&fs.PageSize).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n <= 0 {
						return errors.New("enter a positive number")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&fs.LogLevel),
		).Title("Feed and logging"),
	)
	fs.Form.WithTheme(huh.ThemeDracula())
	return fs
}

// apply copies the form values into cfg.
func (fs *configForm) apply(cfg *config.Config) error {
	for key, val := range map[string]string{
		"inset":          fs.Inset,
		"lazy":           strconv.FormatBool(fs.Lazy),
		"remember_tab":   strconv.FormatBool(fs.RememberTab),
		"feed_page_size": strings.TrimSpace(fs.PageSize),
		"log_level":      fs.LogLevel,
	} {
		if err := setConfigValue(cfg, key, val); err != nil {
			return err
		}
	}
	return nil
}

func tabsInsetName(s string) string {
	if s == "content" {
		return s
	}
	return "padding"
}

func init() {
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
