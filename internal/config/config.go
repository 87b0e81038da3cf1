// Package config loads and saves .tabsync/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const configFile = ".tabsync/config.json"
const lockFile = ".tabsync/config.json.lock"

// Defaults
const (
	DefaultSettleDelay  = 150 * time.Millisecond
	DefaultFeedPageSize = 30
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultLogFile      = ".tabsync/tabsync.log"
	DefaultFeedDB       = ".tabsync/feed.db"
)

// Config is the persisted tab view configuration
type Config struct {
	Inset         string `json:"inset,omitempty"` // "padding" or "content"
	Lazy          *bool  `json:"lazy,omitempty"`
	InitialTab    int    `json:"initial_tab,omitempty"`
	RememberTab   bool   `json:"remember_tab,omitempty"`
	LastTab       *int   `json:"last_tab,omitempty"`
	SettleDelayMS int    `json:"settle_delay_ms,omitempty"`
	FeedPageSize  int    `json:"feed_page_size,omitempty"`
	FeedDB        string `json:"feed_db,omitempty"`
	LogLevel      string `json:"log_level,omitempty"`
	LogFormat     string `json:"log_format,omitempty"`
	LogFile       string `json:"log_file,omitempty"`
	Header        string `json:"header,omitempty"` // Markdown shown in the collapsible header
}

// Load reads the config from disk
func Load(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: temp file in same dir, then rename
	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// Update loads the config, applies fn and saves it while holding the config
// lock.
func Update(baseDir string, fn func(cfg *Config) error) error {
	return withConfigLock(baseDir, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		if err := fn(cfg); err != nil {
			return err
		}
		return Save(baseDir, cfg)
	})
}

// withConfigLock serializes access to config.json across processes
func withConfigLock(baseDir string, fn func() error) error {
	lockPath := filepath.Join(baseDir, lockFile)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := lockFileExclusive(f); err != nil {
		return fmt.Errorf("lock %s: %w", lockPath, err)
	}
	defer unlockFile(f)

	return fn()
}

// LazyEnabled reports whether pages mount lazily (default true)
func (c *Config) LazyEnabled() bool {
	if c.Lazy == nil {
		return true
	}
	return *c.Lazy
}

// SettleDelay returns how long scrolling must pause before it counts as
// settled
func (c *Config) SettleDelay() time.Duration {
	if c.SettleDelayMS <= 0 {
		return DefaultSettleDelay
	}
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

// PageSize returns the feed page size
func (c *Config) PageSize() int {
	if c.FeedPageSize <= 0 {
		return DefaultFeedPageSize
	}
	return c.FeedPageSize
}

// StartTab returns the tab to open with, clamped to pageCount. A remembered
// last tab wins over InitialTab.
func (c *Config) StartTab(pageCount int) int {
	tab := c.InitialTab
	if c.RememberTab && c.LastTab != nil {
		tab = *c.LastTab
	}
	if tab < 0 || tab >= pageCount {
		return 0
	}
	return tab
}

// LogFilePath returns the log file path relative to baseDir
func (c *Config) LogFilePath(baseDir string) string {
	p := c.LogFile
	if p == "" {
		p = DefaultLogFile
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// FeedDBPath returns the feed database path relative to baseDir
func (c *Config) FeedDBPath(baseDir string) string {
	p := c.FeedDB
	if p == "" {
		p = DefaultFeedDB
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// SetLastTab records the last selected tab
func SetLastTab(baseDir string, tab int) error {
	return Update(baseDir, func(cfg *Config) error {
		cfg.LastTab = &tab
		return nil
	})
}

// GetLastTab returns the last selected tab, if one was recorded
func GetLastTab(baseDir string) (int, bool, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return 0, false, err
	}
	if cfg.LastTab == nil {
		return 0, false, nil
	}
	return *cfg.LastTab, true, nil
}
