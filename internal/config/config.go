package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const (
	appName        = "mprisnotify"
	configFileName = "config.toml"

	defaultFetchTimeout = 15 * time.Second
	defaultRetryMax     = 2
	defaultChannelName  = "Media playback"
)

// AppConfig holds application configuration
type AppConfig struct {
	// Player is the preferred MPRIS player, with or without the bus prefix
	Player string `koanf:"player"`

	Theme           string `koanf:"theme"` // "auto", "dark" or "light"
	BackgroundColor string `koanf:"background_color"`
	SmallIcon       string `koanf:"small_icon"`
	BodyFormat      string `koanf:"body_format"`

	// Debounce is the minimum gap between accepted button taps
	Debounce time.Duration `koanf:"debounce"`

	PlaceholderArt   string `koanf:"placeholder_art"`
	PlaceholderColor string `koanf:"placeholder_color"` // base color of the generated placeholder
	IconSize         int    `koanf:"icon_size"`
	OpenOnClick      bool   `koanf:"open_on_click"`
	TargetClass      string `koanf:"target_class"`

	TargetBundle map[string]string `koanf:"target_bundle"`
	Actions      domain.ActionIDs  `koanf:"actions"`

	// Resources maps resource names to the icon names shown by the server
	Resources map[string]string `koanf:"resources"`

	// Hooks maps a button slot (favorite, lyrics, download, stop) to a command line
	Hooks   map[string]string `koanf:"hooks"`
	Fetch   FetchConfig       `koanf:"fetch"`
	Channel ChannelConfig     `koanf:"channel"`
}

// FetchConfig tunes artwork downloads
type FetchConfig struct {
	Timeout  time.Duration `koanf:"timeout"`
	RetryMax int           `koanf:"retry_max"`
}

// ChannelConfig holds the notification channel settings
type ChannelConfig struct {
	Name     string `koanf:"name"`
	Category string `koanf:"category"`
	Urgency  string `koanf:"urgency"` // "low", "normal" or "critical"
}

// NewAppConfig loads the configuration file and environment overrides.
// A missing file is not an error; a malformed one is.
func NewAppConfig(logger *zap.Logger) (*AppConfig, error) {
	cfg, err := load(configPaths())
	if err != nil {
		return nil, err
	}

	logger.Info("Configuration loaded",
		zap.String("player", cfg.Player),
		zap.String("theme", cfg.Theme),
		zap.Duration("debounce", cfg.Debounce),
		zap.Int("hooks", len(cfg.Hooks)))

	return cfg, nil
}

// configPaths lists config files in order of priority (last wins)
func configPaths() []string {
	var paths []string
	if p, err := xdg.SearchConfigFile(filepath.Join(appName, configFileName)); err == nil {
		paths = append(paths, p)
	}
	if p := os.Getenv("MPRISNOTIFY_CONFIG"); p != "" {
		paths = append(paths, expandPath(p))
	}
	return paths
}

func load(paths []string) (*AppConfig, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnv reads MPRISNOTIFY_* overrides
func (c *AppConfig) applyEnv() error {
	if v := os.Getenv("MPRISNOTIFY_PLAYER"); v != "" {
		c.Player = v
	}
	if v := os.Getenv("MPRISNOTIFY_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("MPRISNOTIFY_BACKGROUND_COLOR"); v != "" {
		c.BackgroundColor = v
	}
	if v := os.Getenv("MPRISNOTIFY_PLACEHOLDER_ART"); v != "" {
		c.PlaceholderArt = v
	}
	if v := os.Getenv("MPRISNOTIFY_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MPRISNOTIFY_DEBOUNCE %q: %w", v, err)
		}
		c.Debounce = d
	}
	if v := os.Getenv("MPRISNOTIFY_OPEN_ON_CLICK"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid MPRISNOTIFY_OPEN_ON_CLICK %q: %w", v, err)
		}
		c.OpenOnClick = b
	}
	return nil
}

func (c *AppConfig) applyDefaults() {
	switch domain.Theme(strings.ToLower(c.Theme)) {
	case domain.ThemeDark, domain.ThemeLight:
		c.Theme = strings.ToLower(c.Theme)
	default:
		c.Theme = string(domain.ThemeAuto)
	}
	if c.Debounce <= 0 {
		c.Debounce = domain.TimeInterval
	}
	if c.PlaceholderArt != "" {
		c.PlaceholderArt = expandPath(c.PlaceholderArt)
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = defaultFetchTimeout
	}
	if c.Fetch.RetryMax < 0 {
		c.Fetch.RetryMax = 0
	} else if c.Fetch.RetryMax == 0 {
		c.Fetch.RetryMax = defaultRetryMax
	}
	if c.Channel.Name == "" {
		c.Channel.Name = defaultChannelName
	}
	c.Channel.Urgency = strings.ToLower(c.Channel.Urgency)
	c.Actions = c.Actions.WithDefaults()
}

// ThemeMode returns the configured theme selection
func (c *AppConfig) ThemeMode() domain.Theme {
	return domain.Theme(c.Theme)
}

// ChannelSettings returns the notification channel configuration
func (c *AppConfig) ChannelSettings() domain.ChannelConfig {
	return domain.ChannelConfig{
		Name:     c.Channel.Name,
		Category: c.Channel.Category,
		Urgency:  urgency(c.Channel.Urgency),
	}
}

func urgency(name string) domain.Urgency {
	switch name {
	case "low":
		return domain.UrgencyLow
	case "critical":
		return domain.UrgencyCritical
	default:
		return domain.UrgencyNormal
	}
}

// HookCommands returns the hook table keyed by the action identifier
// delivered for each slot. Unknown slots are dropped.
func (c *AppConfig) HookCommands() map[string]string {
	slots := map[string]string{
		"favorite": c.Actions.Favorite,
		"lyrics":   c.Actions.Lyrics,
		"download": c.Actions.Download,
		"stop":     c.Actions.Stop,
	}
	out := make(map[string]string, len(c.Hooks))
	for slot, cmd := range c.Hooks {
		if id, ok := slots[strings.ToLower(slot)]; ok {
			out[id] = cmd
		}
	}
	return out
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return os.ExpandEnv(path)
}
