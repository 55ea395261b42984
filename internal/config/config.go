package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"noticeboard/internal/constants"
	"noticeboard/internal/paths"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	API           APIConfig          `toml:"api"`
	Links         LinksConfig        `toml:"links"`
	Ads           AdsConfig          `toml:"ads"`
	Notifications NotificationConfig `toml:"notifications"`
	UI            UIConfig           `toml:"ui"`
	Log           LogConfig          `toml:"log"`

	// Runtime only, not saved to TOML
	LogFile string `toml:"-"`
}

// APIConfig points the client at the social API.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LinksConfig describes which deep links belong to this app.
type LinksConfig struct {
	Scheme string `toml:"scheme"`
	Host   string `toml:"host"`
}

// AdsConfig tunes the interstitial scheduler.
type AdsConfig struct {
	TickSeconds        int `toml:"tick_seconds"`
	MinIntervalSeconds int `toml:"min_interval_seconds"` // floor applied over the remote switchSeconds
}

// NotificationConfig tunes the unread badge poller.
type NotificationConfig struct {
	PollSeconds int `toml:"poll_seconds"`
}

// UIConfig holds user interface related settings.
type UIConfig struct {
	Accent string `toml:"accent"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"` // trace, debug, info, notice, warn, error
}

// Default returns the built-in configuration.
func Default() AppConfig {
	conf := AppConfig{
		API: APIConfig{
			BaseURL:        constants.DefaultAPIBaseURL,
			TimeoutSeconds: constants.DefaultAPITimeoutSecs,
		},
		Links: LinksConfig{
			Scheme: constants.DefaultLinkScheme,
			Host:   constants.DefaultLinkHost,
		},
		Ads: AdsConfig{
			TickSeconds:        constants.DefaultAdTickSeconds,
			MinIntervalSeconds: constants.DefaultAdFloorSeconds,
		},
		Notifications: NotificationConfig{
			PollSeconds: constants.DefaultNotifyPollSeconds,
		},
		UI: UIConfig{
			Accent: "#ff4d4f",
		},
		Log: LogConfig{
			File:  "${XDG_STATE_HOME}/noticeboard/" + constants.LogFileName,
			Level: "info",
		},
	}
	conf.LogFile = ExpandVariables(conf.Log.File)
	return conf
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome (or the test override)
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_STATE_HOME":
			if paths.StateHomeOverride != "" {
				return paths.StateHomeOverride
			}
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return os.Getenv(varName)
	}
	return os.Expand(val, mapper)
}

// LoadAppConfig reads the configuration file and returns the configuration.
// A missing file is created with defaults; an unreadable one falls back to defaults.
func LoadAppConfig() (AppConfig, error) {
	conf := Default()

	path := paths.GetConfigFilePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return conf, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := SaveAppConfig(conf); err != nil {
			return conf, fmt.Errorf("write default config: %w", err)
		}
		return conf, nil
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	conf.normalize()
	return conf, nil
}

// normalize replaces values that would make the schedulers misbehave.
func (c *AppConfig) normalize() {
	d := Default()
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = d.API.TimeoutSeconds
	}
	if c.Links.Scheme == "" {
		c.Links.Scheme = d.Links.Scheme
	}
	if c.Links.Host == "" {
		c.Links.Host = d.Links.Host
	}
	if c.Ads.TickSeconds <= 0 {
		c.Ads.TickSeconds = d.Ads.TickSeconds
	}
	if c.Ads.MinIntervalSeconds < 0 {
		c.Ads.MinIntervalSeconds = d.Ads.MinIntervalSeconds
	}
	if c.Notifications.PollSeconds <= 0 {
		c.Notifications.PollSeconds = d.Notifications.PollSeconds
	}
	if c.Log.File == "" {
		c.Log.File = d.Log.File
	}
	c.LogFile = ExpandVariables(c.Log.File)
}

// SaveAppConfig writes the configuration to noticeboard.toml.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Encode renders the configuration as TOML, as saved on disk.
func Encode(conf AppConfig) (string, error) {
	data, err := toml.Marshal(conf)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// APITimeout returns the HTTP timeout for API calls.
func (c AppConfig) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// AdTick returns how often the ad scheduler evaluates its predicate.
func (c AppConfig) AdTick() time.Duration {
	return time.Duration(c.Ads.TickSeconds) * time.Second
}

// AdFloor returns the minimum spacing between interstitials.
func (c AppConfig) AdFloor() time.Duration {
	return time.Duration(c.Ads.MinIntervalSeconds) * time.Second
}

// NotificationPoll returns the badge polling interval.
func (c AppConfig) NotificationPoll() time.Duration {
	return time.Duration(c.Notifications.PollSeconds) * time.Second
}
