package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/glance/internal/feed"
	"github.com/five82/glance/internal/garage"
	"github.com/five82/glance/internal/weather"
)

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText formats the duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config captures everything glance reads from config.toml.
type Config struct {
	Output       string
	Theme        string
	LogLevel     string
	LogFile      string
	FetchTimeout time.Duration

	Garage  Feed
	Weather Feed
	Battery Battery
	CPU     CPU
	Memory  Poll
	Volume  Poll
}

// Feed configures an HTTP data source.
type Feed struct {
	URL   string
	Every time.Duration
}

// Battery configures the battery segment.
type Battery struct {
	Every     time.Duration
	SysfsRoot string
}

// CPU configures the CPU temperature segment.
type CPU struct {
	Every  time.Duration
	Sensor string
}

// Poll configures a source that only needs an interval.
type Poll struct {
	Every time.Duration
}

const (
	defaultConfigPath = "~/.config/glance/config.toml"
	defaultLogFile    = "~/.local/state/glance/glance.log"
	defaultOutput     = "tui"
	defaultLogLevel   = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Output:       defaultOutput,
		LogLevel:     defaultLogLevel,
		LogFile:      mustExpand(defaultLogFile),
		FetchTimeout: feed.DefaultTimeout,
		Garage:       Feed{URL: garage.DefaultURL, Every: 30 * time.Second},
		Weather:      Feed{URL: weather.DefaultURL, Every: 5 * time.Minute},
		Battery:      Battery{Every: 30 * time.Second},
		CPU:          CPU{Every: 5 * time.Second},
		Memory:       Poll{Every: 15 * time.Second},
		Volume:       Poll{Every: 2 * time.Second},
	}
}

type rawFeed struct {
	URL   string   `toml:"url"`
	Every Duration `toml:"every"`
}

type rawConfig struct {
	Output       string   `toml:"output"`
	Theme        string   `toml:"theme"`
	LogLevel     string   `toml:"log_level"`
	LogFile      string   `toml:"log_file"`
	FetchTimeout Duration `toml:"fetch_timeout"`

	Garage  rawFeed `toml:"garage"`
	Weather rawFeed `toml:"weather"`
	Battery struct {
		Every Duration `toml:"every"`
		Sysfs string   `toml:"sysfs"`
	} `toml:"battery"`
	CPU struct {
		Every  Duration `toml:"every"`
		Sensor string   `toml:"sensor"`
	} `toml:"cpu"`
	Memory struct {
		Every Duration `toml:"every"`
	} `toml:"memory"`
	Volume struct {
		Poll Duration `toml:"poll"`
	} `toml:"volume"`
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. Empty or non-positive values keep their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	setString(&cfg.Output, raw.Output)
	setString(&cfg.Theme, raw.Theme)
	setString(&cfg.LogLevel, raw.LogLevel)
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	setDuration(&cfg.FetchTimeout, raw.FetchTimeout)

	setString(&cfg.Garage.URL, raw.Garage.URL)
	setDuration(&cfg.Garage.Every, raw.Garage.Every)
	setString(&cfg.Weather.URL, raw.Weather.URL)
	setDuration(&cfg.Weather.Every, raw.Weather.Every)
	setDuration(&cfg.Battery.Every, raw.Battery.Every)
	setString(&cfg.Battery.SysfsRoot, raw.Battery.Sysfs)
	setDuration(&cfg.CPU.Every, raw.CPU.Every)
	setString(&cfg.CPU.Sensor, raw.CPU.Sensor)
	setDuration(&cfg.Memory.Every, raw.Memory.Every)
	setDuration(&cfg.Volume.Every, raw.Volume.Poll)

	return cfg, nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v Duration) {
	if v > 0 {
		*dst = time.Duration(v)
	}
}

// DefaultPath returns the unexpanded default config location.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
