package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "REVIEWWATCH_CONFIG"

	appDir     = "reviewwatch"
	configFile = "config.json"
)

// Surface kinds
const (
	SurfaceDesktop = "desktop"
	SurfaceConsole = "console"
	// SurfaceBoth shows desktop notifications and also prints them.
	SurfaceBoth = "both"
)

// Badge kinds
const (
	BadgeTerminal = "terminal"
	BadgeFile     = "file"
	// BadgeBoth draws the terminal badge and writes badge.file.
	BadgeBoth = "both"
	BadgeNone = "none"
)

// Storage backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Config struct {
	GitHub        GitHubSettings       `json:"github"`
	Watch         WatchSettings        `json:"watch"`
	Notifications NotificationSettings `json:"notifications"`
	Badge         BadgeSettings        `json:"badge"`
	Storage       StorageSettings      `json:"storage"`
	Logging       LoggingSettings      `json:"logging"`

	path string
}

type GitHubSettings struct {
	APIURL         string `json:"api_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type WatchSettings struct {
	IntervalSeconds int  `json:"interval_seconds"`
	SingleFlight    bool `json:"single_flight"`
}

type NotificationSettings struct {
	Surface string `json:"surface"`
	Title   string `json:"title"`
}

type BadgeSettings struct {
	Kind string `json:"kind"`
	File string `json:"file"`
}

type StorageSettings struct {
	Backend string `json:"backend"`
	// Dir holds the notification record and credentials. Empty means the
	// platform state directory.
	Dir string `json:"dir"`
}

type LoggingSettings struct {
	Debug    bool   `json:"debug"`
	File     string `json:"file"`
	MaxFiles int    `json:"max_files"`
}

func defaultConfig() *Config {
	return &Config{
		GitHub: GitHubSettings{
			APIURL:         "https://api.github.com/",
			TimeoutSeconds: 30,
		},
		Watch: WatchSettings{
			IntervalSeconds: 60,
			SingleFlight:    true,
		},
		Notifications: NotificationSettings{
			Surface: SurfaceDesktop,
			Title:   "New pull request",
		},
		Badge: BadgeSettings{
			Kind: BadgeTerminal,
		},
		Storage: StorageSettings{
			Backend: BackendJSON,
		},
		Logging: LoggingSettings{
			MaxFiles: 20,
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// DefaultPath is $REVIEWWATCH_CONFIG, or config.json in the user config
// directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, appDir, configFile), nil
}

// Load reads the config at path, or DefaultPath when path is empty. A
// missing file is created with defaults. Fields absent from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	config := defaultConfig()
	config.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := config.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	mergeWithDefaults(config)
	return config, nil
}

// mergeWithDefaults replaces values that are present but unusable.
func mergeWithDefaults(config *Config) {
	defaults := defaultConfig()

	if config.GitHub.APIURL == "" {
		config.GitHub.APIURL = defaults.GitHub.APIURL
	}
	if config.GitHub.TimeoutSeconds <= 0 {
		config.GitHub.TimeoutSeconds = defaults.GitHub.TimeoutSeconds
	}
	if config.Watch.IntervalSeconds <= 0 {
		config.Watch.IntervalSeconds = defaults.Watch.IntervalSeconds
	}
	if config.Notifications.Surface == "" {
		config.Notifications.Surface = defaults.Notifications.Surface
	}
	if config.Notifications.Title == "" {
		config.Notifications.Title = defaults.Notifications.Title
	}
	if config.Badge.Kind == "" {
		config.Badge.Kind = defaults.Badge.Kind
	}
	if config.Storage.Backend == "" {
		config.Storage.Backend = defaults.Storage.Backend
	}
	if config.Logging.MaxFiles < 0 {
		config.Logging.MaxFiles = defaults.Logging.MaxFiles
	}
}

// Path is the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to its file.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, append(data, '\n'), 0o644)
}

// Interval is the delay between watch cycles.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Watch.IntervalSeconds) * time.Second
}

// Timeout bounds each GitHub request.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.GitHub.TimeoutSeconds) * time.Second
}

// Keys lists the settings accepted by Set, in display order.
func Keys() []string {
	return []string{
		"github.api_url",
		"github.timeout_seconds",
		"watch.interval_seconds",
		"watch.single_flight",
		"notifications.surface",
		"notifications.title",
		"badge.kind",
		"badge.file",
		"storage.backend",
		"storage.dir",
		"logging.debug",
		"logging.file",
		"logging.max_files",
	}
}

// Get returns the value of key as text.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "github.api_url":
		return c.GitHub.APIURL, nil
	case "github.timeout_seconds":
		return strconv.Itoa(c.GitHub.TimeoutSeconds), nil
	case "watch.interval_seconds":
		return strconv.Itoa(c.Watch.IntervalSeconds), nil
	case "watch.single_flight":
		return strconv.FormatBool(c.Watch.SingleFlight), nil
	case "notifications.surface":
		return c.Notifications.Surface, nil
	case "notifications.title":
		return c.Notifications.Title, nil
	case "badge.kind":
		return c.Badge.Kind, nil
	case "badge.file":
		return c.Badge.File, nil
	case "storage.backend":
		return c.Storage.Backend, nil
	case "storage.dir":
		return c.Storage.Dir, nil
	case "logging.debug":
		return strconv.FormatBool(c.Logging.Debug), nil
	case "logging.file":
		return c.Logging.File, nil
	case "logging.max_files":
		return strconv.Itoa(c.Logging.MaxFiles), nil
	}
	return "", unknownKey(key)
}

// Set parses value and assigns it to key. It does not save.
func (c *Config) Set(key, value string) error {
	switch key {
	case "github.api_url":
		c.GitHub.APIURL = value
	case "github.timeout_seconds":
		return setPositiveInt(&c.GitHub.TimeoutSeconds, key, value)
	case "watch.interval_seconds":
		return setPositiveInt(&c.Watch.IntervalSeconds, key, value)
	case "watch.single_flight":
		return setBool(&c.Watch.SingleFlight, key, value)
	case "notifications.surface":
		return setChoice(&c.Notifications.Surface, key, value, SurfaceDesktop, SurfaceConsole, SurfaceBoth)
	case "notifications.title":
		c.Notifications.Title = value
	case "badge.kind":
		return setChoice(&c.Badge.Kind, key, value, BadgeTerminal, BadgeFile, BadgeBoth, BadgeNone)
	case "badge.file":
		c.Badge.File = value
	case "storage.backend":
		return setChoice(&c.Storage.Backend, key, value, BackendJSON, BackendSQLite)
	case "storage.dir":
		c.Storage.Dir = value
	case "logging.debug":
		return setBool(&c.Logging.Debug, key, value)
	case "logging.file":
		c.Logging.File = value
	case "logging.max_files":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
		c.Logging.MaxFiles = n
	default:
		return unknownKey(key)
	}
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
}

func setPositiveInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s must be true or false, got %q", key, value)
	}
	*dst = b
	return nil
}

func setChoice(dst *string, key, value string, choices ...string) error {
	for _, c := range choices {
		if value == c {
			*dst = value
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(choices, ", "), value)
}
