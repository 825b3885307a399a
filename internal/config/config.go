package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/raphi011/weather/internal/storage"
)

// Defaults
const (
	DefaultBaseURL   = "http://api.weatherapi.com/v1"
	DefaultCacheFile = "data.json"
	DefaultLogFile   = "weather.log"
	DefaultLogLevel  = "info"
	DefaultTheme     = "default"
)

// ErrMissingAPIKey is returned by RequireAPIKey when no key is configured.
var ErrMissingAPIKey = errors.New("API_KEY is not set: export it, add it to .env, or set api_key in the config file")

// DisplayConfig holds rendering settings
type DisplayConfig struct {
	Icons bool   `toml:"icons"`
	Theme string `toml:"theme"`
}

// Config holds the weather configuration
type Config struct {
	APIKey      string        `toml:"api_key"`
	BaseURL     string        `toml:"base_url"`
	CacheFile   string        `toml:"cache_file"`
	LogFile     string        `toml:"log_file"`
	HistoryFile string        `toml:"history_file"`
	LogLevel    string        `toml:"log_level"`
	Display     DisplayConfig `toml:"display"`

	// Path is the config file that was read, empty if none existed.
	Path string `toml:"-"`
}

// RequireAPIKey fails with ErrMissingAPIKey when no key is configured.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Default returns the default configuration
func Default() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		CacheFile:   DefaultCacheFile,
		LogFile:     DefaultLogFile,
		HistoryFile: defaultHistoryFile(),
		LogLevel:    DefaultLogLevel,
		Display: DisplayConfig{
			Icons: true,
			Theme: DefaultTheme,
		},
	}
}

// envOverrides are read from the process environment by envconfig
type envOverrides struct {
	ConfigFile  string `envconfig:"WEATHER_CONFIG"`
	APIKey      string `envconfig:"API_KEY"`
	BaseURL     string `envconfig:"WEATHER_BASE_URL"`
	CacheFile   string `envconfig:"WEATHER_CACHE_FILE"`
	LogFile     string `envconfig:"WEATHER_LOG_FILE"`
	HistoryFile string `envconfig:"WEATHER_HISTORY_FILE"`
	LogLevel    string `envconfig:"WEATHER_LOG_LEVEL"`
}

// rawConfig is used for TOML parsing so unset booleans keep their defaults
type rawConfig struct {
	APIKey      string `toml:"api_key"`
	BaseURL     string `toml:"base_url"`
	CacheFile   string `toml:"cache_file"`
	LogFile     string `toml:"log_file"`
	HistoryFile string `toml:"history_file"`
	LogLevel    string `toml:"log_level"`
	Display     struct {
		Icons *bool  `toml:"icons"`
		Theme string `toml:"theme"`
	} `toml:"display"`
}

func readEnv() (envOverrides, error) {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return env, fmt.Errorf("read environment: %w", err)
	}
	return env, nil
}

// Path returns the config file path: WEATHER_CONFIG if set, otherwise
// ~/.config/weather/config.toml
func Path() (string, error) {
	env, err := readEnv()
	if err != nil {
		return "", err
	}
	if env.ConfigFile != "" {
		return expandPath(env.ConfigFile)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "weather", "config.toml"), nil
}

// Load reads the config file, applies environment overrides and validates
// the result. A missing config file is not an error.
//
// On error the returned Config is still usable: defaults with the
// environment overrides applied, so an API_KEY from the environment
// survives a broken config file.
func Load() (Config, error) {
	env, err := readEnv()
	if err != nil {
		return Default(), err
	}

	path, err := Path()
	if err != nil {
		return fallback(env), err
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.merge(data); err != nil {
			return fallback(env), fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(err, os.ErrNotExist):
	default:
		return fallback(env), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv(env)

	if err := cfg.Validate(); err != nil {
		return fallback(env), err
	}

	if err := cfg.expandPaths(); err != nil {
		return fallback(env), err
	}

	return cfg, nil
}

// fallback is the config used when the file is unusable: defaults plus the
// environment, with invalid environment values reset to their defaults.
func fallback(env envOverrides) Config {
	cfg := Default()
	cfg.applyEnv(env)

	if validateBaseURL(cfg.BaseURL) != nil {
		cfg.BaseURL = DefaultBaseURL
	}
	if validateEnum(strings.ToLower(cfg.LogLevel), "log_level", ValidLogLevels) != nil {
		cfg.LogLevel = DefaultLogLevel
	}

	// Unexpandable paths are kept as given
	_ = cfg.expandPaths()
	return cfg
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.CacheFile, &c.LogFile, &c.HistoryFile} {
		expanded, err := expandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// merge overlays non-empty settings from a TOML document
func (c *Config) merge(data []byte) error {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return err
	}

	setIfNotEmpty(&c.APIKey, raw.APIKey)
	setIfNotEmpty(&c.BaseURL, raw.BaseURL)
	setIfNotEmpty(&c.CacheFile, raw.CacheFile)
	setIfNotEmpty(&c.LogFile, raw.LogFile)
	setIfNotEmpty(&c.HistoryFile, raw.HistoryFile)
	setIfNotEmpty(&c.LogLevel, raw.LogLevel)
	setIfNotEmpty(&c.Display.Theme, raw.Display.Theme)
	if raw.Display.Icons != nil {
		c.Display.Icons = *raw.Display.Icons
	}
	return nil
}

func (c *Config) applyEnv(env envOverrides) {
	setIfNotEmpty(&c.APIKey, env.APIKey)
	setIfNotEmpty(&c.BaseURL, env.BaseURL)
	setIfNotEmpty(&c.CacheFile, env.CacheFile)
	setIfNotEmpty(&c.LogFile, env.LogFile)
	setIfNotEmpty(&c.HistoryFile, env.HistoryFile)
	setIfNotEmpty(&c.LogLevel, env.LogLevel)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func defaultHistoryFile() string {
	dir, err := storage.StateDir()
	if err != nil {
		dir = ".weather"
	}
	return filepath.Join(dir, "history.json")
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

const defaultConfig = `# weather configuration

# weatherapi.com API key. The API_KEY environment variable (or a .env file
# in the working directory) takes precedence.
# api_key = ""

# API root
# base_url = "http://api.weatherapi.com/v1"

# Last fetched forecast. Relative paths resolve against the working directory.
# cache_file = "data.json"

# Append-only journal of cache hits and misses
# log_file = "weather.log"
# log_level = "info"    # debug, info, warn, error

# Recently looked-up cities, used for shell completion
# history_file = "~/.weather/history.json"

[display]
# Prefix each line with an emoji icon
icons = true

# Color theme: default, none, dracula, nord, gruvbox
theme = "default"
`

// DefaultConfig returns the commented template written by Init
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
