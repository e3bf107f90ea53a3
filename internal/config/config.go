// Package config loads lingofriends settings by layering defaults, an
// optional YAML or TOML file, and environment variables. CLI flags are
// applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// DirEnv overrides the config directory (used by tests).
	DirEnv      = "LINGOFRIENDS_CONFIG_DIR"
	APIURLEnv   = "LINGOFRIENDS_API_URL"
	WebURLEnv   = "LINGOFRIENDS_WEB_URL"
	TokenEnv    = "LINGOFRIENDS_TOKEN"
	NoCacheEnv  = "LINGOFRIENDS_NO_CACHE"
	LogFileEnv  = "LINGOFRIENDS_LOG_FILE"
	appDirName  = "lingofriends"
	cacheFile   = "cache.db"
	logFileName = "lingofriends.log"

	DefaultAPIURL     = "http://localhost:5001"
	DefaultWebURL     = "http://localhost:5173"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
)

// ErrUnsupportedFormat is returned for config files that are neither YAML
// nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// candidateFiles are looked up in the config directory, first match wins.
var candidateFiles = []string{"config.yaml", "config.yml", "config.toml"}

// Config is the top-level configuration.
type Config struct {
	APIURL  string      `yaml:"api_url" toml:"api_url"`
	WebURL  string      `yaml:"web_url" toml:"web_url"`
	Token   string      `yaml:"token" toml:"token"`
	LogFile string      `yaml:"log_file" toml:"log_file"`
	Cache   CacheConfig `yaml:"cache" toml:"cache"`
	HTTP    HTTPConfig  `yaml:"http" toml:"http"`
	UI      UIConfig    `yaml:"ui" toml:"ui"`
}

// CacheConfig controls the on-disk friends snapshot.
type CacheConfig struct {
	Disabled bool   `yaml:"disabled" toml:"disabled"`
	Path     string `yaml:"path" toml:"path"`
}

// HTTPConfig controls the friends API client.
type HTTPConfig struct {
	// Timeout is a Go duration string, e.g. "10s".
	Timeout    string `yaml:"timeout" toml:"timeout"`
	MaxRetries *int   `yaml:"max_retries" toml:"max_retries"`
}

// UIConfig controls the terminal UI.
type UIConfig struct {
	// Columns fixes the card grid width; 0 picks from the terminal width.
	Columns int `yaml:"columns" toml:"columns"`
}

// Dir returns the config directory: $LINGOFRIENDS_CONFIG_DIR, or
// <user config dir>/lingofriends.
func Dir(getenv func(string) string) (string, error) {
	if d := getenv(DirEnv); d != "" {
		return d, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) Config {
	retries := DefaultMaxRetries
	return Config{
		APIURL:  DefaultAPIURL,
		WebURL:  DefaultWebURL,
		LogFile: filepath.Join(dir, logFileName),
		Cache:   CacheConfig{Path: filepath.Join(dir, cacheFile)},
		HTTP: HTTPConfig{
			Timeout:    DefaultTimeout.String(),
			MaxRetries: &retries,
		},
	}
}

// Load builds the configuration. When path is empty the config directory is
// searched for config.yaml, config.yml or config.toml; a missing file is not
// an error. An explicit path must exist.
func Load(path string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	dir, err := Dir(getenv)
	if err != nil {
		return Config{}, err
	}
	cfg := Default(dir)

	if path == "" {
		path = findConfigFile(dir)
	}
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = Merge(cfg, fileCfg)
	}

	cfg = applyEnv(cfg, getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func findConfigFile(dir string) string {
	for _, name := range candidateFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadFile decodes a single config file, choosing the format by extension.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge overlays the non-zero fields of overlay onto base.
func Merge(base, overlay Config) Config {
	out := base
	if overlay.APIURL != "" {
		out.APIURL = overlay.APIURL
	}
	if overlay.WebURL != "" {
		out.WebURL = overlay.WebURL
	}
	if overlay.Token != "" {
		out.Token = overlay.Token
	}
	if overlay.LogFile != "" {
		out.LogFile = overlay.LogFile
	}
	if overlay.Cache.Disabled {
		out.Cache.Disabled = true
	}
	if overlay.Cache.Path != "" {
		out.Cache.Path = overlay.Cache.Path
	}
	if overlay.HTTP.Timeout != "" {
		out.HTTP.Timeout = overlay.HTTP.Timeout
	}
	if overlay.HTTP.MaxRetries != nil {
		out.HTTP.MaxRetries = overlay.HTTP.MaxRetries
	}
	if overlay.UI.Columns != 0 {
		out.UI.Columns = overlay.UI.Columns
	}
	return out
}

func applyEnv(cfg Config, getenv func(string) string) Config {
	return Merge(cfg, Config{
		APIURL:  getenv(APIURLEnv),
		WebURL:  getenv(WebURLEnv),
		Token:   getenv(TokenEnv),
		LogFile: getenv(LogFileEnv),
		Cache:   CacheConfig{Disabled: isTrue(getenv(NoCacheEnv))},
	})
}

func isTrue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api_url must not be empty")
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if c.HTTP.MaxRetries != nil && *c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must be >= 0, got %d", *c.HTTP.MaxRetries)
	}
	if c.UI.Columns < 0 || c.UI.Columns > 3 {
		return fmt.Errorf("ui.columns must be between 0 and 3, got %d", c.UI.Columns)
	}
	return nil
}

// Timeout parses HTTP.Timeout.
func (c Config) Timeout() (time.Duration, error) {
	if c.HTTP.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return 0, fmt.Errorf("http.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("http.timeout must be positive, got %s", d)
	}
	return d, nil
}

// Retries returns the configured retry count.
func (c Config) Retries() int {
	if c.HTTP.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *c.HTTP.MaxRetries
}
