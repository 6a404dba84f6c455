// Package config loads the eventorbit configuration from
// ~/.eventorbit/config.yaml and the session secret from the .env file next
// to it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	dirName  = ".eventorbit"
	fileName = "config.yaml"

	// SessionEnv holds the backend session cookie value.
	SessionEnv = "EVENTORBIT_SESSION"
	// BaseURLEnv overrides api.base_url.
	BaseURLEnv = "EVENTORBIT_API_URL"

	defaultBaseURL       = "https://api.eventorbit.app"
	defaultSessionCookie = "connect.sid"
	defaultTimeout       = 15
	defaultWeekStart     = "monday"
	defaultLogLevel      = "warn"
)

// APIConfig configures the backend client.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	SessionCookie  string `yaml:"session_cookie"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Session        string `yaml:"-"` // loaded from environment
}

// Config is the on-disk configuration.
type Config struct {
	API       APIConfig `yaml:"api"`
	Timezone  string    `yaml:"timezone"`
	WeekStart string    `yaml:"week_start"`
	LogLevel  string    `yaml:"log_level"`
}

// Dir returns the eventorbit directory under homeDir.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, dirName)
}

// Path returns the config file path under homeDir.
func Path(homeDir string) string {
	return filepath.Join(Dir(homeDir), fileName)
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        defaultBaseURL,
			SessionCookie:  defaultSessionCookie,
			TimeoutSeconds: defaultTimeout,
		},
		WeekStart: defaultWeekStart,
		LogLevel:  defaultLogLevel,
	}
}

// Normalize fills in missing or unusable values with defaults.
func (c *Config) Normalize() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURL
	}
	if c.API.SessionCookie == "" {
		c.API.SessionCookie = defaultSessionCookie
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = defaultTimeout
	}
	switch c.WeekStart {
	case "monday", "sunday":
	default:
		c.WeekStart = defaultWeekStart
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			c.Timezone = ""
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

// Timeout returns the API timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Zone returns the IANA zone new time slots are tagged with: the configured
// one, or the local zone.
func (c *Config) Zone() string {
	if c.Timezone != "" {
		return c.Timezone
	}
	if name := time.Local.String(); name != "Local" {
		return name
	}
	return "UTC"
}

// FirstWeekday returns the first column of calendar grids.
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return lvl
}

// Load reads the config at path. A missing file is created with defaults.
// The .env file next to it is loaded first; variables already set in the
// environment win.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	var cfg *Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		cfg = &Config{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
		cfg.Normalize()
	}

	cfg.API.Session = os.Getenv(SessionEnv)
	if u := os.Getenv(BaseURLEnv); u != "" {
		cfg.API.BaseURL = u
	}

	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
