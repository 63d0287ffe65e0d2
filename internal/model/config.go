package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Database driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Session backend names.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// DatabaseConfig selects and locates the record store.
type DatabaseConfig struct {
	// Driver is "sqlite" (local file) or "postgres" (hosted database).
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the SQLite database file.
	Path string `mapstructure:"path" yaml:"path"`

	// URL is the Postgres connection string.
	URL string `mapstructure:"url" yaml:"url"`
}

// SessionConfig controls where sign-in sessions live.
type SessionConfig struct {
	Backend  string        `mapstructure:"backend" yaml:"backend"`
	RedisURL string        `mapstructure:"redis_url" yaml:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`

	// Remember keeps the session token in the OS keyring between runs.
	Remember bool `mapstructure:"remember" yaml:"remember"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme       string `mapstructure:"theme" yaml:"theme"`
	DefaultSort string `mapstructure:"default_sort" yaml:"default_sort"`
}

// HooksConfig tunes the client-side state layer.
type HooksConfig struct {
	// Timeout bounds every remote call issued by a hook.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Session  SessionConfig  `mapstructure:"session" yaml:"session"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
	Hooks    HooksConfig    `mapstructure:"hooks" yaml:"hooks"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// DefaultConfigDir returns ~/.config/checkit.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "checkit")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/checkit/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	dir := DefaultConfigDir()
	return &AppConfig{
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(dir, "checkit.db"),
		},
		Session: SessionConfig{
			Backend:  SessionBackendMemory,
			TTL:      30 * 24 * time.Hour,
			Remember: true,
		},
		Display: DisplayConfig{
			Theme:       "light",
			DefaultSort: "newest",
		},
		Hooks: HooksConfig{
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "checkit.log"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultAppConfig()
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.url", "")
	v.SetDefault("session.backend", d.Session.Backend)
	v.SetDefault("session.redis_url", "")
	v.SetDefault("session.ttl", d.Session.TTL)
	v.SetDefault("session.remember", d.Session.Remember)
	v.SetDefault("display.theme", d.Display.Theme)
	v.SetDefault("display.default_sort", d.Display.DefaultSort)
	v.SetDefault("hooks.timeout", d.Hooks.Timeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// CHECKIT_* environment variables override file values (for example
// CHECKIT_DATABASE_URL). A missing file yields the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("checkit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *AppConfig) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for postgres")
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}

	switch c.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if c.Session.RedisURL == "" {
			return fmt.Errorf("session.redis_url is required for redis")
		}
	default:
		return fmt.Errorf("unknown session.backend %q", c.Session.Backend)
	}

	if c.Hooks.Timeout <= 0 {
		return fmt.Errorf("hooks.timeout must be positive")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("session", cfg.Session)
	v.Set("display", cfg.Display)
	v.Set("hooks", cfg.Hooks)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
