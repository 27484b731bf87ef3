package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	App    AppConfig
	Store  StoreConfig
	Loader LoaderConfig
	UI     UIConfig
	Log    LogConfig
}

// AppConfig names the application; the id prefixes every progress key.
type AppConfig struct {
	ID string
}

// StoreConfig selects the progress backend.
type StoreConfig struct {
	Backend   string
	Path      string
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
}

// LoaderConfig holds descriptor fetch settings.
type LoaderConfig struct {
	Timeout time.Duration
}

// UIConfig holds presentation settings.
type UIConfig struct {
	MediaBase     string `mapstructure:"media_base"`
	ReducedMotion bool   `mapstructure:"reduced_motion"`
}

// LogConfig holds logger settings. An empty path logs to stderr.
type LogConfig struct {
	Mode string
	Path string
}

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// Load reads configuration from file and env. Env var overrides use prefix SKILLBUILDER_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("app.id", "kbm_sb")
	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.path", filepath.Join(home, ".local", "share", "skillbuilder", "progress.db"))
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("loader.timeout", 10*time.Second)
	v.SetDefault("ui.media_base", "media/")
	v.SetDefault("ui.reduced_motion", false)
	v.SetDefault("log.mode", "dev")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "skillbuilder", "skillbuilder.log"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SKILLBUILDER_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "skillbuilder"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SKILLBUILDER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil && cfgPath != "" {
		return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings no component can work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.App.ID) == "" {
		return fmt.Errorf("config: app.id must not be empty")
	}
	switch c.Store.Backend {
	case BackendSQLite, BackendFile:
		if strings.TrimSpace(c.Store.Path) == "" {
			return fmt.Errorf("config: store.path required for %s backend", c.Store.Backend)
		}
	case BackendRedis:
		if strings.TrimSpace(c.Store.RedisAddr) == "" {
			return fmt.Errorf("config: store.redis_addr required for redis backend")
		}
	case BackendMemory, BackendNone:
	default:
		return fmt.Errorf("config: unknown store.backend %q", c.Store.Backend)
	}
	if c.Loader.Timeout <= 0 {
		return fmt.Errorf("config: loader.timeout must be positive")
	}
	return nil
}
