package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/justyntemme/bookshelf/internal/catalog"
	"github.com/justyntemme/bookshelf/internal/storage"
)

// DefaultSecret signs profile cookies when no secret is configured
const DefaultSecret = "bookshelf-default-secret-change-in-production"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Store   StoreConfig   `mapstructure:"store"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CatalogConfig holds remote catalog configuration
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// StoreConfig selects the key-value backend
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite", "bolt" or "memory"
	Path   string `mapstructure:"path"`
}

// AuthConfig holds profile cookie configuration
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Catalog: CatalogConfig{
			BaseURL:           catalog.DefaultBaseURL,
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
		},
		Store: StoreConfig{
			Driver: storage.DriverSQLite,
			Path:   filepath.Join("data", "bookshelf.db"),
		},
		Auth: AuthConfig{
			Secret: DefaultSecret,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// defaultConfigPath returns the per-user config directory
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bookshelf")
}

// Load reads configuration from an explicit file, or from config.yaml in
// the working directory or ~/.config/bookshelf, then applies BOOKSHELF_*
// environment overrides (BOOKSHELF_SERVER_ADDR, BOOKSHELF_STORE_DRIVER, ...).
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := defaultConfigPath(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix("BOOKSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)
	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)
	v.SetDefault("catalog.requests_per_second", cfg.Catalog.RequestsPerSecond)
	v.SetDefault("store.driver", cfg.Store.Driver)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("auth.secret", cfg.Auth.Secret)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}

// Validate checks values that would otherwise fail at first use
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case storage.DriverSQLite, storage.DriverBolt, storage.DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Store.Driver != storage.DriverMemory && strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store.path is required")
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret must not be empty")
	}
	if strings.TrimSpace(c.Catalog.BaseURL) == "" {
		return errors.New("catalog.base_url must not be empty")
	}
	return nil
}

// UsesDefaultSecret reports whether profile cookies are signed with the
// built-in secret
func (c *Config) UsesDefaultSecret() bool {
	return c.Auth.Secret == DefaultSecret
}
