// Package config provides configuration management for assetctl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Store    StoreConfig    `mapstructure:"store"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ProviderConfig selects and configures the market-data source.
type ProviderConfig struct {
	Source string      `mapstructure:"source"` // "yahoo" or "kite"
	Yahoo  YahooConfig `mapstructure:"yahoo"`
	Kite   KiteConfig  `mapstructure:"kite"`
}

// YahooConfig configures the Yahoo Finance chart API transport.
type YahooConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

// KiteConfig holds Kite Connect credentials and routing.
type KiteConfig struct {
	APIKey      string `mapstructure:"api_key"`
	AccessToken string `mapstructure:"access_token"`
	Exchange    string `mapstructure:"exchange"`
}

// StoreConfig configures the local quote cache.
type StoreConfig struct {
	Path   string        `mapstructure:"path"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	File     bool   `mapstructure:"file"`
	FilePath string `mapstructure:"file_path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/assetctl"
	}
	return filepath.Join(home, ".config", "assetctl")
}

// Load loads configuration from the specified directory, falling back to
// defaults when no config file exists. If configDir is empty, the default
// directory is used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("provider.source", "yahoo")
	v.SetDefault("provider.yahoo.timeout", 10*time.Second)
	v.SetDefault("provider.yahoo.max_attempts", 3)
	v.SetDefault("provider.kite.exchange", "NSE")
	v.SetDefault("store.path", filepath.Join(configDir, "quotes.db"))
	v.SetDefault("store.max_age", 7*24*time.Hour)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "assetctl.log"))
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KITE_API_KEY"); v != "" {
		cfg.Provider.Kite.APIKey = v
	}
	if v := os.Getenv("KITE_ACCESS_TOKEN"); v != "" {
		cfg.Provider.Kite.AccessToken = v
	}
	if v := os.Getenv("ASSETCTL_PROVIDER"); v != "" {
		cfg.Provider.Source = v
	}
	if v := os.Getenv("ASSETCTL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Provider.Source {
	case "yahoo", "kite":
	default:
		return fmt.Errorf("invalid provider source: %s (must be 'yahoo' or 'kite')", c.Provider.Source)
	}
	if c.Provider.Source == "kite" && c.Provider.Kite.APIKey == "" {
		return fmt.Errorf("provider source 'kite' requires kite.api_key (or KITE_API_KEY)")
	}
	if c.Provider.Yahoo.MaxAttempts < 1 {
		return fmt.Errorf("yahoo.max_attempts must be at least 1")
	}
	if c.Store.MaxAge < 0 {
		return fmt.Errorf("store.max_age must be non-negative")
	}
	return nil
}
