package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API      APIConfig
	Identity IdentityConfig
	UI       UIConfig
	Log      LogConfig
}

// APIConfig holds marketplace backend settings.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	TokenAddress   string `mapstructure:"token_address"`
}

// IdentityConfig is the chat-platform identity presented to the backend.
// In the embedded mini-app this arrives from the host; the terminal client
// reads it from config or env.
type IdentityConfig struct {
	TelegramID int64  `mapstructure:"telegram_id"`
	Username   string `mapstructure:"username"`
	FirstName  string `mapstructure:"first_name"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DebounceMS     int    `mapstructure:"debounce_ms"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// LogConfig holds file-log settings. The TUI owns the terminal, so logs
// go to a rotating file instead of stderr.
type LogConfig struct {
	Path       string `mapstructure:"path"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// BAZAAR_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "https://debazaar.click/api")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.token_address", "0x1234567890123456789012345678901234567890")
	v.SetDefault("identity.telegram_id", 0)
	v.SetDefault("identity.username", "")
	v.SetDefault("identity.first_name", "")
	v.SetDefault("ui.debounce_ms", 300)
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "bazaar", "bazaar.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BAZAAR_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "bazaar"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BAZAAR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Path returns the config file location, honoring the BAZAAR_CONFIG
// override.
func Path() string {
	if p := os.Getenv("BAZAAR_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "bazaar", "config.toml")
}

// Save writes the provided config to disk, creating the config directory
// if needed. First run uses it to leave a starter file behind for editing.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout_seconds", cfg.API.TimeoutSeconds)
	v.Set("api.token_address", cfg.API.TokenAddress)
	v.Set("identity.telegram_id", cfg.Identity.TelegramID)
	v.Set("identity.username", cfg.Identity.Username)
	v.Set("identity.first_name", cfg.Identity.FirstName)
	v.Set("ui.debounce_ms", cfg.UI.DebounceMS)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.Set("log.max_backups", cfg.Log.MaxBackups)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
