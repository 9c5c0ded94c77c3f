package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultReadingsURL is the document the readings command fetches.
const DefaultReadingsURL = "https://hws.dev/readings.json"

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Log      LogConfig      `mapstructure:"log"`
	Readings ReadingsConfig `mapstructure:"readings"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Share    ShareConfig    `mapstructure:"share"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ProfileConfig locates the "Me" profile file.
type ProfileConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging settings. Path "-" logs to stderr; empty discards.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

type ReadingsConfig struct {
	URL string `mapstructure:"url"`
}

// NotifyConfig holds reminder settings. Enabled is the permission grant.
type NotifyConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Delay   time.Duration `mapstructure:"delay"`
}

// ShareConfig holds QR export and share server settings.
type ShareConfig struct {
	ExportPath string `mapstructure:"export_path"`
	Addr       string `mapstructure:"addr"`
	QRSize     int    `mapstructure:"qr_size"`
}

// Load reads configuration from file and env. Env var overrides use prefix HOTPROSPECTS_.
// path overrides the config file location; when empty HOTPROSPECTS_CONFIG is consulted,
// then ~/.config/hotprospects/config.toml.
func Load(path string) (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "hotprospects")
	v.SetDefault("database.path", filepath.Join(dataDir, "hotprospects.db"))
	v.SetDefault("profile.path", filepath.Join(configDir(), "profile.toml"))
	v.SetDefault("log.path", filepath.Join(dataDir, "hotprospects.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("readings.url", DefaultReadingsURL)
	v.SetDefault("notify.enabled", true)
	v.SetDefault("notify.delay", 5*time.Second)
	v.SetDefault("share.export_path", "qrcode.png")
	v.SetDefault("share.addr", "127.0.0.1:8080")
	v.SetDefault("share.qr_size", 256)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("HOTPROSPECTS_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("HOTPROSPECTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing config file is fine; defaults and env still apply
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to path (or the default location), creating
// the config directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = os.Getenv("HOTPROSPECTS_CONFIG")
	}
	if path == "" {
		path = filepath.Join(configDir(), "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("profile.path", cfg.Profile.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("readings.url", cfg.Readings.URL)
	v.Set("notify.enabled", cfg.Notify.Enabled)
	v.Set("notify.delay", cfg.Notify.Delay.String())
	v.Set("share.export_path", cfg.Share.ExportPath)
	v.Set("share.addr", cfg.Share.Addr)
	v.Set("share.qr_size", cfg.Share.QRSize)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func configDir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "hotprospects")
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
