// Package config loads conch settings from defaults, an optional config
// file and CONCH_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	clog "github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"conch/internal/storage"
)

// Config holds application configuration.
type Config struct {
	Prompt         string        `mapstructure:"prompt" json:"prompt"`
	Title          string        `mapstructure:"title" json:"title"`
	MaxInputLength int           `mapstructure:"max_input_length" json:"max_input_length"`
	Storage        StorageConfig `mapstructure:"storage" json:"storage"`
	Log            LogConfig     `mapstructure:"log" json:"log"`
}

// StorageConfig selects where console records are kept.
type StorageConfig struct {
	Backend   string `mapstructure:"backend" json:"backend"`
	Dir       string `mapstructure:"dir" json:"dir"`
	LinesKey  string `mapstructure:"lines_key" json:"lines_key"`
	StacksKey string `mapstructure:"stacks_key" json:"stacks_key"`
	// Watch reloads the console when another process rewrites the records.
	Watch bool `mapstructure:"watch" json:"watch"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	dir, err := DataDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), "conch")
	}
	return Config{
		Prompt:         "> guest@conch:~$",
		Title:          "conch",
		MaxInputLength: 100,
		Storage: StorageConfig{
			Backend:   storage.BackendDiskv,
			Dir:       dir,
			LinesKey:  "lines",
			StacksKey: "stacks",
		},
		Log: LogConfig{Level: "info"},
	}
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("prompt", d.Prompt)
	v.SetDefault("title", d.Title)
	v.SetDefault("max_input_length", d.MaxInputLength)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.lines_key", d.Storage.LinesKey)
	v.SetDefault("storage.stacks_key", d.Storage.StacksKey)
	v.SetDefault("storage.watch", d.Storage.Watch)
	v.SetDefault("log.level", d.Log.Level)
}

// Load reads configuration from file and env. Env var overrides use prefix
// CONCH_, with "." in keys replaced by "_" (CONCH_STORAGE_BACKEND).
// A missing config file is not an error.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CONCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if _, statErr := os.Stat(path); statErr == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Storage.Backend) {
	case storage.BackendDiskv, storage.BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend))
	}
	if strings.TrimSpace(c.Storage.Dir) == "" {
		errs = append(errs, errors.New("storage.dir: must not be empty"))
	}
	if c.Storage.LinesKey == "" || c.Storage.StacksKey == "" {
		errs = append(errs, errors.New("storage: record keys must not be empty"))
	} else if c.Storage.LinesKey == c.Storage.StacksKey {
		errs = append(errs, errors.New("storage: lines_key and stacks_key must differ"))
	}
	if c.Log.Level != "" {
		if _, err := clog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}
	if c.MaxInputLength <= 0 {
		errs = append(errs, fmt.Errorf("max_input_length: must be positive, got %d", c.MaxInputLength))
	}
	return errors.Join(errs...)
}

// Save writes cfg to the config file, creating its directory if needed, and
// returns the path written.
func Save(cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	path, err := Path()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}
	v.Set("prompt", cfg.Prompt)
	v.Set("title", cfg.Title)
	v.Set("max_input_length", cfg.MaxInputLength)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.dir", cfg.Storage.Dir)
	v.Set("storage.lines_key", cfg.Storage.LinesKey)
	v.Set("storage.stacks_key", cfg.Storage.StacksKey)
	v.Set("storage.watch", cfg.Storage.Watch)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
