// Package config resolves settings from the config file, UIDFIELD_* env vars
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "UIDFIELD"
	configFileName = "config.yaml"
)

type Config struct {
	URL         string        `mapstructure:"url"`
	Token       string        `mapstructure:"token"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ContentType string        `mapstructure:"content_type"`
	Format      string        `mapstructure:"format"`
	Pretty      bool          `mapstructure:"pretty"`
	Log         LogConfig     `mapstructure:"log"`
	TUI         TUIConfig     `mapstructure:"tui"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File enables JSON file logging with rotation. Empty disables it.
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

type TUIConfig struct {
	// Theme is the appearance profile id ("default", "neon", "mono").
	Theme string `mapstructure:"theme"`
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `mapstructure:"glyphs"`
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Token != "" {
		c.Token = "********"
	}
	return c
}

// FlagKeys maps persistent flag names to config keys.
var FlagKeys = map[string]string{
	"url":          "url",
	"token":        "token",
	"timeout":      "timeout",
	"content-type": "content_type",
	"format":       "format",
	"pretty":       "pretty",
	"log-level":    "log.level",
	"log-file":     "log.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("url", "http://localhost:1337")
	v.SetDefault("token", "")
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("content_type", "")
	v.SetDefault("format", "json")
	v.SetDefault("pretty", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("tui.theme", "default")
	v.SetDefault("tui.glyphs", "unicode")
}

func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".uidfield"), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

type Loader struct {
	v    *viper.Viper
	path string
}

// Load reads configuration. path overrides the default file location; a
// missing default file is fine, a missing explicit one is an error. flags may
// be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, *Loader, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	v.SetConfigFile(path)
	if _, err := os.Stat(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	l := &Loader{v: v, path: path}
	cfg, err := l.decode()
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.URL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &cfg, nil
}

// Path is the config file the loader reads, whether or not it exists.
func (l *Loader) Path() string { return l.path }

// Watch calls fn with the re-decoded config whenever the file changes.
// Decode failures are passed to fn as err. It reports false when there is no
// file to watch.
func (l *Loader) Watch(fn func(cfg *Config, err error)) bool {
	if _, err := os.Stat(l.path); err != nil {
		return false
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := l.decode()
		fn(cfg, err)
	})
	l.v.WatchConfig()
	return true
}
