package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "spread"

// Default values applied by the getters.
const (
	DefaultMaxLookahead = 10
	DefaultRatingStep   = 200
	DefaultWorkers      = 8
	maxWorkers          = 64
)

type Config struct {
	MaxLookahead int  `koanf:"max_lookahead"` // repair window bound (default: 10)
	RatingStep   *int `koanf:"rating_step"`   // rating units per extra weight, 0 disables (default: 200)
	Workers      int  `koanf:"workers"`       // tag reading workers (1-64, default: 8)
	AllFiles     bool `koanf:"all_files"`     // keep non-music files found in directories

	// Tag cache settings
	Cache     *bool  `koanf:"cache"`      // default: true
	CachePath string `koanf:"cache_path"` // empty means the XDG cache dir
}

// ShuffleConfig holds the shuffle settings with defaults applied.
type ShuffleConfig struct {
	MaxLookahead int
	RatingStep   int
}

// Load reads the config files in order of priority (last wins), followed by
// any extra paths. Extra paths must exist.
func Load(extra ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}
	for _, path := range extra {
		if err := k.Load(file.Provider(expandPath(path)), toml.Parser()); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.CachePath != "" {
		cfg.CachePath = expandPath(cfg.CachePath)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/spread/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./spread.toml (pwd, highest priority)
		appName + ".toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetShuffleConfig returns the shuffle configuration with defaults applied.
func (c *Config) GetShuffleConfig() ShuffleConfig {
	cfg := ShuffleConfig{
		MaxLookahead: c.MaxLookahead,
		RatingStep:   DefaultRatingStep,
	}
	if cfg.MaxLookahead <= 0 {
		cfg.MaxLookahead = DefaultMaxLookahead
	}
	if c.RatingStep != nil && *c.RatingStep >= 0 {
		cfg.RatingStep = *c.RatingStep
	}
	return cfg
}

// WorkerCount returns the number of tag reading workers.
func (c *Config) WorkerCount() int {
	if c.Workers <= 0 || c.Workers > maxWorkers {
		return DefaultWorkers
	}
	return c.Workers
}

// CacheEnabled returns true unless the tag cache was switched off.
func (c *Config) CacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}
