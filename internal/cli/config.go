package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boxsize/pkg/errors"
)

// Config holds defaults read from the config file. Explicit flags override
// every field.
//
//	width = 1280
//	height = 720
//	mode = "natural"
//
//	[cache]
//	ttl = "1h"
//
//	[redis]
//	addr = "localhost:6379"
//	prefix = "boxsize:"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Mode   string `toml:"mode"`

	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig configures the local file cache.
type CacheConfig struct {
	Disabled bool          `toml:"disabled"`
	Dir      string        `toml:"dir"`
	TTL      time.Duration `toml:"ttl"`
}

// RedisConfig configures the shared cache used by the HTTP service.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
	Timeout      time.Duration `toml:"timeout"`
}

// defaultRedisPrefix scopes keys when the config names a Redis server but
// no prefix.
const defaultRedisPrefix = appName + ":"

// loadConfig reads the config file at path. An empty path selects the
// default location, which may be absent; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Redis.Addr != "" && cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = defaultRedisPrefix
	}
	return cfg, nil
}

// configDir returns the config directory using XDG standard (~/.config/boxsize/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
