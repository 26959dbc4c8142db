// Package config loads the masonry application configuration.
//
// The configuration is an optional TOML file. Every value has a default,
// so a missing file is equivalent to an empty one:
//
//	[layout]
//	column_spacing    = 10
//	interitem_spacing = 10
//
//	[server]
//	addr          = ":8080"
//	read_timeout  = "10s"
//	write_timeout = "30s"
//
//	[store]
//	backend   = "redis"
//	redis_addr = "localhost:6379"
//	namespace = "masonry:"
//	ttl       = "720h"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/store"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

const appName = "masonry"

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultMaxBodyBytes = 1 << 20
)

// Config is the application configuration.
type Config struct {
	Layout waterfall.Config `toml:"layout"`
	Server Server           `toml:"server"`
	Store  store.Config     `toml:"store"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	c := Config{Layout: waterfall.DefaultConfig()}
	c.SetDefaults()
	return c
}

// SetDefaults fills zero server and store values.
func (c *Config) SetDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	c.Store.SetDefaults()
}

// Validate rejects values that cannot work.
func (c *Config) Validate() error {
	if c.Layout.ColumnSpacing < 0 || c.Layout.InteritemSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout spacing must not be negative")
	}
	if c.Layout.HeaderHeight < 0 || c.Layout.FooterHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout header and footer heights must not be negative")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeouts must not be negative")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server max_body_bytes must not be negative")
	}
	return c.Store.Validate()
}

// Path returns the default config file location,
// $XDG_CONFIG_HOME/masonry/config.toml or ~/.config/masonry/config.toml.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path. An empty path means [Path]. A missing
// file at the default location yields the defaults; a missing file that was
// named explicitly is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	c := Config{Layout: waterfall.DefaultConfig()}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
