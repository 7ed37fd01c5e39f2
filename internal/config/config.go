// Package config loads the CLI configuration: built-in defaults, then an
// optional YAML file, then TROUPE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/troupe/pkg/ports"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultFile is read when no config path is given and it exists.
const DefaultFile = "troupe.yaml"

// EnvPrefix prefixes environment overrides, e.g. TROUPE_LOG_LEVEL=debug.
const EnvPrefix = "TROUPE_"

type Config struct {
	Log    LogConfig    `koanf:"log"`
	Report ReportConfig `koanf:"report"`
	Store  StoreConfig  `koanf:"store"`
	Server ServerConfig `koanf:"server"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // text or json
}

type ReportConfig struct {
	Format string `koanf:"format"` // text, json or yaml
	Color  string `koanf:"color"`  // auto, always or never
}

// StoreConfig selects the backend of the server_array kinds.
type StoreConfig struct {
	Backend string        `koanf:"backend"` // memory or redis
	Redis   RedisConfig   `koanf:"redis"`
	Arrays  []ArrayConfig `koanf:"arrays"` // seeds the memory backend
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
}

type ArrayConfig struct {
	Name      string            `koanf:"name"`
	Instances int               `koanf:"instances"`
	Template  string            `koanf:"template"`
	Tags      map[string]string `koanf:"tags"`
}

type ServerConfig struct {
	Addr    string `koanf:"addr"`
	Metrics bool   `koanf:"metrics"`
}

func defaults() map[string]any {
	return map[string]any{
		"log.level":          "info",
		"log.format":         "text",
		"report.format":      "text",
		"report.color":       "auto",
		"store.backend":      "memory",
		"store.redis.addr":   "localhost:6379",
		"store.redis.db":     0,
		"store.redis.prefix": "troupe:",
		"server.addr":        ":8080",
		"server.metrics":     true,
	}
}

// Load builds the configuration. An empty path falls back to DefaultFile when
// present; an explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	var errs []error
	check := func(key, value string, allowed ...string) {
		for _, a := range allowed {
			if strings.EqualFold(value, a) {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s: invalid value %q (want one of %s)", key, value, strings.Join(allowed, ", ")))
	}
	check("log.format", c.Log.Format, "text", "json")
	check("report.format", c.Report.Format, "text", "json", "yaml")
	check("report.color", c.Report.Color, "auto", "always", "never")
	check("store.backend", c.Store.Backend, "memory", "redis")
	for i, a := range c.Store.Arrays {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("store.arrays[%d]: missing name", i))
		}
	}
	return errors.Join(errs...)
}

// SeedArrays converts the configured arrays for the memory backend.
func (c *Config) SeedArrays() []*ports.ServerArray {
	out := make([]*ports.ServerArray, 0, len(c.Store.Arrays))
	for _, a := range c.Store.Arrays {
		out = append(out, &ports.ServerArray{
			Name:      a.Name,
			Instances: a.Instances,
			Template:  a.Template,
			Tags:      a.Tags,
		})
	}
	return out
}
