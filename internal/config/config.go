// Package config loads runtime configuration from an optional YAML file and
// CARELENS_-prefixed environment variables, with env taking precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/carelens/carelens/internal/core/ports"
)

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Source  SourceConfig  `koanf:"source"`
	Storage StorageConfig `koanf:"storage"`
	Assist  AssistConfig  `koanf:"assist"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

// SourceConfig selects where patient history comes from.
type SourceConfig struct {
	// Backend is "fixtures" or "sqlite".
	Backend string `koanf:"backend"`
	// Mode selects the fixture set when Backend is "fixtures".
	Mode string `koanf:"mode"`
}

type StorageConfig struct {
	// DSN is the SQLite data source name when the sqlite backend is used.
	DSN string `koanf:"dsn"`
}

type AssistConfig struct {
	// ReferenceNow pins the reasoning clock to a fixed RFC 3339 instant.
	// Empty means the server uses the current time at each request.
	ReferenceNow string `koanf:"reference_now"`
}

const (
	BackendFixtures = "fixtures"
	BackendSQLite   = "sqlite"
)

// Load reads configuration. The file named by CARELENS_CONFIG (if set) is
// loaded first, then environment variables override it. Double underscores in
// env names become key separators: CARELENS_SERVER__PORT sets server.port.
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("CARELENS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("CARELENS_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "CARELENS_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("source.backend") {
		k.Set("source.backend", BackendFixtures)
	}
	if !k.Exists("source.mode") {
		k.Set("source.mode", string(ports.ModeLive))
	}
	if !k.Exists("storage.dsn") {
		k.Set("storage.dsn", "carelens.db")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Source.Backend {
	case BackendFixtures, BackendSQLite:
	default:
		return fmt.Errorf("unknown source backend %q", c.Source.Backend)
	}

	switch ports.SourceMode(c.Source.Mode) {
	case ports.ModeLive, ports.ModeShadow:
	default:
		return fmt.Errorf("unknown source mode %q", c.Source.Mode)
	}

	if c.Assist.ReferenceNow != "" {
		if _, err := time.Parse(time.RFC3339, c.Assist.ReferenceNow); err != nil {
			return fmt.Errorf("invalid assist.reference_now: %w", err)
		}
	}

	return nil
}

// ReferenceTime returns the pinned reasoning instant, or ok=false when the
// server should use the current time.
func (c *Config) ReferenceTime() (time.Time, bool) {
	if c.Assist.ReferenceNow == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, c.Assist.ReferenceNow)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
