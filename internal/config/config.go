// Package config loads process settings from REALMS_* environment
// variables. Command-line flags registered with RegisterFlags take
// precedence over the environment.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gabrilend/gen-realms/internal/game"
	"github.com/gabrilend/gen-realms/internal/store"
	"github.com/gabrilend/gen-realms/internal/store/sqlite"
)

// Config holds the settings shared by every realms binary.
type Config struct {
	Port        int    `env:"REALMS_PORT" envDefault:"7777"`
	WebPort     int    `env:"REALMS_WEB_PORT" envDefault:"8080"`
	DataPath    string `env:"REALMS_DATA"` // SQLite file; empty keeps matches in memory
	CatalogPath string `env:"REALMS_CATALOG"`
	DecksPath   string `env:"REALMS_DECKS"`
	LogLevel    string `env:"REALMS_LOG_LEVEL" envDefault:"info"`
	Seed        uint64 `env:"REALMS_SEED"`
	Players     int    `env:"REALMS_PLAYERS" envDefault:"2"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration described by the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RegisterFlags binds the settings to fs, using the current values as
// defaults so that flags override the environment.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Port, "port", c.Port, "TCP port of the match server")
	fs.IntVar(&c.WebPort, "web-port", c.WebPort, "HTTP port of the web UI")
	fs.StringVar(&c.DataPath, "data", c.DataPath, "SQLite file for saved matches (memory when empty)")
	fs.StringVar(&c.CatalogPath, "catalog", c.CatalogPath, "card catalog YAML (built-in cards when empty)")
	fs.StringVar(&c.DecksPath, "decks", c.DecksPath, "YAML file of alternative starting decks")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "shuffle seed (random when 0)")
	fs.IntVar(&c.Players, "players", c.Players, "number of seats")
}

// Catalog loads the configured card catalog, or the built-in one.
func (c Config) Catalog() (*game.Catalog, error) {
	if c.CatalogPath == "" {
		return game.DefaultCatalog(), nil
	}
	cat, err := game.LoadCatalog(c.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// Logger builds the operational logger. Output goes to stderr so that
// stdout stays free for game text and the MCP stdio transport.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	return zc.Build()
}

// Store opens the match store: SQLite when a data path is set, memory
// otherwise. The returned function releases it.
func (c Config) Store() (store.Store, func() error, error) {
	if c.DataPath == "" {
		return store.NewMemory(), func() error { return nil }, nil
	}
	st, err := sqlite.Open(c.DataPath)
	if err != nil {
		return nil, nil, err
	}
	return st, st.Close, nil
}
