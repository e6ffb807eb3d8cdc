// Package config loads srgsearch settings from an optional TOML file.
//
// A config file looks like:
//
//	[search]
//	failure_threshold = 200000
//	strategy = "partial-retention"
//	retention_threshold = 80
//	retain = 50
//	timeout = "10m"
//
//	[store]
//	backend = "file"          # file, redis, mongo or none
//	ttl = "720h"
//
//	[server]
//	addr = ":8080"
//
//	[[preset]]
//	name = "triangular-10"
//	n = 10
//	k = 6
//	lambda = 3
//	mu = 4
//
// Every field is optional. [Default] is the source of truth for values the
// file leaves out; command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/srg"
)

// AppName names the config, cache and data directories.
const AppName = "srgsearch"

// Store backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Duration is a time.Duration that reads and writes as a string like "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the parsed config file.
type Config struct {
	Search  Search   `toml:"search"`
	Store   Store    `toml:"store"`
	Server  Server   `toml:"server"`
	Presets []Preset `toml:"preset"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// Search holds search defaults.
type Search struct {
	FailureThreshold   int      `toml:"failure_threshold"`
	Strategy           string   `toml:"strategy"`
	RetentionThreshold int      `toml:"retention_threshold"`
	Retain             int      `toml:"retain"`
	SeedOnReset        bool     `toml:"seed_on_reset"`
	PinSeeds           bool     `toml:"pin_seeds"`
	MaxIterations      int64    `toml:"max_iterations"`
	Timeout            Duration `toml:"timeout"`
	ProgressEvery      int64    `toml:"progress_every"`
}

// Store selects and configures the result store.
type Store struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Server configures `srgsearch serve`.
type Server struct {
	Addr string `toml:"addr"`

	// Upper bounds a single API request may ask for.
	MaxIterations int64    `toml:"max_iterations"`
	MaxTimeout    Duration `toml:"max_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	def := srg.DefaultOptions()
	return &Config{
		Search: Search{
			FailureThreshold:   def.FailureThreshold,
			Strategy:           def.Backtrack.Strategy.String(),
			RetentionThreshold: def.Backtrack.RetentionThresholdPercent,
			Retain:             def.Backtrack.RetainPercent,
			SeedOnReset:        def.Backtrack.SeedOnReset,
			PinSeeds:           def.PinSeeds,
			ProgressEvery:      def.ProgressEvery,
		},
		Store: Store{
			Backend:         BackendFile,
			TTL:             Duration{30 * 24 * time.Hour},
			RedisAddr:       "localhost:6379",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   AppName,
			MongoCollection: "solutions",
		},
		Server: Server{
			Addr:          ":8080",
			MaxIterations: 50_000_000,
			MaxTimeout:    Duration{2 * time.Minute},
		},
	}
}

// Load reads path on top of [Default]. An empty path falls back to
// [DefaultPath]; a missing default file is not an error, a missing explicit
// file is.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, srgerrors.Wrap(srgerrors.ErrCodeFileNotFound, err, "read config")
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML data into cfg and validates the result. Keys the file
// omits keep the values already in cfg.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return srgerrors.Wrap(srgerrors.ErrCodeInvalidFormat, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return srgerrors.New(srgerrors.ErrCodeInvalidFormat, "unknown config key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate checks the search settings and every preset.
func (c *Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return err
	}
	switch c.Store.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendNone:
	default:
		return srgerrors.New(srgerrors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
	seen := make(map[string]bool)
	for _, p := range c.Presets {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return srgerrors.New(srgerrors.ErrCodeInvalidPreset, "duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// Options converts the [search] table into search options.
func (c *Config) Options() (srg.Options, error) {
	strategy, err := srg.ParseStrategy(c.Search.Strategy)
	if err != nil {
		return srg.Options{}, srgerrors.Wrap(srgerrors.ErrCodeInvalidInput, err, "search.strategy")
	}
	opts := srg.DefaultOptions()
	opts.FailureThreshold = c.Search.FailureThreshold
	opts.Backtrack = srg.BacktrackPolicy{
		Strategy:                  strategy,
		RetentionThresholdPercent: c.Search.RetentionThreshold,
		RetainPercent:             c.Search.Retain,
		SeedOnReset:               c.Search.SeedOnReset,
	}
	opts.PinSeeds = c.Search.PinSeeds
	opts.MaxIterations = c.Search.MaxIterations
	opts.MaxDuration = c.Search.Timeout.Duration
	if c.Search.ProgressEvery > 0 {
		opts.ProgressEvery = c.Search.ProgressEvery
	}
	if err := opts.Validate(); err != nil {
		return srg.Options{}, srgerrors.Wrap(srgerrors.ErrCodeInvalidInput, err, "search options")
	}
	return opts, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/srgsearch/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// StoreDir returns the file store directory: the configured dir, or
// $XDG_DATA_HOME/srgsearch/solutions (~/.local/share when unset).
func (c *Config) StoreDir() (string, error) {
	if c.Store.Dir != "" {
		return c.Store.Dir, nil
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "solutions"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", AppName, "solutions"), nil
}
