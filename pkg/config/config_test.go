package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/srg"
)

func TestDefaultMatchesSearchDefaults(t *testing.T) {
	opts, err := Default().Options()
	if err != nil {
		t.Fatalf("Options() error: %v", err)
	}
	def := srg.DefaultOptions()
	if opts.FailureThreshold != def.FailureThreshold {
		t.Errorf("FailureThreshold = %d, want %d", opts.FailureThreshold, def.FailureThreshold)
	}
	if opts.Backtrack != def.Backtrack {
		t.Errorf("Backtrack = %+v, want %+v", opts.Backtrack, def.Backtrack)
	}
	if !opts.PinSeeds {
		t.Error("PinSeeds should default to true")
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[search]
failure_threshold = 5000
strategy = "full-reset"
seed_on_reset = true
timeout = "90s"

[store]
backend = "redis"
redis_addr = "cache:6379"
ttl = "1h"

[server]
addr = ":9090"

[[preset]]
name = "triangular-10"
description = "T(5)"
n = 10
k = 6
lambda = 3
mu = 4
`)
	cfg := Default()
	if err := Parse(data, cfg); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Search.FailureThreshold != 5000 {
		t.Errorf("FailureThreshold = %d, want 5000", cfg.Search.FailureThreshold)
	}
	if cfg.Search.Timeout.Duration != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Search.Timeout)
	}
	if cfg.Search.Retain != 50 {
		t.Errorf("Retain = %d, want default 50", cfg.Search.Retain)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Store.RedisAddr != "cache:6379" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Store.TTL.Duration != time.Hour {
		t.Errorf("TTL = %v, want 1h", cfg.Store.TTL)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Presets) != 1 || cfg.Presets[0].Spec() != (srg.Spec{N: 10, K: 6, Lambda: 3, Mu: 4}) {
		t.Errorf("Presets = %+v", cfg.Presets)
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options() error: %v", err)
	}
	if opts.Backtrack.Strategy != srg.FullReset || !opts.Backtrack.SeedOnReset {
		t.Errorf("Backtrack = %+v", opts.Backtrack)
	}
	if opts.MaxDuration != 90*time.Second {
		t.Errorf("MaxDuration = %v", opts.MaxDuration)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code srgerrors.Code
	}{
		{"syntax", "[search", srgerrors.ErrCodeInvalidFormat},
		{"unknown key", "[search]\nthreshold = 3", srgerrors.ErrCodeInvalidFormat},
		{"bad duration", "[search]\ntimeout = \"soon\"", srgerrors.ErrCodeInvalidFormat},
		{"bad strategy", "[search]\nstrategy = \"random\"", srgerrors.ErrCodeInvalidInput},
		{"retain 100", "[search]\nretain = 100", srgerrors.ErrCodeInvalidInput},
		{"bad backend", "[store]\nbackend = \"s3\"", srgerrors.ErrCodeInvalidInput},
		{"bad preset name", "[[preset]]\nname = \"Bad Name\"\nn = 5\nk = 2\nmu = 1", srgerrors.ErrCodeInvalidPreset},
		{"bad preset spec", "[[preset]]\nname = \"x\"\nn = 5\nk = 7", srgerrors.ErrCodeInvalidPreset},
		{"bad preset seed", "[[preset]]\nname = \"x\"\nn = 5\nk = 2\nmu = 1\nseeds = [[0, 1, 1, 1, 0]]", srgerrors.ErrCodeInvalidPreset},
		{"duplicate preset", "[[preset]]\nname = \"x\"\nn = 5\nk = 2\nmu = 1\n[[preset]]\nname = \"x\"\nn = 5\nk = 2\nmu = 1", srgerrors.ErrCodeInvalidPreset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Parse([]byte(tt.data), Default())
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !srgerrors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", srgerrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// Missing default file falls back to defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}

	// Missing explicit file is an error.
	if _, err := Load(filepath.Join(dir, "missing.toml")); !srgerrors.Is(err, srgerrors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v", err)
	}

	// The default path is picked up.
	path := filepath.Join(dir, AppName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[server]\naddr = \":1234\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Path != path || cfg.Server.Addr != ":1234" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestStoreDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	cfg := Default()
	dir, err := cfg.StoreDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/data", AppName, "solutions") {
		t.Errorf("StoreDir() = %q", dir)
	}

	cfg.Store.Dir = "/custom"
	if dir, _ := cfg.StoreDir(); dir != "/custom" {
		t.Errorf("StoreDir() = %q, want /custom", dir)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatal(err)
	}
	if d.Duration != 90*time.Second {
		t.Errorf("Duration = %v", d.Duration)
	}
	text, _ := d.MarshalText()
	if string(text) != "1m30s" {
		t.Errorf("MarshalText() = %q", text)
	}
}
