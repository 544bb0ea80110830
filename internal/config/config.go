// Package config loads memory subsystem configuration from a YAML file and
// the environment. Precedence: flags (applied by the CLI) > environment >
// file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeroclaw/memory/internal/lucid"
)

// Config is the full subsystem configuration.
type Config struct {
	DBPath    string `yaml:"db_path"`
	Workspace string `yaml:"workspace"`
	LogLevel  string `yaml:"log_level"`
	Lucid     Lucid  `yaml:"lucid"`
}

// Lucid holds the distributed-context knobs.
type Lucid struct {
	Command           string   `yaml:"command"`
	Budget            int      `yaml:"budget"`
	LocalHitThreshold int      `yaml:"local_hit_threshold"`
	SyncTimeout       Duration `yaml:"sync_timeout"`
	RecallTimeout     Duration `yaml:"recall_timeout"`
	FailureCooldown   Duration `yaml:"failure_cooldown"`
}

// Duration parses YAML values like "800ms" or "10s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Default returns the stock configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	opts := lucid.DefaultOptions()
	return &Config{
		DBPath:   filepath.Join(home, ".zeroclaw", "memory.db"),
		LogLevel: "info",
		Lucid: Lucid{
			Command:           opts.Command,
			Budget:            opts.Budget,
			LocalHitThreshold: opts.LocalHitThreshold,
			SyncTimeout:       Duration(opts.SyncTimeout),
			RecallTimeout:     Duration(opts.RecallTimeout),
			FailureCooldown:   Duration(opts.FailureCooldown),
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".zeroclaw", "memory.yaml")
}

// Load reads the config file at path (tolerating a missing file) and applies
// environment overrides on top of defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// optional file
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ZEROCLAW_MEMORY_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("ZEROCLAW_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ZEROCLAW_LUCID_CMD"); v != "" {
		c.Lucid.Command = v
	}
	if v := os.Getenv("ZEROCLAW_LUCID_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Lucid.LocalHitThreshold = n
		}
	}
}

// Options converts the lucid section into engine options.
func (l Lucid) Options() lucid.Options {
	return lucid.Options{
		Command:           l.Command,
		Budget:            l.Budget,
		LocalHitThreshold: l.LocalHitThreshold,
		SyncTimeout:       time.Duration(l.SyncTimeout),
		RecallTimeout:     time.Duration(l.RecallTimeout),
		FailureCooldown:   time.Duration(l.FailureCooldown),
	}
}
