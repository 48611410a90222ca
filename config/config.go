// Package config loads dispatcher settings from YAML and the environment.
//
// A file names the supported types by registry key, in order, plus the
// behaviour for types without an action:
//
//	types: [shape.circle, shape.square, shape.triangle]
//	onUnhandled: log   # ignore | log | error
//	logLevel: debug    # debug | info | warn | error
//
// Environment variables override file values:
//
//	TYPEVISIT_ON_UNHANDLED, TYPEVISIT_LOG_LEVEL
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sghaida/typevisit/typelist"
	"github.com/sghaida/typevisit/visit"
)

const (
	// EnvOnUnhandled overrides Config.OnUnhandled.
	EnvOnUnhandled = "TYPEVISIT_ON_UNHANDLED"

	// EnvLogLevel overrides Config.LogLevel.
	EnvLogLevel = "TYPEVISIT_LOG_LEVEL"
)

// Config describes one dispatcher: the registry names of its types in
// declaration order, the unhandled-type policy and the log level.
type Config struct {
	Types       []string `yaml:"types"`
	OnUnhandled string   `yaml:"onUnhandled"`
	LogLevel    string   `yaml:"logLevel"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{OnUnhandled: "ignore", LogLevel: "info"}
}

// Load decodes YAML from r on top of Default. Unknown keys are rejected.
// An empty document yields Default.
func Load(r io.Reader) (Config, error) {
	cfg, err := decode(r)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// LoadFile reads path, applies environment overrides and validates the
// result, so the environment can correct a bad file value.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := decode(bytes.NewReader(raw))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg = cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// ApplyEnv returns c with non-empty environment overrides applied.
func (c Config) ApplyEnv() Config {
	c.OnUnhandled = getenv(EnvOnUnhandled, c.OnUnhandled)
	c.LogLevel = getenv(EnvLogLevel, c.LogLevel)
	return c
}

// Validate checks that enumerated values parse and type names are unique.
func (c Config) Validate() error {
	if _, err := visit.ParsePolicy(c.OnUnhandled); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	seen := make(map[string]int, len(c.Types))
	for i, name := range c.Types {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("config: types[%d] is empty", i)
		}
		if j, dup := seen[name]; dup {
			return fmt.Errorf("config: types[%d] and types[%d] both name %q", j, i, name)
		}
		seen[name] = i
	}
	return nil
}

// TypeList resolves the configured names through reg.
func (c Config) TypeList(reg typelist.Registry) (typelist.TypeList, error) {
	return typelist.FromNames(reg, c.Types...)
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	lvl, err := c.level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Options returns dispatcher options using logger for PolicyLog records.
func (c Config) Options(logger *slog.Logger) (visit.Options, error) {
	p, err := visit.ParsePolicy(c.OnUnhandled)
	if err != nil {
		return visit.Options{}, fmt.Errorf("config: %w", err)
	}
	return visit.Options{OnUnhandled: p, Logger: logger}, nil
}

// Dispatcher builds a dispatcher over the configured types.
func (c Config) Dispatcher(reg typelist.Registry, logger *slog.Logger, actions ...visit.Action) (*visit.Dispatcher, error) {
	list, err := c.TypeList(reg)
	if err != nil {
		return nil, err
	}
	opts, err := c.Options(logger)
	if err != nil {
		return nil, err
	}
	return visit.NewWith(list, opts, actions...)
}

func (c Config) level() (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: logLevel: %w", err)
	}
	return lvl, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
