// Package config loads the rev driver configuration from TOML or YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Color modes for diagnostic output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Names searched by Discover, in order.
var DefaultNames = []string{"rev.toml", "rev.yaml", "rev.yml"}

// Config holds the complete driver configuration.
type Config struct {
	Parser   ParserConfig   `toml:"parser" yaml:"parser"`
	Resolver ResolverConfig `toml:"resolver" yaml:"resolver"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
}

// ParserConfig holds parser settings.
type ParserConfig struct {
	MaxErrors   int  `toml:"max_errors" yaml:"max_errors"`
	Trace       bool `toml:"trace" yaml:"trace"`
	VerifySpans bool `toml:"verify_spans" yaml:"verify_spans"`
}

// ResolverConfig holds name resolution settings.
type ResolverConfig struct {
	Globals  []string `toml:"globals" yaml:"globals"`
	Strict   bool     `toml:"strict" yaml:"strict"`
	MaxSlots int      `toml:"max_slots" yaml:"max_slots"`
}

// OutputConfig holds diagnostic output settings.
type OutputConfig struct {
	Color string `toml:"color" yaml:"color"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{Output: OutputConfig{Color: ColorAuto}}
}

// Load reads a configuration file. The format follows the extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}

	if cfg.Output.Color == "" {
		cfg.Output.Color = ColorAuto
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover returns the first of DefaultNames present in dir, or "" when
// there is none.
func Discover(dir string) string {
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Parser.MaxErrors < 0 {
		return fmt.Errorf("parser.max_errors must not be negative, got %d", c.Parser.MaxErrors)
	}
	if c.Resolver.MaxSlots < 0 {
		return fmt.Errorf("resolver.max_slots must not be negative, got %d", c.Resolver.MaxSlots)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color must be one of auto, always, never, got %q", c.Output.Color)
	}
	return nil
}
