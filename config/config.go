// Package config loads classdump's settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/dhamidi/classreader/format"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the file looked up in the working directory when no path is
// given.
const FileName = "classdump.toml"

type Config struct {
	Output Output `toml:"output"`
	Log    Log    `toml:"log"`
}

type Output struct {
	// Format is one of text, line, json or yaml.
	Format string `toml:"format"`

	// Color is auto, always or never.
	Color string `toml:"color"`

	// Disassemble adds decoded instructions to every method body.
	Disassemble bool `toml:"disassemble"`

	// ConstantPool appends the constant pool.
	ConstantPool bool `toml:"constant_pool"`
}

type Log struct {
	// Verbosity is passed to commonlog.Configure: 0 logs notices and
	// above, 2 adds debug lines and -4 silences logging.
	Verbosity int `toml:"verbosity"`

	// File receives log output instead of stderr when set.
	File string `toml:"file"`
}

func Default() *Config {
	return &Config{
		Output: Output{
			Format: "text",
			Color:  "auto",
		},
	}
}

// Load reads the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	config, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

func (c *Config) Validate() error {
	if !slices.Contains(format.Names, c.Output.Format) {
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q (expected auto, always, or never)", c.Output.Color)
	}
	if c.Log.Verbosity < -4 {
		return fmt.Errorf("log verbosity %d out of range", c.Log.Verbosity)
	}
	return nil
}
