// Package config loads project settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no file is given.
const DefaultFile = ".mdtangle.yaml"

// DefaultRoots selects blocks whose name looks like a file name.
var DefaultRoots = []string{"*.*"}

// ErrConfigParse is returned for files that are not valid configuration.
var ErrConfigParse = errors.New("failed to parse config")

// Config holds the settings shared by the commands.
type Config struct {
	Dir            string            `yaml:"dir"`
	Overwrite      bool              `yaml:"overwrite"`
	Encoding       string            `yaml:"encoding"`
	Roots          []string          `yaml:"roots"`
	Langs          []string          `yaml:"langs"`
	Rename         map[string]string `yaml:"rename"`
	CommonMark     bool              `yaml:"commonmark"`
	LineDirectives *bool             `yaml:"lineDirectives"`
	MaxDepth       int               `yaml:"maxDepth"`
	Exec           string            `yaml:"exec"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	return &Config{Roots: append([]string(nil), DefaultRoots...), Langs: []string{"*"}}
}

// Directives reports whether location directives are written.
func (c *Config) Directives() bool {
	return c.LineDirectives == nil || *c.LineDirectives
}

// Load reads the configuration at path. When path is empty DefaultFile is
// tried and defaults are returned if it does not exist.
func Load(path string) (*Config, error) {
	explicit := len(path) != 0
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}

		return nil, err
	}

	return Parse(data)
}

// Parse decodes a YAML configuration, filling unset keys with defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if len(cfg.Roots) == 0 {
		cfg.Roots = append([]string(nil), DefaultRoots...)
	}

	if len(cfg.Langs) == 0 {
		cfg.Langs = []string{"*"}
	}

	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: maxDepth must not be negative", ErrConfigParse)
	}

	return cfg, nil
}
