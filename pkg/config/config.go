// Package config reads the YAML file that configures example generation for
// the command line tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-exampledump/pkg/examples"
)

// ErrInvalidConfig wraps every validation failure reported by Parse.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config mirrors the on-disk format:
//
//	exclude: [password]
//	renew: false
//	maxDepth: 16
//	extend:
//	  - type: string
//	    format: email
//	    value: user@example.com
//	  - value: "n/a"
type Config struct {
	Exclude  []string    `yaml:"exclude"`
	Renew    bool        `yaml:"renew"`
	MaxDepth int         `yaml:"maxDepth"`
	Extend   []Extension `yaml:"extend"`
}

// Extension overrides or adds one type-map entry. An empty Type and Format
// address the general fallback.
type Extension struct {
	Type   string `yaml:"type"`
	Format string `yaml:"format"`
	Value  any    `yaml:"value"`
}

// Key returns the type-map key the extension targets.
func (e Extension) Key() examples.TypeKey {
	return examples.TypeKey{Type: e.Type, Format: e.Format}
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML payload. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the decoded values.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: maxDepth must not be negative", ErrInvalidConfig)
	}
	for idx, name := range c.Exclude {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: exclude entry %d is blank", ErrInvalidConfig, idx)
		}
	}
	seen := make(map[examples.TypeKey]int, len(c.Extend))
	for idx, ext := range c.Extend {
		if ext.Type == "" && ext.Format != "" {
			return fmt.Errorf("%w: extend entry %d sets format %q without a type", ErrInvalidConfig, idx, ext.Format)
		}
		if prev, dup := seen[ext.Key()]; dup {
			return fmt.Errorf("%w: extend entries %d and %d both target %s", ErrInvalidConfig, prev, idx, ext.Key())
		}
		seen[ext.Key()] = idx
	}
	return nil
}

// Options translates the configuration into generator options. Zero values
// leave the generator defaults untouched.
func (c Config) Options() []examples.Option {
	var opts []examples.Option
	if len(c.Exclude) > 0 {
		opts = append(opts, examples.WithExcludeFields(c.Exclude...))
	}
	if c.Renew {
		opts = append(opts, examples.WithRenewTypeValue(true))
	}
	if c.MaxDepth > 0 {
		opts = append(opts, examples.WithMaxDepth(c.MaxDepth))
	}
	if len(c.Extend) > 0 {
		entries := make(map[examples.TypeKey]any, len(c.Extend))
		for _, ext := range c.Extend {
			entries[ext.Key()] = ext.Value
		}
		opts = append(opts, examples.WithExtendTypeMap(entries))
	}
	return opts
}
