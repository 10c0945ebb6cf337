// Package config loads topolayout configuration files.
//
// Files are TOML or YAML, chosen by extension. Every key is optional: a file
// only overrides the defaults returned by [Default], and the merged result is
// validated before it is returned.
//
//	strategy = "force"
//
//	[force]
//	iterations = 500
//	seed = 42
//
//	[force.routing]
//	algorithm = "astar"
//
// Map-valued keys such as hierarchical.layer_table merge into the default
// map, so a file can add or override single types without restating the rest.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/layout/force"
	"github.com/matzehuels/topolayout/pkg/layout/hierarchical"
	"github.com/matzehuels/topolayout/pkg/validation"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Strategy names registered by default.
const (
	StrategyHierarchical = "hierarchical"
	StrategyForce        = "force"
)

// Config is the complete configuration of a topolayout process.
type Config struct {
	// Strategy is the layout used when a caller does not name one.
	Strategy string `toml:"strategy" yaml:"strategy" json:"strategy" validate:"required"`

	Hierarchical hierarchical.Options `toml:"hierarchical" yaml:"hierarchical" json:"hierarchical"`
	Force        force.Options        `toml:"force" yaml:"force" json:"force"`
	Server       Server               `toml:"server" yaml:"server" json:"server"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string        `toml:"addr" yaml:"addr" json:"addr" validate:"required"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout" validate:"gte=0"`

	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `toml:"max_body_bytes" yaml:"max_body_bytes" json:"max_body_bytes" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Strategy:     StrategyHierarchical,
		Hierarchical: hierarchical.DefaultOptions(),
		Force:        force.DefaultOptions(),
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    4 << 20,
		},
	}
}

// Validate reports the first invalid setting as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if err := errors.ValidateStrategyName(c.Strategy); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "strategy")
	}
	if err := validation.Struct("", c); err != nil {
		return err
	}
	if err := c.Hierarchical.Validate(); err != nil {
		return err
	}
	return c.Force.Validate()
}

// =============================================================================
// Loading
// =============================================================================

// Load reads path on top of the defaults. The format follows the extension.
func Load(path string) (Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return Config{}, errors.New(errors.ErrCodeUnsupported, "unsupported config format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FormatFromPath picks the format for a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported config file %q: use .toml, .yaml or .yml", filepath.Base(path))
	}
}

// Encode writes c in the given format.
func (c Config) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported config format %q", format)
	}
}
