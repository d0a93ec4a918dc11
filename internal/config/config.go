// Package config reads and writes pubd settings in YAML. A repository's
// .pubd/config.yaml, when present, replaces ~/.pubd/config.yaml entirely.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoConfigPath = errors.New("cannot determine config path")
	ErrUnknownKey   = errors.New("unknown config key")
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope selects which config file is read or written.
type Scope int

const (
	ScopeGlobal Scope = iota // ~/.pubd/config.yaml
	ScopeLocal               // .pubd/config.yaml
)

// Author is recorded on every object a user writes or tags.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Limits are nil until set so defaults stay distinguishable.
type Limits struct {
	MaxPath    *int   `yaml:"max_path,omitempty"`
	MaxContent *int64 `yaml:"max_content,omitempty"`
	MaxTags    *int   `yaml:"max_tags,omitempty"`
}

// HTTP holds settings for "pubd http".
type HTTP struct {
	Addr string `yaml:"addr,omitempty"`
}

const (
	DefaultMaxPath    = 1024
	DefaultMaxContent = 100 * 1024 * 1024 // 100 MB
	DefaultMaxTags    = 256
	DefaultHTTPAddr   = "127.0.0.1:7420"
)

// Accepted ranges for the limits.
const (
	MinMaxPath    = 1
	MaxMaxPath    = 64 * 1024
	MinMaxContent = 1
	MaxMaxContent = 10 << 30
	MinMaxTags    = 1
	MaxMaxTags    = 65536
)

// Config is the content of one config.yaml.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`
	HTTP   HTTP   `yaml:"http,omitempty"`

	path  string // file Save writes to
	scope Scope
}

// Validate reports the first limit outside its accepted range. Unset
// limits are not checked.
func (c *Config) Validate() error {
	if err := within("max_path", c.Limits.MaxPath, MinMaxPath, MaxMaxPath); err != nil {
		return err
	}
	if err := within("max_content", c.Limits.MaxContent, MinMaxContent, MaxMaxContent); err != nil {
		return err
	}
	return within("max_tags", c.Limits.MaxTags, MinMaxTags, MaxMaxTags)
}

func within[T int | int64](name string, v *T, lo, hi T) error {
	if v == nil || (*v >= lo && *v <= hi) {
		return nil
	}
	return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidValue, name, lo, hi, *v)
}

func or[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// MaxPath is the longest accepted path in bytes.
func (c *Config) MaxPath() int { return or(c.Limits.MaxPath, DefaultMaxPath) }

// MaxContent is the largest accepted object body in bytes.
func (c *Config) MaxContent() int64 { return or(c.Limits.MaxContent, DefaultMaxContent) }

// MaxTags caps the tag-values on one object, publish marker included.
func (c *Config) MaxTags() int { return or(c.Limits.MaxTags, DefaultMaxTags) }

// HTTPAddr is where "pubd http" listens.
func (c *Config) HTTPAddr() string {
	if c.HTTP.Addr == "" {
		return DefaultHTTPAddr
	}
	return c.HTTP.Addr
}

// LocalPath is .pubd/config.yaml under the working directory.
func LocalPath() string {
	return filepath.Join(".pubd", "config.yaml")
}

// GlobalPath is ~/.pubd/config.yaml, or "" without a home directory.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pubd", "config.yaml")
}

// Load returns the local config when .pubd/config.yaml exists and the
// global one otherwise. The two are never merged.
func Load() (*Config, error) {
	scope := ScopeGlobal
	if _, err := os.Stat(LocalPath()); err == nil {
		scope = ScopeLocal
	}
	return LoadScope(scope)
}

// LoadScope reads one scope. A missing file yields an empty config bound to
// that scope's path.
func LoadScope(scope Scope) (*Config, error) {
	cfg := &Config{scope: scope, path: scope.path()}
	if cfg.path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(cfg.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("cannot read config file %s: %w", cfg.path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", cfg.path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", cfg.path, err)
	}
	return cfg, nil
}

// Scope reports where the config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

func (s Scope) String() string {
	if s == ScopeLocal {
		return "local"
	}
	return "global"
}

func (s Scope) path() string {
	switch s {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	}
	return ""
}

// Save writes the config back to the file it came from.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = c.scope.path()
	}
	return c.writeTo(c.path)
}

func (c *Config) writeTo(path string) error {
	if path == "" {
		return ErrNoConfigPath
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
