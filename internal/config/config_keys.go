// config_keys.go maps dotted keys such as "limits.max_tags" onto Config
// fields for "pubd config" and the MCP config tools.

package config

import (
	"fmt"
	"net"
	"slices"
	"strconv"
)

// setting binds one key to its field.
type setting struct {
	get   func(*Config) string
	set   func(*Config, string) error
	isSet func(*Config) bool
}

var settings = map[string]setting{
	"author.name": {
		get:   func(c *Config) string { return c.Author.Name },
		set:   func(c *Config, v string) error { c.Author.Name = v; return nil },
		isSet: func(c *Config) bool { return c.Author.Name != "" },
	},
	"author.email": {
		get:   func(c *Config) string { return c.Author.Email },
		set:   func(c *Config, v string) error { c.Author.Email = v; return nil },
		isSet: func(c *Config) bool { return c.Author.Email != "" },
	},
	"limits.max_path": {
		get:   func(c *Config) string { return strconv.Itoa(c.MaxPath()) },
		set:   func(c *Config, v string) error { return positive(v, "limits.max_path", &c.Limits.MaxPath) },
		isSet: func(c *Config) bool { return c.Limits.MaxPath != nil },
	},
	"limits.max_content": {
		get:   func(c *Config) string { return strconv.FormatInt(c.MaxContent(), 10) },
		set:   func(c *Config, v string) error { return positive(v, "limits.max_content", &c.Limits.MaxContent) },
		isSet: func(c *Config) bool { return c.Limits.MaxContent != nil },
	},
	"limits.max_tags": {
		get:   func(c *Config) string { return strconv.Itoa(c.MaxTags()) },
		set:   func(c *Config, v string) error { return positive(v, "limits.max_tags", &c.Limits.MaxTags) },
		isSet: func(c *Config) bool { return c.Limits.MaxTags != nil },
	},
	"http.addr": {
		get: func(c *Config) string { return c.HTTPAddr() },
		set: func(c *Config, v string) error {
			if _, _, err := net.SplitHostPort(v); err != nil {
				return fmt.Errorf("%w: http.addr must be host:port", ErrInvalidValue)
			}
			c.HTTP.Addr = v
			return nil
		},
		isSet: func(c *Config) bool { return c.HTTP.Addr != "" },
	},
}

// positive parses v into *dst, rejecting anything below 1.
func positive[T int | int64](v, key string, dst **T) error {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("%w: %s must be a positive integer", ErrInvalidValue, key)
	}
	t := T(n)
	*dst = &t
	return nil
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func lookup(key string) (setting, error) {
	s, ok := settings[key]
	if !ok {
		return setting{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return s, nil
}

// Get returns the effective value of key, defaults included.
func (c *Config) Get(key string) (string, error) {
	s, err := lookup(key)
	if err != nil {
		return "", err
	}
	return s.get(c), nil
}

// Set assigns key from its string form.
func (c *Config) Set(key, value string) error {
	s, err := lookup(key)
	if err != nil {
		return err
	}
	return s.set(c, value)
}

// All returns the effective value of every key.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(settings))
	for k, s := range settings {
		out[k] = s.get(c)
	}
	return out
}

// IsSet reports whether key was given explicitly rather than defaulted.
func (c *Config) IsSet(key string) bool {
	s, ok := settings[key]
	return ok && s.isSet(c)
}
