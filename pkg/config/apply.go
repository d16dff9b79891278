// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"

	"github.com/gtaska/graphtail/pkg/confopt"
)

// FromArgs builds the configuration from parsed command line arguments.
func FromArgs(args *Args) (*Config, error) {
	cfg, err := ApplyConfiguration(args.Values)
	if err != nil {
		return nil, err
	}
	cfg.Inputs = append(cfg.Inputs, args.Inputs...)
	return cfg, nil
}

// ApplyConfiguration interprets a key/value table. Keys are applied in insertion order,
// any unrecognized key is an error.
func ApplyConfiguration(kv *KeyValues) (*Config, error) {
	cfg := Default()

	for _, key := range kv.Keys() {
		value, _ := kv.Get(key)
		if err := cfg.apply(key, value); err != nil {
			return nil, err
		}
	}

	for _, g := range cfg.Groups {
		g.Config.fillFrom(cfg.Defaults)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) apply(key, value string) error {
	var err error

	switch key {
	case "row_delim":
		c.RowDelimiter, err = parseDelimiter(value)
	case "column_delim":
		c.ColumnDelimiter, err = parseDelimiter(value)
	case "width":
		c.Width, err = parseUint(key, value)
	case "height":
		c.Height, err = parseUint(key, value)
	case "font_size":
		c.FontSize, err = parseUint(key, value)
	case "update_every":
		c.UpdateEvery, err = parseUpdateEvery(value)
	case "output":
		c.Output, err = parseOutput(value)
	case "groups":
		var groups []*GroupSpec
		if groups, err = parseGroups(value); err == nil {
			c.Groups = append(c.Groups, groups...)
		}
	default:
		if err = c.Defaults.applyOption(key, value); errors.Is(err, errUnknownOption) {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}

	if err != nil {
		return fmt.Errorf("configuration item '%s': %w", key, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.RowDelimiter == c.ColumnDelimiter {
		return fmt.Errorf("%w: row and column delimiters are both '%s'", ErrInvalidValue, c.RowDelimiter)
	}

	owner := make(map[string]string)
	for _, g := range c.Groups {
		if g.Histogram == nil {
			continue
		}
		for _, id := range g.Histogram.IDs {
			if name, ok := owner[id]; ok {
				return fmt.Errorf("%w: column '%s' is used by histograms '%s' and '%s'",
					ErrInvalidValue, id, name, g.Histogram.Name)
			}
			owner[id] = g.Histogram.Name
		}
	}
	return nil
}

func parseUpdateEvery(value string) (confopt.Duration, error) {
	d, err := confopt.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: update_every must be positive", ErrInvalidValue)
	}
	return d, nil
}

func parseOutput(value string) (string, error) {
	switch value {
	case OutputAuto, OutputText, OutputNetdata, OutputNone:
		return value, nil
	default:
		return "", fmt.Errorf("%w: unknown output '%s'", ErrInvalidValue, value)
	}
}
