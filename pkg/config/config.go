// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/gtaska/graphtail/pkg/confopt"
	"github.com/gtaska/graphtail/pkg/matcher"
)

const (
	OutputAuto    = "auto"
	OutputText    = "text"
	OutputNetdata = "netdata"
	OutputNone    = "none"
)

const (
	defaultWidth       = 1000
	defaultHeight      = 500
	defaultFontSize    = 14
	defaultUpdateEvery = confopt.Duration(30 * time.Millisecond)
)

type (
	// Config is the resolved configuration. It is built once and not modified afterward.
	Config struct {
		RowDelimiter    Delimiter        `yaml:"row_delim"`
		ColumnDelimiter Delimiter        `yaml:"column_delim"`
		Width           uint32           `yaml:"width"`
		Height          uint32           `yaml:"height"`
		FontSize        uint32           `yaml:"font_size"`
		UpdateEvery     confopt.Duration `yaml:"update_every"`
		Output          string           `yaml:"output"`
		Inputs          []string         `yaml:"inputs,omitempty"`
		Defaults        GroupConfig      `yaml:"defaults"`
		Groups          []*GroupSpec     `yaml:"groups,omitempty"`
	}

	// GroupConfig holds per-group settings. Nil fields are unset.
	GroupConfig struct {
		XStep              *uint32  `yaml:"x_step,omitempty"`
		YMin               *float64 `yaml:"y_min,omitempty"`
		YMax               *float64 `yaml:"y_max,omitempty"`
		HistogramThreshold *float64 `yaml:"histogram_threshold,omitempty"`
		IsSize             *bool    `yaml:"is_size,omitempty"`
	}

	// GroupSpec is one '{...}' entry of the groups definition.
	GroupSpec struct {
		Inputs    []*matcher.Wildcard
		Config    GroupConfig
		Histogram *HistogramSpec
	}

	// HistogramSpec turns a group into a heatmap of the listed columns.
	HistogramSpec struct {
		Name string   `yaml:"name"`
		IDs  []string `yaml:"ids"`
	}

	// Delimiter is a single byte CSV separator.
	Delimiter byte
)

func Default() *Config {
	return &Config{
		RowDelimiter:    '\n',
		ColumnDelimiter: ';',
		Width:           defaultWidth,
		Height:          defaultHeight,
		FontSize:        defaultFontSize,
		UpdateEvery:     defaultUpdateEvery,
		Output:          OutputAuto,
	}
}

// String renders the configuration as YAML.
func (c *Config) String() string {
	bs, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return string(bs)
}

// IsHistogram reports whether the group is rendered as a heatmap.
func (g *GroupSpec) IsHistogram() bool {
	return g.Histogram != nil
}

// Matcher returns a matcher accepting ids matched by any of the group inputs.
func (g *GroupSpec) Matcher() matcher.Matcher {
	ms := make([]matcher.Matcher, 0, len(g.Inputs))
	for _, w := range g.Inputs {
		ms = append(ms, w)
	}
	return matcher.WithCache(matcher.Or(ms...))
}

func (g *GroupSpec) MarshalYAML() (any, error) {
	v := struct {
		Inputs    []string       `yaml:"inputs,omitempty"`
		Histogram *HistogramSpec `yaml:"histogram,omitempty"`
		Config    GroupConfig    `yaml:"config"`
	}{
		Histogram: g.Histogram,
		Config:    g.Config,
	}
	for _, w := range g.Inputs {
		v.Inputs = append(v.Inputs, w.String())
	}
	return v, nil
}

func (d Delimiter) String() string {
	switch d {
	case '\n':
		return "new_line"
	default:
		return string(rune(d))
	}
}

func (d Delimiter) MarshalYAML() (any, error) {
	return d.String(), nil
}

func parseDelimiter(s string) (Delimiter, error) {
	if s == "new_line" {
		return '\n', nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: delimiter must be a single character or 'new_line', got '%s'", ErrInvalidValue, s)
	}
	return Delimiter(s[0]), nil
}

// fillFrom sets every unset field to the value from defaults.
func (c *GroupConfig) fillFrom(defaults GroupConfig) {
	if c.XStep == nil {
		c.XStep = defaults.XStep
	}
	if c.YMin == nil {
		c.YMin = defaults.YMin
	}
	if c.YMax == nil {
		c.YMax = defaults.YMax
	}
	if c.HistogramThreshold == nil {
		c.HistogramThreshold = defaults.HistogramThreshold
	}
	if c.IsSize == nil {
		c.IsSize = defaults.IsSize
	}
}

func (c GroupConfig) String() string {
	var parts []string
	if c.XStep != nil {
		parts = append(parts, fmt.Sprintf("x_step=%d", *c.XStep))
	}
	if c.YMin != nil {
		parts = append(parts, fmt.Sprintf("y_min=%g", *c.YMin))
	}
	if c.YMax != nil {
		parts = append(parts, fmt.Sprintf("y_max=%g", *c.YMax))
	}
	if c.HistogramThreshold != nil {
		parts = append(parts, fmt.Sprintf("histogram_threshold=%g", *c.HistogramThreshold))
	}
	if c.IsSize != nil {
		parts = append(parts, fmt.Sprintf("is_size=%v", *c.IsSize))
	}
	return strings.Join(parts, " ")
}
