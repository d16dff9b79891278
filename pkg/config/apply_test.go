// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtaska/graphtail/pkg/confopt"
)

func kvOf(pairs ...string) *KeyValues {
	kv := NewKeyValues()
	for i := 0; i+1 < len(pairs); i += 2 {
		kv.Set(pairs[i], pairs[i+1])
	}
	return kv
}

func TestApplyConfiguration(t *testing.T) {
	tests := map[string]struct {
		kv      *KeyValues
		check   func(t *testing.T, cfg *Config)
		wantErr error
	}{
		"defaults": {
			kv: kvOf(),
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		"window and delimiters": {
			kv: kvOf("width", "640", "height", "480", "font_size", "0", "row_delim", "|", "column_delim", "new_line"),
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, uint32(640), cfg.Width)
				assert.Equal(t, uint32(480), cfg.Height)
				assert.Equal(t, uint32(0), cfg.FontSize)
				assert.Equal(t, Delimiter('|'), cfg.RowDelimiter)
				assert.Equal(t, Delimiter('\n'), cfg.ColumnDelimiter)
			},
		},
		"update_every and output": {
			kv: kvOf("update_every", "0.5", "output", "netdata"),
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, confopt.Duration(500*time.Millisecond), cfg.UpdateEvery)
				assert.Equal(t, OutputNetdata, cfg.Output)
			},
		},
		"global defaults fill unset group fields": {
			kv: kvOf("y_min", "0", "x_step", "2", "groups", "{i(a)!x_step=8}{i(b)}"),
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Groups, 2)

				a, b := cfg.Groups[0].Config, cfg.Groups[1].Config
				require.NotNil(t, a.XStep)
				require.NotNil(t, a.YMin)
				require.NotNil(t, b.XStep)
				assert.Equal(t, uint32(8), *a.XStep)
				assert.Equal(t, 0.0, *a.YMin)
				assert.Equal(t, uint32(2), *b.XStep)
				assert.Nil(t, b.YMax)
				assert.Nil(t, b.IsSize)
			},
		},
		"is_size flag": {
			kv: kvOf("is_size", ""),
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.Defaults.IsSize)
				assert.True(t, *cfg.Defaults.IsSize)
			},
		},
		"unknown key":             {kv: kvOf("colour", "red"), wantErr: ErrUnknownKey},
		"negative width":          {kv: kvOf("width", "-1"), wantErr: ErrInvalidValue},
		"long delimiter":          {kv: kvOf("row_delim", "ab"), wantErr: ErrInvalidValue},
		"equal delimiters":        {kv: kvOf("column_delim", "new_line"), wantErr: ErrInvalidValue},
		"bad output":              {kv: kvOf("output", "window"), wantErr: ErrInvalidValue},
		"zero update_every":       {kv: kvOf("update_every", "0"), wantErr: ErrInvalidValue},
		"bad group syntax":        {kv: kvOf("groups", "{i(a)"), wantErr: ErrGroupSyntax},
		"histogram id used twice": {kv: kvOf("groups", "{h(a)(x,y)}{h(b)(y)}"), wantErr: ErrInvalidValue},
		"bad global option value": {kv: kvOf("y_max", "high"), wantErr: ErrInvalidValue},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := ApplyConfiguration(test.kv)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			test.check(t, cfg)
		})
	}
}

func TestApplyConfiguration_inlineEqualsBlock(t *testing.T) {
	src, err := parseConfigData("test.conf", []byte("begin groups\n  {i(foo)\n   i(bar)}\nend\n"))
	require.NoError(t, err)

	fromFile, err := ApplyConfiguration(src.Values)
	require.NoError(t, err)

	inline, err := ApplyConfiguration(kvOf("groups", "{i(foo)i(bar)}"))
	require.NoError(t, err)

	assert.Equal(t, inline.String(), fromFile.String())
}

func TestFromArgs(t *testing.T) {
	args, err := ParseArgs([]string{"--width=10", "a.csv", "b.csv"})
	require.NoError(t, err)

	cfg, err := FromArgs(args)
	require.NoError(t, err)

	assert.Equal(t, uint32(10), cfg.Width)
	assert.Equal(t, []string{"a.csv", "b.csv"}, cfg.Inputs)
}

func TestConfig_String(t *testing.T) {
	cfg, err := ApplyConfiguration(kvOf("groups", "{i(cpu_*)!y_min=0}{h(lat)(l0,l1)}"))
	require.NoError(t, err)

	s := cfg.String()

	assert.Contains(t, s, "row_delim: new_line")
	assert.Contains(t, s, "column_delim:")
	assert.Contains(t, s, "update_every: 30ms")
	assert.Contains(t, s, "- cpu_*")
	assert.Contains(t, s, "name: lat")
	assert.Contains(t, s, "y_min: 0")
}

func TestGroupConfig_String(t *testing.T) {
	x, yMin, size := uint32(3), -1.5, true

	c := GroupConfig{XStep: &x, YMin: &yMin, IsSize: &size}

	assert.Equal(t, "x_step=3 y_min=-1.5 is_size=true", c.String())
	assert.Equal(t, "", GroupConfig{}.String())
}
