// SPDX-License-Identifier: GPL-3.0-or-later

package graphs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumn(t *testing.T) {
	c := newColumn("a")

	_, ok := c.Last()
	assert.False(t, ok)
	assert.Zero(t, c.Avg())

	for _, v := range []float64{3, -1, 4} {
		c.Add(v)
	}

	assert.Equal(t, -1.0, c.Min)
	assert.Equal(t, 4.0, c.Max)
	assert.Equal(t, 6.0, c.Sum)
	assert.Equal(t, 2.0, c.Avg())
	last, ok := c.Last()
	assert.True(t, ok)
	assert.Equal(t, 4.0, last)

	c.Reset()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Min)
	assert.Zero(t, c.Max)
	assert.Equal(t, "a", c.ID)
}

func TestGroup_MinMax(t *testing.T) {
	tests := map[string]struct {
		groups  string
		data    map[string][]float64
		wantMin float64
		wantMax float64
	}{
		"no data": {
			groups: "{i(*)}",
		},
		"across columns": {
			groups:  "{i(*)}",
			data:    map[string][]float64{"a": {2, 5}, "b": {-3, 1}},
			wantMin: -3,
			wantMax: 5,
		},
		"overrides": {
			groups:  "{i(*)!y_min=0!y_max=100}",
			data:    map[string][]float64{"a": {-5, 500}},
			wantMin: 0,
			wantMax: 100,
		},
		"positive values": {
			groups:  "{i(*)}",
			data:    map[string][]float64{"a": {7, 9}},
			wantMin: 7,
			wantMax: 9,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t, test.groups)
			for id, values := range test.data {
				for _, v := range values {
					e.OnData(id, v)
				}
			}

			g := e.Groups()[0]

			assert.Equal(t, test.wantMin, g.Min())
			assert.Equal(t, test.wantMax, g.Max())
			assert.Equal(t, len(test.data) > 0, g.HasData())
		})
	}
}

func TestGroup_Name(t *testing.T) {
	e := newTestEngine(t, "{i(cpu_*)i(load)}")

	assert.Equal(t, "cpu_*,load", e.Groups()[0].Name())
}
