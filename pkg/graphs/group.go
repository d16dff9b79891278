// SPDX-License-Identifier: GPL-3.0-or-later

package graphs

import (
	"strings"

	"github.com/gtaska/graphtail/pkg/config"
	"github.com/gtaska/graphtail/pkg/matcher"
)

// Group is a set of columns shown together.
// Configured groups come from the groups definition and live as long as the engine.
// Automatic groups hold a single column that matched no configured group.
type Group struct {
	ID      string
	Columns []*Column

	spec    *config.GroupSpec
	matcher matcher.Matcher
}

func newConfiguredGroup(id string, spec *config.GroupSpec) *Group {
	return &Group{ID: id, spec: spec, matcher: spec.Matcher()}
}

func newAutoGroup(col *Column) *Group {
	return &Group{ID: "auto_" + col.ID, Columns: []*Column{col}, matcher: matcher.FALSE()}
}

// IsAuto reports whether the group was created for an unmatched column.
func (g *Group) IsAuto() bool { return g.spec == nil }

func (g *Group) IsHistogram() bool { return g.spec != nil && g.spec.IsHistogram() }

// Spec returns the group definition, nil for automatic groups.
func (g *Group) Spec() *config.GroupSpec { return g.spec }

// Config returns the resolved group options. Automatic groups have none.
func (g *Group) Config() config.GroupConfig {
	if g.spec == nil {
		return config.GroupConfig{}
	}
	return g.spec.Config
}

// Name is a human readable title: the histogram name, the column id of an
// automatic group, or the input patterns of a configured group.
func (g *Group) Name() string {
	switch {
	case g.IsHistogram():
		return g.spec.Histogram.Name
	case g.IsAuto():
		return g.Columns[0].ID
	}
	patterns := make([]string, 0, len(g.spec.Inputs))
	for _, w := range g.spec.Inputs {
		patterns = append(patterns, w.String())
	}
	return strings.Join(patterns, ",")
}

// Column returns the column with the given id or nil.
func (g *Group) Column(id string) *Column {
	for _, c := range g.Columns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// HasData reports whether any column has values.
func (g *Group) HasData() bool {
	for _, c := range g.Columns {
		if c.Len() > 0 {
			return true
		}
	}
	return false
}

// Min returns y_min when set, else the smallest value of the group.
func (g *Group) Min() float64 {
	if cfg := g.Config(); cfg.YMin != nil {
		return *cfg.YMin
	}
	var v float64
	first := true
	for _, c := range g.Columns {
		if c.Len() == 0 {
			continue
		}
		if first || c.Min < v {
			v, first = c.Min, false
		}
	}
	return v
}

// Max returns y_max when set, else the largest value of the group.
func (g *Group) Max() float64 {
	if cfg := g.Config(); cfg.YMax != nil {
		return *cfg.YMax
	}
	var v float64
	first := true
	for _, c := range g.Columns {
		if c.Len() == 0 {
			continue
		}
		if first || c.Max > v {
			v, first = c.Max, false
		}
	}
	return v
}

// HistogramSteps returns the number of time steps in the aggregate column of a
// histogram group. A partially filled last step counts.
func (g *Group) HistogramSteps() int {
	if !g.IsHistogram() || len(g.Columns) == 0 {
		return 0
	}
	n, ids := g.Columns[0].Len(), len(g.spec.Histogram.IDs)
	return (n + ids - 1) / ids
}

// HistogramStep returns the values of step i, one per histogram id, in id order.
// The last step may be shorter than the id list.
func (g *Group) HistogramStep(i int) []float64 {
	if i < 0 || i >= g.HistogramSteps() {
		return nil
	}
	values, ids := g.Columns[0].Values, len(g.spec.Histogram.IDs)
	end := min((i+1)*ids, len(values))
	return values[i*ids : end]
}

func (g *Group) matches(id string) bool {
	return !g.IsHistogram() && g.matcher.MatchString(id)
}
