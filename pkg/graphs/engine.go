// SPDX-License-Identifier: GPL-3.0-or-later

package graphs

import (
	"fmt"
	"slices"

	"github.com/gtaska/graphtail/logger"
	"github.com/gtaska/graphtail/pkg/config"
	"github.com/gtaska/graphtail/pkg/csvtail"
)

var _ csvtail.Listener = (*Engine)(nil)

type (
	// Engine routes column values into groups and keeps their statistics.
	// It is driven from a single goroutine, readers must run on that goroutine
	// between updates.
	Engine struct {
		*logger.Logger

		groups  []*Group
		index   map[string]entry
		version uint64
	}
	entry struct {
		column *Column
		group  *Group
	}

	// Snapshot is a read-only view of the engine state.
	Snapshot struct {
		Version uint64
		Groups  []*Group
	}
)

// New creates the configured groups and binds every histogram id to the
// aggregate column of its group.
func New(cfg *config.Config) *Engine {
	e := &Engine{
		Logger: logger.New().With("component", "graphs"),
		index:  make(map[string]entry),
	}

	for i, spec := range cfg.Groups {
		g := newConfiguredGroup(fmt.Sprintf("group_%d", i+1), spec)
		e.groups = append(e.groups, g)

		if !spec.IsHistogram() {
			continue
		}
		col := newColumn(spec.Histogram.Name)
		g.Columns = append(g.Columns, col)
		for _, id := range spec.Histogram.IDs {
			if _, ok := e.index[id]; !ok {
				e.index[id] = entry{column: col, group: g}
			}
		}
	}

	return e
}

// Version changes on every update. It wraps around on overflow.
func (e *Engine) Version() uint64 { return e.version }

// Groups returns configured groups in declaration order followed by automatic
// groups in creation order. The slice must not be modified.
func (e *Engine) Groups() []*Group { return e.groups }

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{Version: e.version, Groups: slices.Clone(e.groups)}
}

// OnData appends value to the column id, creating the column on first sight.
func (e *Engine) OnData(id string, value float64) {
	ent, ok := e.index[id]
	if !ok {
		ent = e.place(id)
		e.index[id] = ent
	}

	ent.column.Add(value)
	e.version++
}

// OnDataReset clears the column id. An automatic group is dropped with its column.
// Unknown ids are ignored.
func (e *Engine) OnDataReset(id string) {
	ent, ok := e.index[id]
	if !ok {
		return
	}

	if ent.group.IsAuto() {
		e.Debugf("removing automatic group '%s'", ent.group.ID)
		e.groups = slices.DeleteFunc(e.groups, func(g *Group) bool { return g == ent.group })
		delete(e.index, id)
	} else {
		ent.column.Reset()
	}

	e.version++
}

func (e *Engine) place(id string) entry {
	for _, g := range e.groups {
		if g.IsAuto() || !g.matches(id) {
			continue
		}
		col := g.Column(id)
		if col == nil {
			col = newColumn(id)
			g.Columns = append(g.Columns, col)
		}
		return entry{column: col, group: g}
	}

	col := newColumn(id)
	g := newAutoGroup(col)
	e.groups = append(e.groups, g)
	e.Debugf("created automatic group '%s'", g.ID)

	return entry{column: col, group: g}
}
