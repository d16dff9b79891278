// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/gtaska/graphtail/pkg/graphs"
	"github.com/gtaska/graphtail/pkg/netdataapi"
)

const (
	chartTypeID   = "graphtail"
	chartPriority = 70000
	keepAliveIdle = time.Second
)

// netdataPresenter emits the Netdata external plugin protocol.
// A chart is (re)declared whenever its dimension set changes and marked
// obsolete when its group goes away.
type netdataPresenter struct {
	api         *netdataapi.API
	updateEvery int
	now         func() time.Time

	charts    map[string]*chartState // by group id
	lastWrite time.Time
}

type chartState struct {
	id     string
	opts   netdataapi.ChartOpts
	dims   []string
	dimIDs []string
	seen   bool
}

func newNetdataPresenter(api *netdataapi.API, updateEvery time.Duration) *netdataPresenter {
	return &netdataPresenter{
		api:         api,
		updateEvery: max(1, int(math.Round(updateEvery.Seconds()))),
		now:         time.Now,
		charts:      make(map[string]*chartState),
	}
}

func (p *netdataPresenter) present(snap graphs.Snapshot) {
	for _, cs := range p.charts {
		cs.seen = false
	}

	for i, g := range snap.Groups {
		dims := dimensions(g)

		cs, ok := p.charts[g.ID]
		if !ok {
			cs = &chartState{id: uniqueID(g.ID, p.chartIDTaken)}
			p.charts[g.ID] = cs
		}
		if !ok || !slices.Equal(cs.dims, dims) {
			cs.opts = chartOpts(cs.id, g, i, p.updateEvery)
			cs.dims = dims
			cs.dimIDs = dimensionIDs(dims)
			p.declare(cs, g)
		}
		cs.seen = true

		p.collect(cs, g)
	}

	for gid, cs := range p.charts {
		if cs.seen {
			continue
		}
		opts := cs.opts
		opts.Options = "obsolete"
		p.api.CHART(opts)
		delete(p.charts, gid)
	}

	p.lastWrite = p.now()
}

// keepAlive writes an empty line when nothing was sent for a while.
func (p *netdataPresenter) keepAlive() error {
	now := p.now()
	if now.Sub(p.lastWrite) < keepAliveIdle {
		return nil
	}
	p.lastWrite = now
	return p.api.EMPTYLINE()
}

func (p *netdataPresenter) declare(cs *chartState, g *graphs.Group) {
	p.api.CHART(cs.opts)
	p.api.CLABEL("group", g.Name(), 1)
	p.api.CLABELCOMMIT()
	for i, d := range cs.dims {
		p.api.DIMENSION(netdataapi.DimensionOpts{
			ID:         cs.dimIDs[i],
			Name:       d,
			Algorithm:  "absolute",
			Multiplier: 1,
			Divisor:    1,
		})
	}
}

func (p *netdataPresenter) collect(cs *chartState, g *graphs.Group) {
	p.api.BEGIN(chartTypeID, cs.id, 0)

	if g.IsHistogram() {
		step := g.HistogramStep(g.HistogramSteps() - 1)
		for i, id := range cs.dimIDs {
			if i < len(step) {
				p.api.SETFLOAT(id, step[i])
			} else {
				p.api.SETEMPTY(id)
			}
		}
	} else {
		for i, c := range g.Columns {
			if v, ok := c.Last(); ok {
				p.api.SETFLOAT(cs.dimIDs[i], v)
			} else {
				p.api.SETEMPTY(cs.dimIDs[i])
			}
		}
	}

	p.api.END()
}

func chartOpts(id string, g *graphs.Group, idx, updateEvery int) netdataapi.ChartOpts {
	opts := netdataapi.ChartOpts{
		TypeID:      chartTypeID,
		ID:          id,
		Title:       g.Name(),
		Units:       "value",
		Family:      "groups",
		Context:     chartTypeID + ".group",
		ChartType:   "line",
		Priority:    chartPriority + idx,
		UpdateEvery: updateEvery,
		Plugin:      chartTypeID,
	}
	if isSizeGroup(g) {
		opts.Units = "bytes"
	}
	switch {
	case g.IsHistogram():
		opts.Family = "histograms"
		opts.Context = chartTypeID + ".histogram"
		opts.ChartType = "heatmap"
	case g.IsAuto():
		opts.Family = "auto"
	}
	return opts
}

func dimensions(g *graphs.Group) []string {
	if g.IsHistogram() {
		return g.Spec().Histogram.IDs
	}
	dims := make([]string, 0, len(g.Columns))
	for _, c := range g.Columns {
		dims = append(dims, c.ID)
	}
	return dims
}

func (p *netdataPresenter) chartIDTaken(id string) bool {
	for _, cs := range p.charts {
		if cs.id == id {
			return true
		}
	}
	return false
}

func dimensionIDs(dims []string) []string {
	ids := make([]string, 0, len(dims))
	for _, d := range dims {
		ids = append(ids, uniqueID(d, func(id string) bool { return slices.Contains(ids, id) }))
	}
	return ids
}

// uniqueID returns cleanID(s) with a numeric suffix added while taken reports it in use.
func uniqueID(s string, taken func(string) bool) string {
	base := cleanID(s)
	id := base
	for n := 2; taken(id); n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	return id
}

// cleanID makes s usable as a chart or dimension id.
func cleanID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}
