// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/docker/go-units"

	"github.com/gtaska/graphtail/pkg/graphs"
)

// textPresenter writes a plain summary of every group.
type textPresenter struct {
	out io.Writer
}

func (p *textPresenter) present(snap graphs.Snapshot) {
	var b strings.Builder

	fmt.Fprintf(&b, "--- version %d\n", snap.Version)

	for _, g := range snap.Groups {
		isSize := isSizeGroup(g)
		fmt.Fprintf(&b, "%s [%s]", g.ID, g.Name())

		if !g.HasData() {
			b.WriteString(" no data\n")
			continue
		}
		fmt.Fprintf(&b, " range %s..%s\n", formatValue(g.Min(), isSize), formatValue(g.Max(), isSize))

		if g.IsHistogram() {
			writeHistogram(&b, g, isSize)
			continue
		}

		for _, c := range g.Columns {
			if c.Len() == 0 {
				fmt.Fprintf(&b, "  %s no data\n", c.ID)
				continue
			}
			last, _ := c.Last()
			fmt.Fprintf(&b, "  %s last=%s avg=%s min=%s max=%s n=%d\n",
				c.ID,
				formatValue(last, isSize),
				formatValue(c.Avg(), isSize),
				formatValue(c.Min, isSize),
				formatValue(c.Max, isSize),
				c.Len(),
			)
		}
	}

	_, _ = io.WriteString(p.out, b.String())
}

// writeHistogram prints the latest step. Cells at or below the threshold are hidden.
func writeHistogram(b *strings.Builder, g *graphs.Group, isSize bool) {
	steps := g.HistogramSteps()
	step := g.HistogramStep(steps - 1)
	ids := g.Spec().Histogram.IDs
	threshold := g.Config().HistogramThreshold

	fmt.Fprintf(b, "  steps=%d", steps)
	for i, v := range step {
		if threshold != nil && v <= *threshold {
			continue
		}
		fmt.Fprintf(b, " %s=%s", ids[i], formatValue(v, isSize))
	}
	b.WriteString("\n")
}

func isSizeGroup(g *graphs.Group) bool {
	v := g.Config().IsSize
	return v != nil && *v
}

func formatValue(v float64, isSize bool) string {
	if isSize {
		return units.BytesSize(v)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
