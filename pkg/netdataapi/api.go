// SPDX-License-Identifier: GPL-3.0-or-later

package netdataapi

import (
	"io"
	"strconv"
	"strings"
)

// API writes the Netdata external plugin protocol.
// See: https://learn.netdata.cloud/docs/agent/plugins.d#the-output-of-the-plugin
type API struct {
	io.Writer
}

var (
	end          = []byte("END\n\n")
	clabelCommit = []byte("CLABEL_COMMIT\n")
	disable      = []byte("DISABLE\n")
	newLine      = []byte("\n")
)

// New creates a new API instance writing to w.
// Panics if the provided writer is nil.
func New(w io.Writer) *API {
	if w == nil {
		panic("writer cannot be nil")
	}
	return &API{w}
}

// CHART creates or updates a chart.
func (a *API) CHART(opts ChartOpts) {
	a.command("CHART",
		opts.TypeID+"."+opts.ID,
		opts.Name,
		opts.Title,
		opts.Units,
		opts.Family,
		opts.Context,
		opts.ChartType,
		strconv.Itoa(opts.Priority),
		strconv.Itoa(opts.UpdateEvery),
		opts.Options,
		opts.Plugin,
		opts.Module,
	)
}

// DIMENSION adds or updates a dimension to the most recently created chart.
func (a *API) DIMENSION(opts DimensionOpts) {
	a.command("DIMENSION",
		opts.ID,
		opts.Name,
		opts.Algorithm,
		strconv.Itoa(opts.Multiplier),
		strconv.Itoa(opts.Divisor),
		opts.Options,
	)
}

// CLABEL adds or updates a label to the most recently created chart.
func (a *API) CLABEL(key, value string, source int) {
	a.command("CLABEL", key, value, strconv.Itoa(source))
}

// CLABELCOMMIT adds labels to the chart. Should be called after one or more CLABEL.
func (a *API) CLABELCOMMIT() {
	_, _ = a.Write(clabelCommit)
}

// BEGIN initializes data collection for a chart.
func (a *API) BEGIN(typeID string, id string, msSince int) {
	line := "BEGIN " + quote(typeID+"."+id)
	if msSince > 0 {
		line += " " + strconv.Itoa(msSince)
	}
	_, _ = a.Write([]byte(line + "\n"))
}

// SETFLOAT sets the value of a dimension for the initialized chart.
func (a *API) SETFLOAT(id string, value float64) {
	v := strconv.FormatFloat(value, 'f', -1, 64)
	_, _ = a.Write([]byte("SET " + quote(id) + " = " + v + "\n"))
}

// SETEMPTY sets an empty value for a dimension in the initialized chart.
func (a *API) SETEMPTY(id string) {
	_, _ = a.Write([]byte("SET " + quote(id) + " = \n"))
}

// END completes data collection for the initialized chart.
// Should be called after all SET operations are complete.
func (a *API) END() {
	_, _ = a.Write(end)
}

// DISABLE disables this plugin.
// This will prevent Netdata from restarting the plugin.
func (a *API) DISABLE() {
	_, _ = a.Write(disable)
}

// EMPTYLINE writes an empty line to the output.
func (a *API) EMPTYLINE() error {
	_, err := a.Write(newLine)
	return err
}

func (a *API) command(name string, params ...string) {
	var b strings.Builder

	b.WriteString(name)
	for _, p := range params {
		b.WriteByte(' ')
		b.WriteString(quote(p))
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(a, b.String())
}

// quote wraps s in single quotes. Single quotes inside s can not be escaped
// in the protocol and are dropped.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "") + "'"
}
