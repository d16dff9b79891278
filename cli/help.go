// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/gtaska/graphtail/pkg/config"
)

type helpEntry struct {
	options     []string
	description []string
	group       bool
}

var helpEntries = []helpEntry{
	{
		options:     []string{"row_delim=<character>"},
		description: []string{"Row delimiter of the CSV input, a single character or 'new_line'.", "Defaults to 'new_line'."},
	},
	{
		options:     []string{"column_delim=<character>"},
		description: []string{"Column delimiter of the CSV input, a single character or 'new_line'.", "Defaults to ';'."},
	},
	{
		options:     []string{"width=<width>", "height=<height>"},
		description: []string{"Display size. Defaults to 1000x500."},
	},
	{
		options:     []string{"font_size=<size>"},
		description: []string{"Font size of the display. Defaults to 14."},
	},
	{
		options:     []string{"update_every=<duration>"},
		description: []string{"How often inputs are polled, as a duration ('250ms') or seconds ('0.25').", "Defaults to 30ms."},
	},
	{
		options:     []string{"output=<auto|text|netdata|none>"},
		description: []string{"Where group updates go. 'auto' writes text to a terminal and the", "Netdata plugin protocol otherwise. Defaults to 'auto'."},
	},
	{
		options:     []string{"x_step=<pixels>"},
		description: []string{"Advance every data point by <pixels> on the x-axis instead of fitting", "the whole series into the width."},
		group:       true,
	},
	{
		options:     []string{"y_min=<min>", "y_max=<max>"},
		description: []string{"Fixed y-axis range. By default the range follows the data."},
		group:       true,
	},
	{
		options:     []string{"histogram_threshold=<value>"},
		description: []string{"Histogram cells at or below this value are not shown. No threshold", "by default."},
		group:       true,
	},
	{
		options:     []string{"is_size[=<bool>]"},
		description: []string{"Values are byte sizes and are shown as such."},
		group:       true,
	},
	{
		options:     []string{"groups=<definition>"},
		description: []string{"Group definition, see below. Columns that match no group get a group", "of their own."},
	},
	{
		options:     []string{"config=<path>"},
		description: []string{"Read configuration from a file, see below."},
	},
	{
		options:     []string{"help[=markdown]"},
		description: []string{"Print this help, or the option table as markdown."},
	},
}

const groupsHelp = `
groups:

    A group starts with '{' and ends with '}'. Inside a group:

        i(<pattern>)              adds columns matching <pattern>, '*' matches
                                  any run of characters
        h(<name>)(<id>,<id>,...)  shows the listed columns as a histogram
                                  heatmap called <name>
        !<option>=<value>         sets a group option, see the list above
        !<flag>                   sets a boolean group option

    A command line argument may hold only one '=', so '--groups=' accepts
    '!<flag>' options only. Put groups using '!<option>=<value>' in a
    configuration file.

    Example 1:

        {i(foo)i(bar)!y_min=0!y_max=1}{i(baz)}

        Columns 'foo' and 'bar' share a group with the y-axis fixed to [0, 1].
        Column 'baz' gets a group of its own.

    Example 2:

        {h(lat)(lat_1ms,lat_10ms,lat_100ms)!histogram_threshold=0}

        Columns 'lat_1ms', 'lat_10ms' and 'lat_100ms' form the histogram 'lat'.
        Only cells above 0 are shown.
`

const configHelp = `
config:

    A configuration file holds one statement per line:

        input /var/log/app/stats.csv
        width 500
        height 500
        groups {i(foo)i(bar)}

    Long values can span lines between 'begin <key>' and 'end', whitespace
    inside is dropped:

        begin groups
            {
                i(foo)
                i(bar)
            }
        end

    Comments are written as '// ...' or '/* ... */'. Comments are recognized
    inside values too, so an input pattern can not contain '/*' or '//':
    write 'input /data/x*.csv' rather than 'input /data/*.csv', or pass such
    patterns on the command line.
`

// PrintHelp writes usage, the option list and the group and config file syntax.
func PrintHelp(w io.Writer) {
	var b strings.Builder

	b.WriteString("usage: " + Name + " [options] <input files>\n\n")
	b.WriteString("    Follows CSV files and shows their numeric columns in groups. Files are\n")
	b.WriteString("    read again when they grow, and from the start when they are truncated or\n")
	b.WriteString("    replaced.\n\n")
	b.WriteString("options:\n")

	for _, e := range helpEntries {
		b.WriteString("\n    ")
		for _, o := range e.options {
			b.WriteString("--" + o + " ")
		}
		b.WriteString("\n")
		for _, line := range e.description {
			b.WriteString("        " + line + "\n")
		}
		if e.group {
			b.WriteString("        Can be used in a group definition.\n")
		}
	}

	b.WriteString(groupsHelp)
	b.WriteString(configHelp)
	b.WriteString("\nprocess options:\n\n")

	_, _ = io.WriteString(w, b.String())

	newParser(&Option{}).WriteHelp(w)
}

// PrintMarkdown writes the option list as a markdown table.
func PrintMarkdown(w io.Writer) {
	var b strings.Builder

	b.WriteString("Option|Description\n-|-\n")

	for _, e := range helpEntries {
		opts := make([]string, 0, len(e.options))
		for _, o := range e.options {
			opts = append(opts, "`--"+o+"`")
		}
		b.WriteString(strings.Join(opts, "<br>"))
		b.WriteString("|")
		b.WriteString(strings.Join(e.description, " "))
		if e.group {
			b.WriteString(" Can be used in a group definition.")
		}
		b.WriteString("\n")
	}

	_, _ = io.WriteString(w, b.String())
}

// Help prints help in the requested mode.
func Help(w io.Writer, mode config.HelpMode) error {
	switch mode {
	case config.HelpText:
		PrintHelp(w)
	case config.HelpMarkdown:
		PrintMarkdown(w)
	default:
		return fmt.Errorf("unknown help mode %d", mode)
	}
	return nil
}
