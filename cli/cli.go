// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"github.com/jessevdk/go-flags"
)

const Name = "graphtail"

// Option defines process level command line options.
// Everything else is left in Args for the configuration grammar.
type Option struct {
	Debug      bool `short:"d" long:"debug" description:"debug mode"`
	Version    bool `short:"v" long:"version" description:"display the version and exit"`
	DumpConfig bool `long:"dump-config" description:"print the resolved configuration and exit"`

	Args []string
}

// Parse extracts process options from args (without the program name).
// Unknown options and input paths are returned in Option.Args in their original order.
func Parse(args []string) (*Option, error) {
	opt := &Option{}

	rest, err := newParser(opt).ParseArgs(args)
	if err != nil {
		return nil, err
	}
	opt.Args = rest

	return opt, nil
}

func newParser(opt *Option) *flags.Parser {
	parser := flags.NewParser(opt, flags.IgnoreUnknown|flags.PrintErrors)
	parser.Name = Name
	parser.Usage = "[OPTIONS] [--key[=value] ...] <input files>"
	return parser
}
