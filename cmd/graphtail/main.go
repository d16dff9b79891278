// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/gtaska/graphtail/agent"
	"github.com/gtaska/graphtail/cli"
	"github.com/gtaska/graphtail/logger"
	"github.com/gtaska/graphtail/pkg/buildinfo"
	"github.com/gtaska/graphtail/pkg/config"
)

const envLogLevel = "GRAPHTAIL_LOG_LEVEL"

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, args ...interface{}) {}))

	opts := parseCLI()

	if opts.Version {
		fmt.Printf("%s, version: %s\n", cli.Name, buildinfo.Version)
		return
	}

	if lvl := os.Getenv(envLogLevel); lvl != "" {
		logger.Level.SetByName(lvl)
	}
	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	args, err := config.ParseArgs(opts.Args)
	if err != nil {
		fatal(err)
	}

	if args.Help != config.HelpNone {
		if err := cli.Help(os.Stdout, args.Help); err != nil {
			fatal(err)
		}
		return
	}

	cfg, err := config.FromArgs(args)
	if err != nil {
		fatal(err)
	}

	if opts.DumpConfig {
		fmt.Print(cfg.String())
		return
	}

	a, err := agent.New(agent.Config{Name: cli.Name, Graphs: cfg})
	if err != nil {
		if errors.Is(err, agent.ErrNoInputs) {
			fatal(fmt.Errorf("%v (see --help)", err))
		}
		fatal(err)
	}

	a.Infof("%s, version: %s", a.Name, buildinfo.Version)
	a.Debugf("using config:\n%s", cfg)

	a.Run()
}

func parseCLI() *cli.Option {
	opt, err := cli.Parse(os.Args[1:])
	if err != nil {
		os.Exit(1)
	}
	return opt
}

func fatal(err error) {
	logger.Error(err)
	os.Exit(1)
}
