// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/gtaska/graphtail/logger"
	"github.com/gtaska/graphtail/pkg/config"
	"github.com/gtaska/graphtail/pkg/csvtail"
	"github.com/gtaska/graphtail/pkg/graphs"
	"github.com/gtaska/graphtail/pkg/netdataapi"
)

var isTerminal = isatty.IsTerminal(os.Stdout.Fd())

// ErrNoInputs is returned by New when there is nothing to follow.
var ErrNoInputs = errors.New("no input files")

// Config is an Agent configuration.
type Config struct {
	Name   string
	Graphs *config.Config
	Out    io.Writer
}

type (
	// Agent polls the inputs on every tick and hands engine snapshots to the presenter.
	// Everything runs on the goroutine that called Run.
	Agent struct {
		*logger.Logger

		Name string

		cfg         *config.Config
		out         io.Writer
		engine      *graphs.Engine
		tailers     []*csvtail.Tailer
		presenter   presenter
		lastVersion uint64
	}

	presenter interface {
		present(snap graphs.Snapshot)
	}
	keepAliver interface {
		keepAlive() error
	}
)

// New creates an Agent. Inputs are expanded and a tailer is created for each of them.
func New(cfg Config) (*Agent, error) {
	a := &Agent{
		Logger: logger.New().With(slog.String("component", "agent")),
		Name:   cfg.Name,
		cfg:    cfg.Graphs,
		out:    cfg.Out,
		engine: graphs.New(cfg.Graphs),
	}
	if a.out == nil {
		a.out = os.Stdout
	}

	var err error
	if a.presenter, err = a.newPresenter(cfg.Graphs.Output); err != nil {
		return nil, err
	}

	paths, err := a.expandInputs(cfg.Graphs.Inputs)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		if p, ok := a.presenter.(*netdataPresenter); ok {
			p.api.DISABLE()
		}
		return nil, ErrNoInputs
	}

	for _, path := range paths {
		a.tailers = append(a.tailers, csvtail.New(csvtail.Config{
			Path:            path,
			RowDelimiter:    byte(cfg.Graphs.RowDelimiter),
			ColumnDelimiter: byte(cfg.Graphs.ColumnDelimiter),
		}, a.engine))
	}

	return a, nil
}

// Run ticks until SIGINT or SIGTERM.
func (a *Agent) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.run(ctx)
}

func (a *Agent) run(ctx context.Context) {
	a.Infof("instance is started, %d input(s), update every %s", len(a.tailers), a.cfg.UpdateEvery)
	defer func() { a.Info("instance is stopped") }()
	defer a.closeInputs()

	var wake <-chan struct{}
	if w, err := newWatcher(a.Logger, a.paths()); err != nil {
		a.Warning("file change notifications are not available: ", err)
	} else {
		wake = w.wake
		go w.run(ctx)
	}

	tk := time.NewTicker(a.cfg.UpdateEvery.Duration())
	defer tk.Stop()

	a.tick()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			a.tick()
		case <-wake:
			a.tick()
		}
	}
}

// tick polls every input, then presents the engine state if it changed.
func (a *Agent) tick() {
	for _, t := range a.tailers {
		t.Poll()
	}

	if v := a.engine.Version(); v != a.lastVersion {
		a.lastVersion = v
		a.presenter.present(a.engine.Snapshot())
		return
	}

	if ka, ok := a.presenter.(keepAliver); ok {
		if err := ka.keepAlive(); err != nil {
			a.Warningf("keepAlive: %v", err)
		}
	}
}

func (a *Agent) closeInputs() {
	for _, t := range a.tailers {
		t.Close()
	}
}

func (a *Agent) paths() []string {
	paths := make([]string, 0, len(a.tailers))
	for _, t := range a.tailers {
		paths = append(paths, t.Path())
	}
	return paths
}

func (a *Agent) newPresenter(output string) (presenter, error) {
	if output == config.OutputAuto {
		output = config.OutputNetdata
		if isTerminal {
			output = config.OutputText
		}
	}

	a.Debugf("output: %s", output)

	switch output {
	case config.OutputText:
		return &textPresenter{out: a.out}, nil
	case config.OutputNetdata:
		return newNetdataPresenter(netdataapi.New(a.out), a.cfg.UpdateEvery.Duration()), nil
	case config.OutputNone:
		return nonePresenter{}, nil
	default:
		return nil, fmt.Errorf("unknown output '%s'", output)
	}
}

type nonePresenter struct{}

func (nonePresenter) present(graphs.Snapshot) {}
