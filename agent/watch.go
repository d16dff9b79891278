// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gtaska/graphtail/logger"
)

// watcher turns file system events on the inputs into tick requests.
// It never reads the files itself.
type watcher struct {
	*logger.Logger

	fsw   *fsnotify.Watcher
	paths map[string]bool
	wake  chan struct{}
}

func newWatcher(log *logger.Logger, paths []string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &watcher{
		Logger: log,
		fsw:    fsw,
		paths:  make(map[string]bool),
		wake:   make(chan struct{}, 1),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		w.paths[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fsw.Add(dir); err != nil {
			w.Warningf("can't watch '%s': %v", dir, err)
		}
	}

	return w, nil
}

func (w *watcher) run(ctx context.Context) {
	defer func() { _ = w.fsw.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.paths[filepath.Clean(ev.Name)] {
				continue
			}
			select {
			case w.wake <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.Debugf("watcher: %v", err)
		}
	}
}
