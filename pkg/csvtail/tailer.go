// SPDX-License-Identifier: GPL-3.0-or-later

package csvtail

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gtaska/graphtail/logger"
)

const (
	retryInterval = time.Second
	readChunk     = 32 * 1024
)

type Config struct {
	Path            string
	RowDelimiter    byte
	ColumnDelimiter byte
}

// Tailer follows one CSV file. It reopens the file from the start when it is
// truncated, removed or replaced.
//
// A Tailer is not safe for concurrent use.
type Tailer struct {
	*logger.Logger

	path     string
	listener Listener
	parser   *parser
	now      func() time.Time

	file    *os.File
	offset  int64
	retryAt time.Time
	buf     []byte

	lastWarning string
	err         error
}

func New(cfg Config, l Listener) *Tailer {
	return &Tailer{
		Logger:   logger.New().With(slog.String("input", cfg.Path)),
		path:     cfg.Path,
		listener: l,
		parser:   newParser(cfg.RowDelimiter, cfg.ColumnDelimiter),
		now:      time.Now,
		buf:      make([]byte, readChunk),
	}
}

func (t *Tailer) Path() string { return t.path }

// Err returns the error that stopped the tailer for good, if any.
func (t *Tailer) Err() error { return t.err }

// IsOpen reports whether the file is currently open.
func (t *Tailer) IsOpen() bool { return t.file != nil }

// Poll opens the file when it is closed and the retry interval has passed,
// then feeds any bytes appended since the last call to the parser.
func (t *Tailer) Poll() {
	if t.err != nil {
		return
	}

	if t.file == nil {
		if t.now().Before(t.retryAt) {
			return
		}
		if !t.open() {
			return
		}
	}

	t.read()
}

// Close releases the file. Known headers are kept.
func (t *Tailer) Close() {
	if t.file == nil {
		return
	}
	if err := t.file.Close(); err != nil {
		t.Debugf("close: %v", err)
	}
	t.file = nil
}

func (t *Tailer) open() bool {
	t.parser.line = 1

	f, err := os.Open(t.path)
	if err != nil {
		t.warning(fmt.Sprintf("unable to open file for input: %v", unwrapPathError(err)))
		t.retryAt = t.now().Add(retryInterval)
		return false
	}

	t.Debug("file opened")
	t.file = f
	t.offset = 0

	return true
}

func (t *Tailer) read() {
	fi, err := t.file.Stat()
	if err != nil {
		t.Debugf("stat: %v", err)
		t.restart()
		return
	}

	if !t.isSameFile(fi) {
		t.Notice("file removed or replaced, reopening")
		t.restart()
		return
	}

	switch size := fi.Size(); {
	case size < t.offset:
		t.Noticef("file truncated (size %d, offset %d), reopening", size, t.offset)
		t.restart()
		return
	case size == t.offset:
		return
	}

	for {
		n, err := t.file.Read(t.buf)
		if n > 0 {
			t.offset += int64(n)
			if perr := t.parser.feed(t.buf[:n], t.listener, t.warning); perr != nil {
				t.fail(perr)
				return
			}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Debugf("read: %v", err)
			t.restart()
			return
		}
	}
}

// isSameFile reports whether the path still names the open file.
func (t *Tailer) isSameFile(open os.FileInfo) bool {
	fi, err := os.Stat(t.path)
	if err != nil {
		return false
	}
	return os.SameFile(open, fi)
}

func (t *Tailer) restart() {
	t.parser.reset(t.listener)
	t.Close()
}

func (t *Tailer) fail(err error) {
	var mismatch *ColumnMismatchError
	if errors.As(err, &mismatch) {
		mismatch.Path = t.path
	}
	t.err = err
	t.Errorf("%v, giving up on this input", err)
	t.Close()
}

// warning logs msg unless it repeats the previous warning.
func (t *Tailer) warning(msg string) {
	if msg == t.lastWarning {
		return
	}
	t.lastWarning = msg
	t.Warningf("line %d: %s", t.parser.line, msg)
}

func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
