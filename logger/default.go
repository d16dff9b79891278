// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"log/slog"
	"os"
)

func newDefaultLogger() *Logger {
	if isTerm {
		// skip 2 slog pkg calls, 3 this pkg calls
		return &Logger{sl: slog.New(withCallDepth(5, newTerminalHandler(os.Stderr)))}
	}
	return &Logger{sl: slog.New(newTextHandler(os.Stderr)).With(pluginAttr)}
}

var defaultLogger = newDefaultLogger()

func Error(a ...any) { defaultLogger.Error(a...) }
