// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package campath

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/campath/internal/batch"
	"github.com/gogpu/campath/shaders"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a frame is being drawn.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for campath and its sub-packages.
// By default campath produces no log output. Pass nil to silence it again.
//
// Log levels used by campath:
//   - [slog.LevelDebug]: vertex buffer creation and lock failures
//   - [slog.LevelInfo]: device acquired and released
//   - [slog.LevelWarn]: skipped frames, failed draws, singular view matrices
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	batch.SetLogger(l)
	shaders.SetLogger(l)
}

// Logger returns the current logger used by campath.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

func slogger() *slog.Logger { return loggerPtr.Load() }
