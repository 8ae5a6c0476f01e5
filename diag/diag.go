// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag carries non-error diagnostics out of the engine: loads
// filtered at a boundary, strain-clipping events during a dynamic
// simulation, and solver progress when verbose tracing is enabled.
package diag

import (
	"os"

	"github.com/cpmech/gosl/io"
)

// Logger is a diagnostics sink modeled on gofem's out/printing.go. Pf,
// Pfyel and Pfred write the same uncoloured text; they differ only in
// the kind of message the caller reports. The zero value writes to stderr.
type Logger struct {
	Verbose bool
	w       *os.File
}

// NewLogger returns a Logger writing to os.Stderr.
func NewLogger(verbose bool) *Logger {
	return &Logger{Verbose: verbose, w: os.Stderr}
}

// Pf prints a plain diagnostic line, always.
func (l *Logger) Pf(msg string, args ...interface{}) {
	io.Ff(l.sink(), msg, args...)
}

// Pfyel prints a warning, e.g. a load silently filtered at a boundary.
func (l *Logger) Pfyel(msg string, args ...interface{}) {
	io.Ff(l.sink(), msg, args...)
}

// Pfred prints an error-adjacent diagnostic that does not itself abort
// the call (e.g. a clipped-strain event in the dynamics integrator).
func (l *Logger) Pfred(msg string, args ...interface{}) {
	io.Ff(l.sink(), msg, args...)
}

// Trace prints only when Verbose is set, the same role chk.Verbose plays
// in gofem's tests. The bvp searches do not call it, so their iteration
// counts are not reported.
func (l *Logger) Trace(msg string, args ...interface{}) {
	if l.Verbose {
		io.Ff(l.sink(), msg, args...)
	}
}

func (l *Logger) sink() *os.File {
	if l.w == nil {
		return os.Stderr
	}
	return l.w
}
