// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lm

import (
	"fmt"
	"io"
)

// LogLevel controls the frequency and type of logger output.
type LogLevel int

const (
	// LogNoop no output is generated (level < 0).
	LogNoop LogLevel = -1
	// LogLast print one line at the start and one at the end of the solve.
	LogLast LogLevel = 0
	// LogEval print cost and |g|∞ at every accepted iteration.
	LogEval LogLevel = 1
	// LogTrace print damping and step-norm detail at every iteration.
	LogTrace LogLevel = 2
)

// Logger handles diagnostic output for the LM engine. The writers must be
// safe for the caller's concurrency model; the engine itself never calls
// Logger from more than one goroutine during a single Fit.
type Logger struct {
	Level LogLevel
	Out   io.Writer
}

func (l *Logger) enable(level LogLevel) bool {
	return l != nil && l.Level >= level
}

func (l *Logger) log(format string, a ...any) {
	if l == nil || l.Out == nil {
		return
	}
	_, _ = fmt.Fprintf(l.Out, format, a...)
}
