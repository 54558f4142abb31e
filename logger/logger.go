/*
MIT License

Copyright (c) 2026 priosem authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package logger is a small leveled facade over logrus, in the style of the
// upstream logger package this one was trimmed from: a Level type, a Fields
// map, and a Logger that never panics on a nil receiver so a caller deep in
// an interrupt-context critical section never needs a nil check before
// logging a degraded condition.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the sink the inheritance engine reports degraded conditions to:
// pool exhaustion, stale holders, ledger overflow, and (debug builds only)
// invariant violations.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)

	// SetLevel changes the minimum level that reaches the sink.
	SetLevel(lvl Level)
}

type lgr struct {
	l *logrus.Logger
}

// New returns a Logger writing JSON-ish key/value lines to stderr at InfoLevel.
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(InfoLevel.Logrus())
	return &lgr{l: l}
}

// Discard returns a Logger that drops every entry; useful for benchmarks and
// for pool/ledger unit tests that don't want log noise.
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(nilWriter{})
	return &lgr{l: l}
}

type nilWriter struct{}

func (nilWriter) Write(p []byte) (int, error) { return len(p), nil }

func (g *lgr) SetLevel(lvl Level) {
	if g == nil || g.l == nil {
		return
	}
	g.l.SetLevel(lvl.Logrus())
}

func (g *lgr) entry(f Fields) *logrus.Entry {
	if g == nil || g.l == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return g.l.WithFields(f.Logrus())
}

func (g *lgr) Debug(msg string, f Fields) { g.entry(f).Debug(msg) }
func (g *lgr) Info(msg string, f Fields)   { g.entry(f).Info(msg) }
func (g *lgr) Warn(msg string, f Fields)   { g.entry(f).Warn(msg) }
func (g *lgr) Error(msg string, f Fields)  { g.entry(f).Error(msg) }
