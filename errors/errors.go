/*
 * MIT License
 *
 * Copyright (c) 2026 priosem authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package errors provides the numeric-coded error values used internally by
// the priority-inheritance engine to describe degraded conditions (pool
// exhaustion, stale holders, ledger overflow, invariant violations).
//
// None of these values ever cross the semaphore layer's public API: every
// entry point in package semaphore is infallible by design, never
// propagating an error to its caller. They exist so that logging and tests
// have a stable, matchable value instead of an ad-hoc string.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// CodeError is a numeric classification for an Error, namespaced per
// package the way HTTP status codes are namespaced per concern.
type CodeError uint16

const (
	// UnknownError is the fallback code when none was assigned.
	UnknownError CodeError = 0
	// UnknownMessage is the message used when a code has no registered text.
	UnknownMessage = "unknown error"
)

// Package code ranges, mirroring a modules.go convention of one
// base offset per concern so that codes never collide across packages.
const (
	MinPkgInherit = 2900
)

const (
	CodePoolExhausted CodeError = MinPkgInherit + iota
	CodeStaleHolder
	CodeLedgerFull
	CodeInvariantViolation
	CodeDestroyWithLiveHolders
)

var codeMessage = map[CodeError]string{
	CodePoolExhausted:          "holder pool exhausted",
	CodeStaleHolder:            "stale holder record reclaimed",
	CodeLedgerFull:             "boost ledger full, entry dropped",
	CodeInvariantViolation:     "priority-inheritance invariant violated",
	CodeDestroyWithLiveHolders: "semaphore destroyed with live holder records",
}

// Message returns the registered text for the code, or UnknownMessage.
func (c CodeError) Message() string {
	if m, ok := codeMessage[c]; ok {
		return m
	}
	return UnknownMessage
}

func (c CodeError) String() string {
	return fmt.Sprintf("%d", uint16(c))
}

// Error is the value type returned by New/Newf. It is never returned from a
// semaphore entry point; it is only ever handed to the logger.
type Error interface {
	error

	// Code returns the numeric classification of this error.
	Code() CodeError
	// IsCode reports whether this error (not its parents) carries code.
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any parent carries code.
	HasCode(code CodeError) bool
	// Add attaches additional context errors as parents.
	Add(parent ...error)
	// GetTrace returns "file#line" for where the error was constructed.
	GetTrace() string
}

type ers struct {
	code CodeError
	msg  string
	trc  runtime.Frame
	prnt []Error
}

// New builds an Error with the given code and message, capturing the
// caller's frame for diagnostics.
func New(code CodeError, msg string, parent ...error) Error {
	e := &ers{code: code, msg: msg, trc: frame(2)}
	e.Add(parent...)
	return e
}

// Newf is New with fmt.Sprintf-style formatting of msg.
func Newf(code CodeError, format string, args ...any) Error {
	e := &ers{code: code, msg: fmt.Sprintf(format, args...), trc: frame(2)}
	return e
}

func frame(skip int) runtime.Frame {
	pc := make([]uintptr, 1)
	n := runtime.Callers(skip+1, pc)
	if n < 1 {
		return runtime.Frame{}
	}
	f, _ := runtime.CallersFrames(pc[:n]).Next()
	return f
}

func (e *ers) Error() string {
	if len(e.prnt) == 0 {
		return e.msg
	}
	parts := make([]string, 0, len(e.prnt)+1)
	parts = append(parts, e.msg)
	for _, p := range e.prnt {
		parts = append(parts, p.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ers) Code() CodeError { return e.code }

func (e *ers) IsCode(code CodeError) bool { return e.code == code }

func (e *ers) HasCode(code CodeError) bool {
	if e.code == code {
		return true
	}
	for _, p := range e.prnt {
		if p.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *ers) Add(parent ...error) {
	for _, p := range parent {
		if p == nil {
			continue
		}
		if er, ok := p.(Error); ok {
			e.prnt = append(e.prnt, er)
		} else {
			e.prnt = append(e.prnt, &ers{code: UnknownError, msg: p.Error()})
		}
	}
}

func (e *ers) GetTrace() string {
	if e.trc.File == "" {
		return ""
	}
	return fmt.Sprintf("%s#%d", e.trc.File, e.trc.Line)
}

func (e *ers) Unwrap() []error {
	r := make([]error, 0, len(e.prnt))
	for _, p := range e.prnt {
		r = append(r, p)
	}
	return r
}

// Is reports whether err is, or wraps, an Error of this package.
func Is(err error) bool {
	var e Error
	return errors.As(err, &e)
}

// Get returns err as an Error if it is one, else nil.
func Get(err error) Error {
	var e Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// HasCode reports whether err (or any of its parents) carries code.
func HasCode(err error, code CodeError) bool {
	if e := Get(err); e != nil {
		return e.HasCode(code)
	}
	return false
}
