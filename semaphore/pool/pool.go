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

// Package pool defines the shape of a holder-record allocator and the record
// type both allocation strategies hand back. Neither implementation
// (freelist, embedded) takes a lock: every call is made from inside a
// critical section the caller already owns.
package pool

import "github.com/sabouaram/priosem/scheduler"

// Record is a holder record: which task holds (or held) a count on some
// semaphore, how many counts it currently holds, and — shared by both pool
// backends, though only the freelist one ever threads it across allocator
// state — a Next link an owning holder table uses to keep its own
// intrusive per-semaphore list.
//
// Next is exported so the semaphore package's holder table can splice
// records it did not allocate (the embedded backend's two slots) into the
// same kind of list it uses for freelist-backed records, instead of needing
// two different table implementations.
type Record struct {
	Holder scheduler.TaskID
	Counts int
	Next   *Record
}

// Pool allocates and frees Records. Alloc returns nil when exhausted —
// never an error — so the caller (the holder table) can fall through to
// its own log-and-drop handling without a branch on error vs. nil.
type Pool interface {
	// Alloc returns a zeroed Record ready for a new holder, or nil if the
	// pool has no free record left.
	Alloc() *Record

	// Free returns r to the pool. The caller must have already unlinked r
	// from any holder-table list it was part of.
	Free(r *Record)
}
