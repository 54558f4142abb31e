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

package semaphore

import (
	"github.com/sabouaram/priosem/metrics"
	"github.com/sabouaram/priosem/scheduler"
	"github.com/sabouaram/priosem/semaphore/pool"
)

// holderTable is the Holder Table: the set of records currently allocated
// to one semaphore, threaded into a single intrusive list via
// pool.Record.Next regardless of which pool backend produced them. The
// embedded backend's two slots get exactly the same list treatment as
// freelist-backed records so the operations below need only one
// implementation.
type holderTable struct {
	pool    pool.Pool
	metrics *metrics.Collectors
	head    *pool.Record
}

func newHolderTable(p pool.Pool, m *metrics.Collectors) *holderTable {
	return &holderTable{pool: p, metrics: m}
}

// find returns the record currently held by id, or nil.
func (t *holderTable) find(id scheduler.TaskID) *pool.Record {
	for r := t.head; r != nil; r = r.Next {
		if r.Holder == id {
			return r
		}
	}
	return nil
}

// findOrAlloc returns id's existing record, or allocates and links a new
// one. It returns nil if id has no record and the pool is exhausted.
func (t *holderTable) findOrAlloc(id scheduler.TaskID) *pool.Record {
	if r := t.find(id); r != nil {
		return r
	}
	r := t.pool.Alloc()
	if r == nil {
		return nil
	}
	r.Holder = id
	r.Counts = 0
	r.Next = t.head
	t.head = r
	t.metrics.HolderAllocated()
	return r
}

// free unlinks r from the table and returns it to the pool. r must belong
// to this table.
func (t *holderTable) free(r *pool.Record) {
	if t.head == r {
		t.head = r.Next
	} else {
		for p := t.head; p != nil; p = p.Next {
			if p.Next == r {
				p.Next = r.Next
				break
			}
		}
	}
	t.pool.Free(r)
	t.metrics.HolderFreed()
}

// freeIfZero frees id's record if it exists and currently holds zero
// counts — the table's find_and_free_if_zero operation.
func (t *holderTable) freeIfZero(id scheduler.TaskID) {
	if r := t.find(id); r != nil && r.Counts == 0 {
		t.free(r)
	}
}

// forEach walks every record without mutating the list. handler returning
// true stops the walk early. The handler must not free the record it was
// given; use forEachCapture for that.
func (t *holderTable) forEach(handler func(r *pool.Record) bool) {
	for r := t.head; r != nil; r = r.Next {
		if handler(r) {
			return
		}
	}
}

// forEachCapture walks every record, capturing each one's successor before
// invoking handler, so handler may free the record it was given.
func (t *holderTable) forEachCapture(handler func(r *pool.Record) bool) {
	r := t.head
	for r != nil {
		next := r.Next
		if handler(r) {
			return
		}
		r = next
	}
}

// count returns the number of records currently linked into the table.
func (t *holderTable) count() int {
	n := 0
	for r := t.head; r != nil; r = r.Next {
		n++
	}
	return n
}
