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

// Package freelist implements the PREALLOCHOLDERS > 0 holder pool strategy:
// a fixed-capacity backing slice, threaded once at construction into a
// singly linked free stack shared by every semaphore built against the same
// Domain. No allocation happens past New; Alloc and Free only ever move
// pointers already owned by the pool.
package freelist

import "github.com/sabouaram/priosem/semaphore/pool"

// Pool is a process-wide (in this module: per-Domain) free stack of exactly
// capacity Records, shared by every semaphore drawing from it.
type Pool struct {
	records []pool.Record
	head    *pool.Record
}

// New preallocates capacity records and threads them into the free stack.
// A zero capacity yields a pool whose Alloc always returns nil; the Domain
// never builds one, since config.Config.FreelistMode reports true only for
// a positive PreallocHolders.
func New(capacity int) *Pool {
	p := &Pool{records: make([]pool.Record, capacity)}
	for i := range p.records {
		p.records[i].Next = p.head
		p.head = &p.records[i]
	}
	return p
}

// Alloc pops the head of the free stack, or returns nil if it is empty.
func (p *Pool) Alloc() *pool.Record {
	if p.head == nil {
		return nil
	}
	r := p.head
	p.head = r.Next
	r.Next = nil
	r.Holder = ""
	r.Counts = 0
	return r
}

// Free pushes r back onto the free stack. r.Next is overwritten; the caller
// must have already unlinked r from any holder-table list.
func (p *Pool) Free(r *pool.Record) {
	r.Holder = ""
	r.Counts = 0
	r.Next = p.head
	p.head = r
}

var _ pool.Pool = (*Pool)(nil)
