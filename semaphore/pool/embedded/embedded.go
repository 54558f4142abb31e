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

// Package embedded implements the PREALLOCHOLDERS == 0 holder pool strategy:
// exactly two holder slots, owned by a single semaphore rather than shared
// process-wide. It exists so a semaphore that only ever needs to track at
// most two distinct holder tasks at once never pays for a shared freelist.
package embedded

import "github.com/sabouaram/priosem/semaphore/pool"

const slotCount = 2

// Pool is a two-slot holder record array, one per semaphore.
type Pool struct {
	slots [slotCount]pool.Record
}

// New returns a Pool with both slots empty.
func New() *Pool {
	return &Pool{}
}

// Alloc returns the first slot whose holder is unset, or nil if both slots
// are occupied.
func (p *Pool) Alloc() *pool.Record {
	for i := range p.slots {
		if p.slots[i].Holder == "" {
			return &p.slots[i]
		}
	}
	return nil
}

// Free clears r, returning its slot to the free state. r must be one of
// p's own two slots.
func (p *Pool) Free(r *pool.Record) {
	r.Holder = ""
	r.Counts = 0
	r.Next = nil
}

var _ pool.Pool = (*Pool)(nil)
