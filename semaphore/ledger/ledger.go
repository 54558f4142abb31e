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

// Package ledger implements the nested-mode boost ledger: a fixed-capacity,
// per-task list of (semaphore, priority) contributions, so a restore on one
// semaphore can recompute a holder's correct effective priority from the
// boosts it still owes to every other semaphore it holds.
//
// A Ledger does not know which task it belongs to and takes no lock of its
// own — it is reached through a scheduler.NestedScheduler implementation
// the same way any other TCB field would be, and every call happens from
// inside the caller's critical section.
package ledger

// SemaphoreID identifies a semaphore for the purpose of matching ledger
// entries back to the semaphore that posted them. It is deliberately not
// *semaphore.Semaphore: the ledger package must not import the semaphore
// package (which itself imports ledger), and a semaphore's identity for
// this purpose is just an opaque, comparable handle assigned once at
// construction.
type SemaphoreID uint64

// Entry is one boost contribution: "sem boosted this task's holder to at
// least Priority".
type Entry struct {
	Sem      SemaphoreID
	Priority int
}

// Ledger is a fixed-capacity, append/strip list of Entry values belonging
// to a single task. Capacity is fixed at construction; once full, Append
// reports false and the caller is expected to log-and-drop rather than grow
// the backing slice — nested mode trades a bounded, pre-sized ledger for
// never allocating once a task starts acquiring semaphores.
type Ledger struct {
	entries []Entry
}

// New returns an empty Ledger with room for exactly capacity entries.
func New(capacity int) *Ledger {
	return &Ledger{entries: make([]Entry, 0, capacity)}
}

// Len reports how many boosts are currently recorded.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Append records that sem is boosting this task to at least priority. It
// reports false, without modifying the ledger, if the ledger is already at
// capacity — the caller (the boost rule) is responsible for logging and
// counting the drop.
func (l *Ledger) Append(sem SemaphoreID, priority int) bool {
	if l == nil || len(l.entries) == cap(l.entries) {
		return false
	}
	l.entries = append(l.entries, Entry{Sem: sem, Priority: priority})
	return true
}

// Max returns the highest priority among base and every recorded entry —
// the task's correct effective priority once all outstanding boosts are
// accounted for.
func (l *Ledger) Max(base int) int {
	max := base
	if l == nil {
		return max
	}
	for _, e := range l.entries {
		if e.Priority > max {
			max = e.Priority
		}
	}
	return max
}

// HasSemaphore reports whether any entry in the ledger was posted by sem.
func (l *Ledger) HasSemaphore(sem SemaphoreID) bool {
	if l == nil {
		return false
	}
	for _, e := range l.entries {
		if e.Sem == sem {
			return true
		}
	}
	return false
}

// StripAll removes every entry posted by sem, swapping each removed entry
// with the last live one to avoid shifting the whole slice.
func (l *Ledger) StripAll(sem SemaphoreID) {
	if l == nil {
		return
	}
	for i := 0; i < len(l.entries); {
		if l.entries[i].Sem == sem {
			last := len(l.entries) - 1
			l.entries[i] = l.entries[last]
			l.entries = l.entries[:last]
			continue
		}
		i++
	}
}

// StripHighest removes the single highest-priority entry posted by sem
// (swap-with-last), leaving any other entries sem may still hold in place.
// It reports false if sem has no entry in the ledger.
func (l *Ledger) StripHighest(sem SemaphoreID) bool {
	if l == nil {
		return false
	}
	best := -1
	for i, e := range l.entries {
		if e.Sem != sem {
			continue
		}
		if best == -1 || e.Priority > l.entries[best].Priority {
			best = i
		}
	}
	if best == -1 {
		return false
	}
	last := len(l.entries) - 1
	l.entries[best] = l.entries[last]
	l.entries = l.entries[:last]
	return true
}
