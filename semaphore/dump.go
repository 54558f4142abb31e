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
	"fmt"

	"github.com/sabouaram/priosem/errors"
	"github.com/sabouaram/priosem/logger"
	"github.com/sabouaram/priosem/scheduler"
	"github.com/sabouaram/priosem/semaphore/pool"
)

// HolderInfo is a read-only snapshot of one holder record, for diagnostics
// and tests that want to assert on table state without reaching into the
// unexported holder table directly.
type HolderInfo struct {
	Holder scheduler.TaskID
	Counts int
}

// Holders returns a snapshot of every holder record currently linked into
// this semaphore's table, in no particular order.
func (s *Semaphore) Holders() []HolderInfo {
	var out []HolderInfo
	s.table.forEach(func(r *pool.Record) bool {
		out = append(out, HolderInfo{Holder: r.Holder, Counts: r.Counts})
		return false
	})
	return out
}

// verifyHolders is the debug-only invariant check, gated independently of
// the PHDebug dump: every holder's scheduled priority must equal its base
// priority, and (nested mode) its ledger must hold no entry for this
// semaphore, whenever RestoreBaseprio is called with no departing waiter —
// i.e. whenever nothing should still be boosting anyone through this
// semaphore.
func (s *Semaphore) verifyHolders() {
	s.table.forEach(func(r *pool.Record) bool {
		base := s.sched().BasePriority(r.Holder)
		sched := s.sched().SchedPriority(r.Holder)

		violated := sched != base
		if s.cfg().NestedMode() {
			if led := s.ledgerFor(r.Holder); led != nil && led.HasSemaphore(s.id) {
				violated = true
			}
		}

		if violated {
			e := errors.New(errors.CodeInvariantViolation, errors.CodeInvariantViolation.Message())
			s.log().Warn(e.Error(), logger.NewFields().
				Add("code", e.Code()).
				Add("semaphore", s.id).
				Add("holder", r.Holder).
				Add("base_priority", base).
				Add("sched_priority", sched))
		}
		return false
	})
}

// Dump writes one Debug-level log line per holder record currently linked
// into this semaphore's table: address, next link, holder identity, count.
// It is a no-op unless config.Config.PHDebug is set.
func (s *Semaphore) Dump() {
	if !s.cfg().PHDebug {
		return
	}

	s.table.forEach(func(r *pool.Record) bool {
		s.log().Debug(fmt.Sprintf("holder addr=%p next=%p holder=%s counts=%d",
			r, r.Next, r.Holder, r.Counts), nil)
		return false
	})
}
