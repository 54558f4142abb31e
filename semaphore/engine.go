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
	"github.com/sabouaram/priosem/errors"
	"github.com/sabouaram/priosem/logger"
	"github.com/sabouaram/priosem/scheduler"
	"github.com/sabouaram/priosem/semaphore/ledger"
	"github.com/sabouaram/priosem/semaphore/pool"
)

// boost applies the boost rule to one holder record on behalf of the
// current task (the waiter about to block). It first reclaims the record
// if the holder it names is no longer a live task — a crashed or exited
// holder never gets to keep a priority boost.
func (s *Semaphore) boost(r *pool.Record, waiterPrio int) {
	htcb := r.Holder

	if !s.sched().VerifyTCB(htcb) {
		e := errors.New(errors.CodeStaleHolder, errors.CodeStaleHolder.Message())
		s.log().Warn(e.Error(), logger.NewFields().
			Add("code", e.Code()).Add("semaphore", s.id).Add("holder", htcb))
		s.metricsC().StaleHolderInc()
		s.table.free(r)
		return
	}

	if s.cfg().NestedMode() {
		s.boostNested(htcb, waiterPrio)
		return
	}
	s.boostSimple(htcb, waiterPrio)
}

// boostSimple is the simple-mode boost rule: raise
// sched_priority directly if the waiter outranks it, remembering nothing.
func (s *Semaphore) boostSimple(htcb scheduler.TaskID, waiterPrio int) {
	if waiterPrio > s.sched().SchedPriority(htcb) {
		if s.cfg().DebugInfo {
			s.log().Info("boosting holder", logger.NewFields().
				Add("semaphore", s.id).Add("holder", htcb).
				Add("from", s.sched().SchedPriority(htcb)).Add("to", waiterPrio))
		}
		s.sched().SetPriority(htcb, waiterPrio)
		s.metricsC().BoostAppliedInc()
	}
}

// boostNested is the nested-mode boost rule: the waiter's priority is
// recorded in the holder's ledger (so a later restore on another semaphore
// can recompute the right floor), and sched_priority only rises, never
// falls, as a result of a boost.
func (s *Semaphore) boostNested(htcb scheduler.TaskID, waiterPrio int) {
	base := s.sched().BasePriority(htcb)
	if waiterPrio <= base {
		return
	}

	led := s.ledgerFor(htcb)
	if led == nil {
		return
	}

	if !led.Append(s.id, waiterPrio) {
		e := errors.New(errors.CodeLedgerFull, errors.CodeLedgerFull.Message())
		s.log().Error(e.Error(), logger.NewFields().
			Add("code", e.Code()).Add("semaphore", s.id).Add("holder", htcb))
		s.metricsC().LedgerDroppedInc()
		return
	}

	if waiterPrio > s.sched().SchedPriority(htcb) {
		if s.cfg().DebugInfo {
			s.log().Info("boosting holder", logger.NewFields().
				Add("semaphore", s.id).Add("holder", htcb).
				Add("from", s.sched().SchedPriority(htcb)).Add("to", waiterPrio))
		}
		s.sched().SetPriority(htcb, waiterPrio)
		s.metricsC().BoostAppliedInc()
	}
}

// restoreTask applies the restore rule to one task's holder state on this
// semaphore: in simple mode, drop straight to base priority if different;
// in nested mode, strip this semaphore's contribution from the ledger and
// recompute the floor from whatever boosts remain.
func (s *Semaphore) restoreTask(id scheduler.TaskID) {
	if s.cfg().NestedMode() {
		s.restoreTaskNested(id)
		return
	}
	s.restoreTaskSimple(id)
}

func (s *Semaphore) restoreTaskSimple(id scheduler.TaskID) {
	base := s.sched().BasePriority(id)
	if s.sched().SchedPriority(id) != base {
		if s.cfg().DebugInfo {
			s.log().Info("restoring holder", logger.NewFields().
				Add("semaphore", s.id).Add("holder", id).
				Add("from", s.sched().SchedPriority(id)).Add("to", base))
		}
		s.sched().Reprioritize(id, base)
		s.metricsC().RestoreAppliedInc()
	}
}

func (s *Semaphore) restoreTaskNested(id scheduler.TaskID) {
	led := s.ledgerFor(id)
	if led == nil {
		return
	}

	if r := s.table.find(id); r != nil && r.Counts > 0 {
		led.StripHighest(s.id)
	} else {
		led.StripAll(s.id)
	}

	base := s.sched().BasePriority(id)
	newPrio := led.Max(base)
	if s.sched().SchedPriority(id) != newPrio {
		if s.cfg().DebugInfo {
			s.log().Info("restoring holder", logger.NewFields().
				Add("semaphore", s.id).Add("holder", id).
				Add("from", s.sched().SchedPriority(id)).Add("to", newPrio))
		}
		s.sched().SetPriority(id, newPrio)
		s.metricsC().RestoreAppliedInc()
	}
}

// ledgerFor returns id's boost ledger, or nil if nested mode is configured
// but the scheduler has no ledger storage (NewDomain already logged that
// condition once, at construction).
func (s *Semaphore) ledgerFor(id scheduler.TaskID) *ledger.Ledger {
	if s.domain.nsched == nil {
		return nil
	}
	return s.domain.nsched.Ledger(id)
}
