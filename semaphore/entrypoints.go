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
	"github.com/sabouaram/priosem/semaphore/pool"
)

// Destroy releases every holder record this semaphore still owns back to
// its pool, without touching any holder's priority — a destroyed semaphore
// is assumed to have no pending waiters left to satisfy. In debug builds
// (config.Config.DebugAssertions), destroying an embedded-mode semaphore
// that still has more than one live holder record (more than one distinct
// task still holding a count) is logged. Freelist-mode semaphores legitimately carry more than
// one simultaneous distinct holder (a counting semaphore with an initial
// count greater than one), so the check does not apply there.
func (s *Semaphore) Destroy() {
	if s.cfg().DebugAssertions && !s.cfg().FreelistMode() && s.table.count() > 1 {
		e := errors.New(errors.CodeDestroyWithLiveHolders, errors.CodeDestroyWithLiveHolders.Message())
		s.log().Warn(e.Error(), logger.NewFields().
			Add("code", e.Code()).Add("semaphore", s.id).Add("holders", s.table.count()))
	}

	s.table.forEachCapture(func(r *pool.Record) bool {
		s.table.free(r)
		return false
	})
}

// AddHolder records that id now holds one more count on this semaphore —
// the acquire path's add_holder_tcb entry point. A first acquire allocates
// a holder record; a nested re-acquire by the same task just increments
// its count. Pool exhaustion is logged and counted, never returned.
func (s *Semaphore) AddHolder(id scheduler.TaskID) {
	if s.inheritDisabled {
		return
	}

	r := s.table.findOrAlloc(id)
	if r == nil {
		e := errors.New(errors.CodePoolExhausted, errors.CodePoolExhausted.Message())
		s.log().Error(e.Error(), logger.NewFields().
			Add("code", e.Code()).Add("semaphore", s.id).Add("holder", id))
		s.metricsC().PoolExhaustedInc()
		return
	}
	r.Counts++
}

// AddHolderCurrent is AddHolder against the currently running task — the
// common case when a task successfully takes a count it did not have to
// wait for.
func (s *Semaphore) AddHolderCurrent() {
	s.AddHolder(s.sched().CurrentTask())
}

// BoostPriority is the wait path's entry point: the calling task is about
// to block on this semaphore, and every current holder must be lifted to
// at least its priority. Holders whose TCB no longer verifies live are
// reclaimed instead of boosted.
func (s *Semaphore) BoostPriority() {
	if s.inheritDisabled {
		return
	}

	rtcb := s.sched().CurrentTask()
	rprio := s.sched().SchedPriority(rtcb)

	s.table.forEachCapture(func(r *pool.Record) bool {
		s.boost(r, rprio)
		return false
	})
}

// ReleaseHolder decrements the current task's count on this semaphore — the
// post path's bookkeeping half, run before whichever waiter is unblocked
// gets its turn to call BoostPriority again.
func (s *Semaphore) ReleaseHolder() {
	if s.inheritDisabled {
		return
	}

	rtcb := s.sched().CurrentTask()
	if r := s.table.find(rtcb); r != nil && r.Counts > 0 {
		r.Counts--
	}
}

// RestoreBaseprio is called once a count has actually changed hands (or, in
// interrupt context, once the engine has been told a waiter departed):
// stcb names the waiter that left, or "" if the restore is purely a debug
// verification pass with no priority change to make.
//
// Interrupt context applies the restore rule to every holder in one pass;
// task context applies it to every holder
// except the caller first, then to the caller itself — freeing the
// caller's own holder record, in embedded mode, between the two passes so
// the slot is available again before a subsequent preemption.
func (s *Semaphore) RestoreBaseprio(stcb scheduler.TaskID) {
	if s.inheritDisabled {
		return
	}

	if s.sched().InInterruptContext() {
		s.restoreInterrupt(stcb)
		return
	}
	s.restoreTaskContext(stcb)
}

func (s *Semaphore) restoreInterrupt(stcb scheduler.TaskID) {
	if stcb == "" {
		if s.cfg().DebugAssertions {
			s.verifyHolders()
		}
		return
	}

	s.table.forEach(func(r *pool.Record) bool {
		s.restoreTask(r.Holder)
		return false
	})
}

func (s *Semaphore) restoreTaskContext(stcb scheduler.TaskID) {
	rtcb := s.sched().CurrentTask()

	if stcb == "" {
		if s.cfg().DebugAssertions {
			s.verifyHolders()
		}
		s.table.freeIfZero(rtcb)
		return
	}

	// Pass 1: every holder except the caller.
	s.table.forEach(func(r *pool.Record) bool {
		if r.Holder != rtcb {
			s.restoreTask(r.Holder)
		}
		return false
	})

	// Between passes, embedded mode frees the caller's own slot early if
	// it is already down to zero counts, so it is available again before
	// any preemption the second pass's SetPriority calls might trigger.
	if !s.cfg().FreelistMode() {
		s.table.freeIfZero(rtcb)
	}

	// Pass 2: the caller itself.
	s.restoreTask(rtcb)

	s.table.freeIfZero(rtcb)
}

// Canceled applies the restore rule to every holder on behalf of a waiter
// that left without ever receiving a count — a timed-out or signal-
// interrupted wait. It is functionally the interrupt-context restore pass,
// usable from task context too, since no holder record of the departing
// waiter's own is involved.
func (s *Semaphore) Canceled(stcb scheduler.TaskID) {
	if s.inheritDisabled {
		return
	}

	s.table.forEach(func(r *pool.Record) bool {
		s.restoreTask(r.Holder)
		return false
	})
}
