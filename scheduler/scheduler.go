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

// Package scheduler defines the capabilities the priority-inheritance engine
// consumes from the run-queue scheduler it is embedded in. None of them are
// implemented by this module: the ready-queue, the run/block transition, and
// the TCB's non-priority fields are explicitly out of scope.
// What lives here is the narrow interface the engine calls through, plus one
// reference, in-memory implementation used by tests and examples — a real
// kernel build supplies its own.
package scheduler

import "github.com/sabouaram/priosem/semaphore/ledger"

// TaskID is an opaque task identity. The engine never dereferences a task's
// internal state directly; it always goes through Scheduler, consistent with
// a non-owning back-reference design.
type TaskID string

// Scheduler is the set of external collaborators the inheritance engine
// needs: verify_tcb, set_priority, reprioritize, current_task,
// in_interrupt_context.
type Scheduler interface {
	// VerifyTCB reports whether id still refers to a live task. The engine
	// calls this before ever acting on a stored TaskID.
	VerifyTCB(id TaskID) bool

	// BasePriority returns the task's immutable base priority.
	BasePriority(id TaskID) int

	// SchedPriority returns the task's current effective priority.
	SchedPriority(id TaskID) int

	// SetPriority sets the task's effective priority, possibly marking it
	// pending preemption. Used when a nested-mode ledger entry changes the
	// holder's priority, and by the simple-mode boost rule.
	SetPriority(id TaskID, prio int)

	// Reprioritize is SetPriority's simple-mode counterpart: used by the
	// restore path when no ledger exists to consult.
	Reprioritize(id TaskID, prio int)

	// CurrentTask returns the identity of the task executing the current
	// entry point (in interrupt context, the task that was interrupted).
	CurrentTask() TaskID

	// InInterruptContext reports whether the caller is running with
	// interrupts disabled rather than under the task scheduler's lock.
	InInterruptContext() bool
}

// NestedScheduler is the capability a Scheduler must additionally provide
// when config.Config.NestedMode() is true: somewhere to keep each task's
// boost ledger. The engine type-asserts for this interface only when
// nested mode is configured, the same way it would reach into an extra TCB
// field that simple mode never touches.
type NestedScheduler interface {
	Scheduler

	// Ledger returns the boost ledger belonging to id, creating one on
	// first use if the implementation defers allocation. It must return
	// the same *ledger.Ledger on every call for a given, still-live id.
	Ledger(id TaskID) *ledger.Ledger
}
