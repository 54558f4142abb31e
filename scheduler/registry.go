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

package scheduler

import (
	"sync"

	"github.com/google/uuid"

	"github.com/sabouaram/priosem/semaphore/ledger"
)

// Registry is a reference Scheduler implementation backed by an in-memory
// task table. It exists for tests and examples: a real kernel build has its
// own run-queue and would implement Scheduler directly over its TCB array.
//
// Registry guards its own state with a mutex because it stands in for the
// external scheduler, not for the engine itself — the engine packages
// (semaphore, semaphore/pool/*, semaphore/ledger) never take a lock of their
// own.
type Registry struct {
	mu      sync.Mutex
	tasks   map[TaskID]*taskState
	current TaskID
	irq     bool
	nestCap int
}

type taskState struct {
	base   int
	sched  int
	alive  bool
	ledger *ledger.Ledger
}

// NewRegistry returns an empty Registry, current task unset, task context,
// per-task ledger capacity 4 until SetNestDepth sets another.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[TaskID]*taskState)}
}

// SetNestDepth configures the per-task ledger capacity Ledger lazily
// allocates with. Call it once, before any task that will use nested mode
// is spawned; Registry otherwise has no way to learn config.Config.NestDepth,
// since it is a reference Scheduler and not itself part of the engine.
func (r *Registry) SetNestDepth(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nestCap = n
}

// Ledger returns id's boost ledger, allocating it on first use. It
// implements scheduler.NestedScheduler.
func (r *Registry) Ledger(id TaskID) *ledger.Ledger {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil
	}
	if t.ledger == nil {
		capacity := r.nestCap
		if capacity == 0 {
			capacity = 4
		}
		t.ledger = ledger.New(capacity)
	}
	return t.ledger
}

// Spawn registers a new task with the given base priority (sched_priority
// starts equal to base_priority) and returns its identity.
func (r *Registry) Spawn(basePriority int) TaskID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := TaskID(uuid.NewString())
	r.tasks[id] = &taskState{base: basePriority, sched: basePriority, alive: true}
	return id
}

// Kill marks id as no longer live; subsequent VerifyTCB(id) calls return false.
func (r *Registry) Kill(id TaskID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tasks[id]; ok {
		t.alive = false
	}
}

// SetCurrent sets the task identity CurrentTask returns, and switches to
// task context (InInterruptContext reports false) unless SetInterruptContext
// is used afterward.
func (r *Registry) SetCurrent(id TaskID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = id
	r.irq = false
}

// SetInterruptContext toggles whether the reference scheduler reports
// InInterruptContext() == true.
func (r *Registry) SetInterruptContext(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.irq = v
}

func (r *Registry) VerifyTCB(id TaskID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	return ok && t.alive
}

func (r *Registry) BasePriority(id TaskID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tasks[id]; ok {
		return t.base
	}
	return 0
}

func (r *Registry) SchedPriority(id TaskID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tasks[id]; ok {
		return t.sched
	}
	return 0
}

func (r *Registry) SetPriority(id TaskID, prio int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tasks[id]; ok {
		t.sched = prio
	}
}

func (r *Registry) Reprioritize(id TaskID, prio int) {
	r.SetPriority(id, prio)
}

func (r *Registry) CurrentTask() TaskID {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.current
}

func (r *Registry) InInterruptContext() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.irq
}

var _ Scheduler = (*Registry)(nil)
var _ NestedScheduler = (*Registry)(nil)
