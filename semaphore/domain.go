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

// Package semaphore is the priority-inheritance bookkeeping layer for a
// counting semaphore: it reconciles a per-semaphore holder table against a
// per-task boost ledger so that a task blocked on a semaphore temporarily
// lifts every current holder to at least its own priority, and gives that
// priority back up once the last reason to hold it goes away.
//
// Every exported method here assumes the caller already owns the critical
// section — interrupts masked, or the scheduler's own lock held — and never
// takes one itself. None of it can fail in a way the caller needs to
// react to: pool exhaustion, stale holders and ledger overflow are all
// degraded conditions that get logged and counted, never returned.
package semaphore

import (
	"sync/atomic"

	"github.com/sabouaram/priosem/config"
	"github.com/sabouaram/priosem/logger"
	"github.com/sabouaram/priosem/metrics"
	"github.com/sabouaram/priosem/scheduler"
	"github.com/sabouaram/priosem/semaphore/ledger"
	"github.com/sabouaram/priosem/semaphore/pool"
	"github.com/sabouaram/priosem/semaphore/pool/embedded"
	"github.com/sabouaram/priosem/semaphore/pool/freelist"
)

// ID identifies a Semaphore for the purpose of matching its boosts back out
// of a task's ledger. It is ledger.SemaphoreID under the hood so the two
// packages never need to import each other.
type ID = ledger.SemaphoreID

// Domain bundles the configuration and external collaborators every
// Semaphore built from it shares: the compile-time knobs of config.Config,
// the Scheduler capability, a logging sink, an optional metrics set, and —
// in freelist mode only — the one process-wide pool every Semaphore in the
// Domain allocates holder records from.
//
// A real kernel build constructs exactly one Domain at boot. Tests
// construct one per scenario so freelist-mode pools don't leak state
// between cases.
type Domain struct {
	cfg     config.Config
	sched   scheduler.Scheduler
	nsched  scheduler.NestedScheduler
	log     logger.Logger
	metrics *metrics.Collectors

	shared pool.Pool
	nextID uint64
}

// NewDomain returns a Domain over the given configuration and scheduler. log
// and m may be nil: a nil logger falls back to logger.Discard(), a nil
// metrics set is a documented no-op. In nested mode (cfg.NestedMode()),
// sched must also implement scheduler.NestedScheduler or every boost is
// silently dropped — verified at Domain construction with a warning log, not
// a panic, since a misconfigured Domain must still degrade rather than
// crash the kernel it is embedded in.
func NewDomain(cfg config.Config, sched scheduler.Scheduler, log logger.Logger, m *metrics.Collectors) *Domain {
	if log == nil {
		log = logger.Discard()
	}

	d := &Domain{cfg: cfg, sched: sched, log: log, metrics: m}
	if cfg.NestedMode() {
		if ns, ok := sched.(scheduler.NestedScheduler); ok {
			d.nsched = ns
		} else {
			log.Warn("nested mode configured but scheduler has no ledger storage; boosts will not accumulate", nil)
		}
	}
	return d
}

// Initialize performs the one-time, allocation-bearing setup a kernel would
// do at bring-up: populating the shared freelist in freelist mode. It is a
// no-op in embedded mode, where each Semaphore carries its own two slots.
// Calling it more than once replaces the shared pool and orphans any
// Semaphore already constructed from the old one — callers are expected to
// call it exactly once, before the first NewSemaphore.
func (d *Domain) Initialize() {
	if d.cfg.FreelistMode() {
		d.shared = freelist.New(d.cfg.PreallocHolders)
	}
}

// NewSemaphore returns a Semaphore bound to this Domain. inheritDisabled
// mirrors a per-semaphore "inherit-disabled" flag: every entry point
// becomes a no-op when set, matching a semaphore created without priority
// inheritance enabled.
func (d *Domain) NewSemaphore(inheritDisabled bool) *Semaphore {
	id := ID(atomic.AddUint64(&d.nextID, 1))

	var p pool.Pool
	if d.cfg.FreelistMode() {
		if d.shared == nil {
			// Initialize was never called explicitly; lazily perform the
			// same one-time setup so a Domain is usable without a
			// separate bring-up step in tests and short-lived programs.
			d.shared = freelist.New(d.cfg.PreallocHolders)
		}
		p = d.shared
	} else {
		p = embedded.New()
	}

	return &Semaphore{
		id:              id,
		domain:          d,
		pool:            p,
		table:           newHolderTable(p, d.metrics),
		inheritDisabled: inheritDisabled,
	}
}
