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

// Package metrics exposes the black-box health signals of the
// priority-inheritance engine as a small, independently registrable
// prometheus collector set, mirroring the common prometheus/pool
// pattern of one Collector value per subsystem instead of relying on the
// global default registry.
//
// Every counter here is incremented from inside the engine's critical
// section with a single lock-free atomic add (prometheus counters already
// are), so none of it reintroduces blocking into a path that must never
// suspend.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors bundles the counters and gauges the inheritance engine reports
// to. A nil *Collectors is valid and every method on it is a no-op, so a
// caller that does not care about metrics can pass nil to semaphore.NewDomain
// without guarding every call site.
type Collectors struct {
	PoolExhausted   prometheus.Counter
	StaleHolders    prometheus.Counter
	LedgerDropped   prometheus.Counter
	BoostsApplied   prometheus.Counter
	RestoresApplied prometheus.Counter
	HoldersTracked  prometheus.Gauge
}

// New builds a Collectors with the given namespace (e.g. "kernel") under the
// subsystem "priosem", ready to be passed to a prometheus.Registerer.
func New(namespace string) *Collectors {
	mk := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "priosem",
			Name:      name,
			Help:      help,
		})
	}

	return &Collectors{
		PoolExhausted: mk("pool_exhausted_total", "Holder pool allocation failures."),
		StaleHolders:  mk("stale_holders_total", "Holder records reclaimed from dead tasks."),
		LedgerDropped: mk("ledger_dropped_total", "Boost ledger entries dropped due to capacity."),
		BoostsApplied: mk("boosts_applied_total", "Priority boosts applied to holders."),
		RestoresApplied: mk("restores_applied_total",
			"Priority restorations applied to holders."),
		HoldersTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "priosem",
			Name:      "holders_tracked",
			Help:      "Holder records currently allocated across all semaphores.",
		}),
	}
}

// Register adds every collector in c to r. Safe to call with a nil c.
func (c *Collectors) Register(r prometheus.Registerer) error {
	if c == nil {
		return nil
	}
	for _, coll := range []prometheus.Collector{
		c.PoolExhausted, c.StaleHolders, c.LedgerDropped,
		c.BoostsApplied, c.RestoresApplied, c.HoldersTracked,
	} {
		if err := r.Register(coll); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collectors) incPoolExhausted() {
	if c != nil {
		c.PoolExhausted.Inc()
	}
}

func (c *Collectors) incStaleHolder() {
	if c != nil {
		c.StaleHolders.Inc()
	}
}

func (c *Collectors) incLedgerDropped() {
	if c != nil {
		c.LedgerDropped.Inc()
	}
}

func (c *Collectors) incBoostApplied() {
	if c != nil {
		c.BoostsApplied.Inc()
	}
}

func (c *Collectors) incRestoreApplied() {
	if c != nil {
		c.RestoresApplied.Inc()
	}
}

func (c *Collectors) addHoldersTracked(delta float64) {
	if c != nil {
		c.HoldersTracked.Add(delta)
	}
}

// PoolExhaustedInc records a holder pool allocation failure.
func (c *Collectors) PoolExhaustedInc() { c.incPoolExhausted() }

// StaleHolderInc records a stale holder reclamation.
func (c *Collectors) StaleHolderInc() { c.incStaleHolder() }

// LedgerDroppedInc records a dropped boost ledger entry.
func (c *Collectors) LedgerDroppedInc() { c.incLedgerDropped() }

// BoostAppliedInc records an applied priority boost.
func (c *Collectors) BoostAppliedInc() { c.incBoostApplied() }

// RestoreAppliedInc records an applied priority restoration.
func (c *Collectors) RestoreAppliedInc() { c.incRestoreApplied() }

// HolderAllocated records one new holder record entering the tracked set.
func (c *Collectors) HolderAllocated() { c.addHoldersTracked(1) }

// HolderFreed records one holder record leaving the tracked set.
func (c *Collectors) HolderFreed() { c.addHoldersTracked(-1) }
