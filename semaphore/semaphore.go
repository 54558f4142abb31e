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
	"github.com/sabouaram/priosem/config"
	"github.com/sabouaram/priosem/logger"
	"github.com/sabouaram/priosem/metrics"
	"github.com/sabouaram/priosem/scheduler"
	"github.com/sabouaram/priosem/semaphore/pool"
)

// Semaphore is the PI bookkeeping state for one counting semaphore: a
// holder table plus the handful of entry points (entrypoints.go) that keep
// it, and every holder's effective priority, consistent. It carries no
// count/wait-queue arithmetic of its own — that belongs to the semaphore
// implementation this bookkeeping layer is embedded in.
type Semaphore struct {
	id     ID
	domain *Domain
	pool   pool.Pool
	table  *holderTable

	// inheritDisabled mirrors a semaphore constructed with priority
	// inheritance turned off: every entry point becomes a no-op.
	inheritDisabled bool
}

// ID returns the Semaphore's identity, the same value its boosts are
// recorded under in any task's ledger.
func (s *Semaphore) ID() ID { return s.id }

func (s *Semaphore) cfg() config.Config            { return s.domain.cfg }
func (s *Semaphore) sched() scheduler.Scheduler    { return s.domain.sched }
func (s *Semaphore) log() logger.Logger            { return s.domain.log }
func (s *Semaphore) metricsC() *metrics.Collectors { return s.domain.metrics }
