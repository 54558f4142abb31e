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

package semaphore_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/priosem/config"
)

var _ = Describe("Scenario 1: direct inheritance", func() {
	It("boosts the holder to the waiter's priority and restores it on release", func() {
		d, reg := newDomain(embeddedCfg())
		s := d.NewSemaphore(false)

		low := reg.Spawn(10)
		high := reg.Spawn(30)

		reg.SetCurrent(low)
		s.AddHolderCurrent()

		reg.SetCurrent(high)
		s.BoostPriority()
		Expect(reg.SchedPriority(low)).To(Equal(30))

		reg.SetCurrent(low)
		s.ReleaseHolder()
		s.RestoreBaseprio(high)
		Expect(reg.SchedPriority(low)).To(Equal(10))

		reg.SetCurrent(high)
		s.AddHolderCurrent()
		Expect(reg.SchedPriority(high)).To(Equal(30))
	})
})

var _ = Describe("Scenario 2: chained inheritance, simple mode", func() {
	It("accepts the degradation of dropping the original holder straight to base", func() {
		d, reg := newDomain(embeddedCfg())
		semS := d.NewSemaphore(false)
		semT := d.NewSemaphore(false)

		low := reg.Spawn(10)
		mid := reg.Spawn(20)
		high := reg.Spawn(30)

		reg.SetCurrent(low)
		semS.AddHolderCurrent()

		reg.SetCurrent(mid)
		semS.BoostPriority()
		Expect(reg.SchedPriority(low)).To(Equal(20))

		semT.AddHolderCurrent()

		reg.SetCurrent(high)
		semT.BoostPriority()
		Expect(reg.SchedPriority(mid)).To(Equal(30))

		reg.SetCurrent(low)
		semS.ReleaseHolder()
		semS.RestoreBaseprio(mid)
		Expect(reg.SchedPriority(low)).To(Equal(10))

		reg.SetCurrent(mid)
		semS.AddHolderCurrent()
	})
})

var _ = Describe("Scenario 3: nested mode correctness", func() {
	It("clears the ledger entry and restores base only once the count is gone", func() {
		d, reg := newDomain(nestedCfg(4))
		semS := d.NewSemaphore(false)

		low := reg.Spawn(10)
		mid := reg.Spawn(20)

		reg.SetCurrent(low)
		semS.AddHolderCurrent()

		reg.SetCurrent(mid)
		semS.BoostPriority()
		Expect(reg.SchedPriority(low)).To(Equal(20))
		Expect(reg.Ledger(low).Len()).To(Equal(1))

		reg.SetCurrent(low)
		semS.ReleaseHolder()
		semS.RestoreBaseprio(mid)

		Expect(reg.SchedPriority(low)).To(Equal(10))
		Expect(reg.Ledger(low).Len()).To(Equal(0))

		reg.SetCurrent(mid)
		semS.AddHolderCurrent()
	})
})

var _ = Describe("Scenario 4: multiple waiters, nested mode", func() {
	It("strips the highest-for-sem entry first, then strips all once counts reach zero", func() {
		d, reg := newDomain(nestedCfg(4))
		s := d.NewSemaphore(false)

		low := reg.Spawn(10)
		mid := reg.Spawn(20)
		high := reg.Spawn(30)

		reg.SetCurrent(low)
		s.AddHolderCurrent()
		s.AddHolderCurrent() // two nested acquires, so one release won't yet hit zero

		reg.SetCurrent(mid)
		s.BoostPriority()
		Expect(reg.SchedPriority(low)).To(Equal(20))

		reg.SetCurrent(high)
		s.BoostPriority()
		Expect(reg.SchedPriority(low)).To(Equal(30))
		Expect(reg.Ledger(low).Len()).To(Equal(2))

		reg.SetCurrent(low)
		s.ReleaseHolder()
		s.RestoreBaseprio(high)
		Expect(reg.SchedPriority(low)).To(Equal(20))
		Expect(reg.Ledger(low).Len()).To(Equal(1))

		reg.SetCurrent(low)
		s.ReleaseHolder()
		s.RestoreBaseprio(mid)
		Expect(reg.SchedPriority(low)).To(Equal(10))
		Expect(reg.Ledger(low).Len()).To(Equal(0))
	})
})

var _ = Describe("Scenario 5: cancellation", func() {
	It("restores the holder in simple mode when the waiter's wait is cancelled", func() {
		d, reg := newDomain(embeddedCfg())
		s := d.NewSemaphore(false)

		low := reg.Spawn(10)
		high := reg.Spawn(30)

		reg.SetCurrent(low)
		s.AddHolderCurrent()

		reg.SetCurrent(high)
		s.BoostPriority()
		Expect(reg.SchedPriority(low)).To(Equal(30))

		s.Canceled(high)
		Expect(reg.SchedPriority(low)).To(Equal(10))
	})

	It("strips only the cancelled waiter's entry in nested mode", func() {
		d, reg := newDomain(nestedCfg(4))
		s := d.NewSemaphore(false)

		low := reg.Spawn(10)
		high := reg.Spawn(30)

		reg.SetCurrent(low)
		s.AddHolderCurrent()

		reg.SetCurrent(high)
		s.BoostPriority()
		Expect(reg.SchedPriority(low)).To(Equal(30))

		s.Canceled(high)
		Expect(reg.SchedPriority(low)).To(Equal(10))
		Expect(reg.Ledger(low).Len()).To(Equal(0))
	})
})

var _ = DescribeTable("Scenario 6: pool exhaustion",
	func(cfg config.Config) {
		d, reg := newDomain(cfg)
		s := d.NewSemaphore(false)

		a := reg.Spawn(10)
		b := reg.Spawn(10)
		c := reg.Spawn(10)

		reg.SetCurrent(a)
		s.AddHolderCurrent()
		reg.SetCurrent(b)
		s.AddHolderCurrent()
		reg.SetCurrent(c)
		s.AddHolderCurrent()

		Expect(s.Holders()).To(HaveLen(2))

		// The third task was never tracked; releasing and restoring on its
		// behalf must stay inert rather than panic or affect the other two.
		reg.SetCurrent(c)
		s.ReleaseHolder()
		s.RestoreBaseprio(c)
		Expect(s.Holders()).To(HaveLen(2))
	},
	Entry("embedded mode, two slots", embeddedCfg()),
	Entry("freelist mode, capacity two", freelistCfg(2)),
)
