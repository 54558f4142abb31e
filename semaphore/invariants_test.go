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
)

var _ = Describe("Invariant: holder records never carry a zero count", func() {
	It("never leaves a record with counts == 0 linked into the table", func() {
		d, reg := newDomain(embeddedCfg())
		s := d.NewSemaphore(false)

		t := reg.Spawn(10)
		reg.SetCurrent(t)
		s.AddHolderCurrent()
		s.ReleaseHolder()
		s.RestoreBaseprio("")

		for _, h := range s.Holders() {
			Expect(h.Counts).To(BeNumerically(">=", 1))
		}
	})
})

var _ = Describe("Invariant: inherit-disabled suppresses all bookkeeping", func() {
	It("never allocates a holder record or changes anyone's priority", func() {
		d, reg := newDomain(embeddedCfg())
		s := d.NewSemaphore(true)

		low := reg.Spawn(10)
		high := reg.Spawn(30)

		reg.SetCurrent(low)
		s.AddHolderCurrent()

		reg.SetCurrent(high)
		s.BoostPriority()

		Expect(s.Holders()).To(BeEmpty())
		Expect(reg.SchedPriority(low)).To(Equal(10))
	})
})

var _ = Describe("Invariant: quiesced semaphore restores every holder to base", func() {
	It("leaves sched_priority equal to base_priority once no waiters remain", func() {
		d, reg := newDomain(embeddedCfg())
		s := d.NewSemaphore(false)

		low := reg.Spawn(10)
		high := reg.Spawn(30)

		reg.SetCurrent(low)
		s.AddHolderCurrent()

		reg.SetCurrent(high)
		s.BoostPriority()

		reg.SetCurrent(low)
		s.ReleaseHolder()
		s.RestoreBaseprio(high)

		Expect(reg.SchedPriority(low)).To(Equal(reg.BasePriority(low)))
	})
})

var _ = Describe("Law: idempotent restore after quiesce", func() {
	It("is a no-op to restore a semaphore that has no waiters", func() {
		d, reg := newDomain(embeddedCfg())
		s := d.NewSemaphore(false)

		t := reg.Spawn(15)
		reg.SetCurrent(t)
		s.AddHolderCurrent()

		before := reg.SchedPriority(t)
		s.RestoreBaseprio("")
		Expect(reg.SchedPriority(t)).To(Equal(before))
	})
})

var _ = Describe("Law: acquire/release balance", func() {
	It("keeps counts equal to acquires minus releases", func() {
		d, reg := newDomain(embeddedCfg())
		s := d.NewSemaphore(false)

		t := reg.Spawn(10)
		reg.SetCurrent(t)
		s.AddHolderCurrent()
		s.AddHolderCurrent()
		s.AddHolderCurrent()

		holders := s.Holders()
		Expect(holders).To(HaveLen(1))
		Expect(holders[0].Counts).To(Equal(3))

		s.ReleaseHolder()
		holders = s.Holders()
		Expect(holders[0].Counts).To(Equal(2))
	})
})

var _ = Describe("Law: monotonic boost", func() {
	It("never lowers a holder's priority while boosting", func() {
		d, reg := newDomain(embeddedCfg())
		s := d.NewSemaphore(false)

		low := reg.Spawn(10)
		mid := reg.Spawn(20)
		high := reg.Spawn(30)

		reg.SetCurrent(low)
		s.AddHolderCurrent()

		reg.SetCurrent(high)
		s.BoostPriority()
		Expect(reg.SchedPriority(low)).To(Equal(30))

		// A later, lower-priority waiter must never pull the holder back down.
		reg.SetCurrent(mid)
		s.BoostPriority()
		Expect(reg.SchedPriority(low)).To(Equal(30))
	})
})
