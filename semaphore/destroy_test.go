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
	"github.com/sabouaram/priosem/logger"
	"github.com/sabouaram/priosem/scheduler"
	"github.com/sabouaram/priosem/semaphore"
)

// recordingLogger is a logger.Logger that remembers every Warn call, so
// Destroy's debug assertion can be asserted on without a real sink.
type recordingLogger struct {
	warns []string
}

func (l *recordingLogger) Debug(msg string, f logger.Fields) {}
func (l *recordingLogger) Info(msg string, f logger.Fields)  {}
func (l *recordingLogger) Warn(msg string, f logger.Fields)  { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(msg string, f logger.Fields) {}
func (l *recordingLogger) SetLevel(lvl logger.Level)         {}

var _ = Describe("Destroy", func() {
	It("frees every holder record regardless of backend", func() {
		d, reg := newDomain(embeddedCfg())
		s := d.NewSemaphore(false)

		a := reg.Spawn(10)
		reg.SetCurrent(a)
		s.AddHolderCurrent()

		s.Destroy()
		Expect(s.Holders()).To(BeEmpty())
	})

	It("warns in embedded mode when more than one holder remains live", func() {
		rl := &recordingLogger{}
		cfg := config.Config{DebugAssertions: true}
		reg := scheduler.NewRegistry()
		d := semaphore.NewDomain(cfg, reg, rl, nil)
		d.Initialize()
		s := d.NewSemaphore(false)

		a := reg.Spawn(10)
		b := reg.Spawn(10)
		reg.SetCurrent(a)
		s.AddHolderCurrent()
		reg.SetCurrent(b)
		s.AddHolderCurrent()

		s.Destroy()
		Expect(rl.warns).To(HaveLen(1))
	})

	It("never warns in freelist mode even with several distinct holders", func() {
		rl := &recordingLogger{}
		cfg := config.Config{DebugAssertions: true, PreallocHolders: 5}
		reg := scheduler.NewRegistry()
		d := semaphore.NewDomain(cfg, reg, rl, nil)
		d.Initialize()
		s := d.NewSemaphore(false)

		// A counting semaphore with an initial count of 5 legitimately has
		// up to 5 simultaneous distinct holders; that is not a leak.
		for i := 0; i < 5; i++ {
			t := reg.Spawn(10)
			reg.SetCurrent(t)
			s.AddHolderCurrent()
		}

		s.Destroy()
		Expect(rl.warns).To(BeEmpty())
		Expect(s.Holders()).To(BeEmpty())
	})
})
