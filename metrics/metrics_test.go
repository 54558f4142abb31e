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

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"

	"github.com/sabouaram/priosem/metrics"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &io_prometheus_client.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestNilCollectorsAreNoOps(t *testing.T) {
	var c *metrics.Collectors
	c.PoolExhaustedInc()
	c.HolderAllocated()
	if err := c.Register(prometheus.NewRegistry()); err != nil {
		t.Fatalf("Register on nil Collectors should be a no-op: %v", err)
	}
}

func TestCountersIncrement(t *testing.T) {
	c := metrics.New("kernel_test")

	c.PoolExhaustedInc()
	c.PoolExhaustedInc()
	if got := counterValue(t, c.PoolExhausted); got != 2 {
		t.Fatalf("expected 2 pool exhaustions, got %v", got)
	}

	c.StaleHolderInc()
	if got := counterValue(t, c.StaleHolders); got != 1 {
		t.Fatalf("expected 1 stale holder reclamation, got %v", got)
	}
}

func TestRegisterAddsAllCollectors(t *testing.T) {
	c := metrics.New("kernel_test_register")
	r := prometheus.NewRegistry()
	if err := c.Register(r); err != nil {
		t.Fatalf("Register: %v", err)
	}

	families, err := r.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) != 6 {
		t.Fatalf("expected 6 metric families, got %d", len(families))
	}
}
