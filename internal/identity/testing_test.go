package identity

import (
	"testing"
	"time"
)

// funcSource adapts a function to random.Source.
type funcSource func(n int) int

func (f funcSource) Intn(n int) int { return f(n) }

// cycleSource replays vals modulo n, advancing on every draw.
type cycleSource struct {
	vals []int
	i    int
}

func (c *cycleSource) Intn(n int) int {
	v := c.vals[c.i%len(c.vals)]
	c.i++
	return v % n
}

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 535897932, time.Local)

func fixedClock() time.Time { return fixedNow }

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := New(DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return g
}
