package ring_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/rogpeppe/flushorder/ring"
)

func TestEmptyBuffer(t *testing.T) {
	c := qt.New(t)
	var b ring.Buffer[int]

	c.Assert(b.Len(), qt.Equals, 0)
	c.Assert(ring.Cap(&b), qt.Equals, 0)
	c.Assert(func() { b.PopStart() }, qt.PanicMatches, `ring.Buffer.PopStart called on empty buffer`)
}

func TestNewBufferCapacity(t *testing.T) {
	c := qt.New(t)
	c.Assert(ring.Cap(ring.NewBuffer[string](0)), qt.Equals, 0)
	c.Assert(ring.Cap(ring.NewBuffer[string](1)), qt.Equals, 1)
	c.Assert(ring.Cap(ring.NewBuffer[string](5)), qt.Equals, 8)
	c.Assert(ring.Cap(ring.NewBuffer[string](8)), qt.Equals, 8)
}

func TestFIFO(t *testing.T) {
	c := qt.New(t)
	b := ring.NewBuffer[string](2)
	b.PushEnd("A")
	b.PushEnd("B")
	b.PushEnd("C")

	c.Assert(b.Len(), qt.Equals, 3)

	c.Assert(b.PopStart(), qt.Equals, "A")
	c.Assert(b.PopStart(), qt.Equals, "B")
	b.PushEnd("D")
	c.Assert(b.PopStart(), qt.Equals, "C")
	c.Assert(b.PopStart(), qt.Equals, "D")
	c.Assert(b.Len(), qt.Equals, 0)
}

func TestGrowWhileWrapped(t *testing.T) {
	c := qt.New(t)
	b := ring.NewBuffer[int](4)
	for i := range 4 {
		b.PushEnd(i)
	}
	// Move the start along so that the contents wrap around
	// the end of the backing slice.
	c.Assert(b.PopStart(), qt.Equals, 0)
	c.Assert(b.PopStart(), qt.Equals, 1)
	b.PushEnd(4)
	b.PushEnd(5)
	c.Assert(ring.Cap(b), qt.Equals, 4)

	// This push must unwrap the elements into a larger slice.
	b.PushEnd(6)
	c.Assert(ring.Cap(b), qt.Equals, 8)
	c.Assert(drain(b), qt.DeepEquals, []int{2, 3, 4, 5, 6})
}

func drain[T any](b *ring.Buffer[T]) []T {
	var xs []T
	for b.Len() > 0 {
		xs = append(xs, b.PopStart())
	}
	return xs
}

func TestManyPushPop(t *testing.T) {
	c := qt.New(t)
	var b ring.Buffer[int]
	next := 0
	for i := range 1000 {
		b.PushEnd(i)
		if i%3 == 0 {
			c.Assert(b.PopStart(), qt.Equals, next)
			next++
		}
	}
	for b.Len() > 0 {
		c.Assert(b.PopStart(), qt.Equals, next)
		next++
	}
	c.Assert(next, qt.Equals, 1000)
}

func BenchmarkPushPop(b *testing.B) {
	var buf ring.Buffer[int]
	for i := 0; i < b.N; i++ {
		buf.PushEnd(i)
		if buf.Len() > 64 {
			buf.PopStart()
		}
	}
}
