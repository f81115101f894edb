// Package ring provides a slice-backed FIFO ring buffer.
package ring

import "math/bits"

// Buffer holds a first-in first-out queue of elements stored in a
// ring over a slice. Elements are pushed at the end and popped from
// the start.
//
// The zero-value is OK to use.
type Buffer[T any] struct {
	// buf holds the backing slice. Its length
	// is always a power of two or zero.
	buf []T

	// start holds the index into buf of the oldest element.
	start int

	// len holds the number of elements in the buffer.
	len int
}

// NewBuffer returns a buffer with room for at least minCap
// elements before it needs to grow.
func NewBuffer[T any](minCap int) *Buffer[T] {
	var b Buffer[T]
	b.grow(minCap)
	return &b
}

// Len returns the number of elements in the buffer.
func (b *Buffer[T]) Len() int {
	return b.len
}

// PushEnd adds x to the end of the buffer.
func (b *Buffer[T]) PushEnd(x T) {
	b.grow(b.len + 1)
	b.buf[b.mod(b.start+b.len)] = x
	b.len++
}

// PopStart removes and returns the element at the start of the buffer.
// It panics if the buffer is empty.
func (b *Buffer[T]) PopStart() T {
	if b.len == 0 {
		panic("ring.Buffer.PopStart called on empty buffer")
	}
	x := b.buf[b.start]
	// Don't hold on to references the caller has finished with.
	b.buf[b.start] = *new(T)
	b.start = b.mod(b.start + 1)
	b.len--
	return x
}

// grow makes sure the buffer can hold at least n elements.
func (b *Buffer[T]) grow(n int) {
	if n <= len(b.buf) {
		return
	}
	buf := make([]T, 1<<bits.Len(uint(n-1)))
	if b.len > 0 {
		// Unwrap the elements so that they start at index zero.
		k := copy(buf, b.buf[b.start:min(b.start+b.len, len(b.buf))])
		copy(buf[k:], b.buf[:b.len-k])
	}
	b.buf = buf
	b.start = 0
}

// mod returns x modulo the buffer capacity.
// It relies on the fact that the buffer capacity is
// always a power of 2.
func (b *Buffer[T]) mod(x int) int {
	return x & (len(b.buf) - 1)
}
