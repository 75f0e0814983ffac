// Package ringbuf provides a fixed-capacity circular buffer over
// caller-owned storage.
package ringbuf

import "iter"

// RingBuffer holds up to len(storage) elements in storage. It never
// allocates. Valid elements occupy [first, last) modulo the capacity; full
// disambiguates first == last.
//
// Operations whose precondition does not hold panic.
type RingBuffer[T any] struct {
	buf   []T
	first int
	last  int
	full  bool
}

// New binds a ring buffer to storage. storage must not be empty.
func New[T any](storage []T) RingBuffer[T] {
	if len(storage) == 0 {
		panic("ringbuf: zero capacity")
	}
	return RingBuffer[T]{buf: storage}
}

// Cap returns the capacity.
func (r *RingBuffer[T]) Cap() int { return len(r.buf) }

// Len returns the number of elements held.
func (r *RingBuffer[T]) Len() int {
	if r.full {
		return len(r.buf)
	}
	return (r.last - r.first + len(r.buf)) % len(r.buf)
}

func (r *RingBuffer[T]) IsEmpty() bool { return r.first == r.last && !r.full }
func (r *RingBuffer[T]) IsFull() bool  { return r.full }

// Append adds e after the last element.
func (r *RingBuffer[T]) Append(e T) {
	r.mustNotBeFull("Append")
	r.buf[r.last] = e
	r.last = (r.last + 1) % len(r.buf)
	if r.last == r.first {
		r.full = true
	}
}

// Prepend adds e before the first element.
func (r *RingBuffer[T]) Prepend(e T) {
	r.mustNotBeFull("Prepend")
	r.first = (r.first + len(r.buf) - 1) % len(r.buf)
	r.buf[r.first] = e
	if r.first == r.last {
		r.full = true
	}
}

func (r *RingBuffer[T]) PeekFirst() T {
	r.mustNotBeEmpty("PeekFirst")
	return r.buf[r.first]
}

func (r *RingBuffer[T]) PeekLast() T {
	r.mustNotBeEmpty("PeekLast")
	return r.buf[(r.last+len(r.buf)-1)%len(r.buf)]
}

// PeekIth returns the element i positions after the first. i must be less
// than the capacity; offsets past the last element are not checked and
// return stale storage.
func (r *RingBuffer[T]) PeekIth(i int) T {
	r.mustNotBeEmpty("PeekIth")
	if i < 0 || i >= len(r.buf) {
		panic("ringbuf: PeekIth index out of range")
	}
	return r.buf[(r.first+i)%len(r.buf)]
}

func (r *RingBuffer[T]) PopFirst() T {
	r.mustNotBeEmpty("PopFirst")
	e := r.buf[r.first]
	r.first = (r.first + 1) % len(r.buf)
	r.full = false
	return e
}

func (r *RingBuffer[T]) PopLast() T {
	r.mustNotBeEmpty("PopLast")
	r.last = (r.last + len(r.buf) - 1) % len(r.buf)
	r.full = false
	return r.buf[r.last]
}

// Window is three consecutive elements.
type Window[T any] struct {
	Prev, Current, Next T
}

// TripleIter yields the overlapping windows (0,1,2), (1,2,3), ... up to the
// last element. The buffer must hold at least three elements.
func (r *RingBuffer[T]) TripleIter() iter.Seq[Window[T]] {
	return func(yield func(Window[T]) bool) {
		n := r.Len()
		for i := 0; i+2 < n; i++ {
			w := Window[T]{
				Prev:    r.PeekIth(i),
				Current: r.PeekIth(i + 1),
				Next:    r.PeekIth(i + 2),
			}
			if !yield(w) {
				return
			}
		}
	}
}

// All yields the elements from first to last.
func (r *RingBuffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		n := r.Len()
		for i := 0; i < n; i++ {
			if !yield(r.PeekIth(i)) {
				return
			}
		}
	}
}

func (r *RingBuffer[T]) mustNotBeFull(op string) {
	if r.full {
		panic("ringbuf: " + op + " on full buffer")
	}
}

func (r *RingBuffer[T]) mustNotBeEmpty(op string) {
	if r.IsEmpty() {
		panic("ringbuf: " + op + " on empty buffer")
	}
}
