// Package ring implements a fixed-capacity ring buffer. dlraster uses it as
// the atlas's bounded debug-event log (atlas.Atlas.Events): a BSP placement
// or TGA snapshot is appended per upload, and only the most recent entries
// are kept, so a long-running process never grows that log unbounded.
package ring

import "golang.org/x/exp/constraints"

// Buffer is a fixed-capacity ring buffer over T. Appending past capacity
// overwrites the oldest elements.
type Buffer[T any] struct {
	Data  []T
	Start int64
	Len   int64
	Cap   int64
}

// NewBuffer allocates a Buffer with room for capacity elements.
func NewBuffer[T any](capacity uint64) *Buffer[T] {

	return &Buffer[T]{
		Data:  make([]T, capacity),
		Start: 0,
		Len:   0,
		Cap:   int64(capacity),
	}
}

// Append adds x to the buffer, overwriting the oldest entries once Cap is
// reached.
func (b *Buffer[T]) Append(x ...T) {

	inLen := int64(len(x))

	for len(x) > 0 {

		copied := copy(b.Data[b.Head():], x)
		x = x[copied:]

		if b.Len == b.Cap {
			b.Start = (b.Start + int64(copied)) % b.Cap
		} else {
			b.Len = clamp(b.Len+inLen, 0, b.Cap)
		}
	}
}

// Head returns the index the next Append will write to.
func (b *Buffer[T]) Head() int64 {
	return (b.Start + b.Len) % b.Cap
}

func clamp[T constraints.Ordered](x, min, max T) T {

	if x < min {
		return min
	}

	if x > max {
		return max
	}

	return x
}

// Views returns two slices that together hold all Len live elements, oldest
// first. The second slice is nil unless the live range wraps past the end
// of Data. Neither slice is a copy; mutating them mutates the buffer.
func (b *Buffer[T]) Views() (v1, v2 []T) {

	if b.Start+b.Len <= b.Cap {
		return b.Data[b.Start : b.Start+b.Len], nil
	}

	v1 = b.Data[b.Start:b.Cap]
	v2 = b.Data[:b.Start+b.Len-b.Cap]
	return
}
