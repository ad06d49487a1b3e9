package topn

import (
	"container/heap"
	"iter"
)

// IntoSorted drains the container and returns its residents best-first:
// descending for Largest, ascending for Smallest. Equal items come out in
// the order they were offered (unless the container was built Unstable).
// The container is left empty. O(n log n).
func (c *Container[T]) IntoSorted() []T {
	n := c.Len()
	if n == 0 {
		return nil
	}
	out := make([]T, n)
	// Popping yields worst-first; filling from the back flips it.
	for i := n - 1; i >= 0; i-- {
		out[i] = c.pop().item
	}
	return out
}

func (c *Container[T]) pop() entry[T] {
	return heap.Pop(&c.heap).(entry[T])
}

// All returns an unordered view over the residents in heap-array order.
// It does not consume the container. The container must not be mutated
// while the sequence is being consumed.
func (c *Container[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range c.heap.entries {
			if !yield(c.heap.entries[i].item) {
				return
			}
		}
	}
}
