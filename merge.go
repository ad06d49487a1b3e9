package topn

import (
	"cmp"
	"fmt"
	"slices"
)

// Merge folds other into c as if other's residents had been offered to c
// directly, in the order other originally received them, and leaves other
// empty. The two containers must have the same capacity, direction and
// stability, and must have been built with equivalent comparators; the
// first three are checked and a mismatch returns an error with c untouched,
// comparator equivalence is the caller's contract since functions cannot be
// compared. After a successful merge c.TotalOffered covers both histories.
// O(n log n).
func (c *Container[T]) Merge(other *Container[T]) error {
	if other == c {
		return fmt.Errorf("topn: merge container with itself")
	}
	if other.capacity != c.capacity {
		return fmt.Errorf("topn: merge capacity mismatch: %d != %d", c.capacity, other.capacity)
	}
	if other.direction != c.direction {
		return fmt.Errorf("topn: merge direction mismatch: %s != %s", c.direction, other.direction)
	}
	if other.stable != c.stable {
		return fmt.Errorf("topn: merge stability mismatch")
	}

	residents := other.heap.entries
	discarded := other.offered - len(residents)
	other.heap.entries = nil
	other.offered = 0

	// Replaying in original offer order keeps the tie-break deterministic.
	slices.SortFunc(residents, func(a, b entry[T]) int {
		return cmp.Compare(a.seq, b.seq)
	})
	for _, e := range residents {
		c.Insert(e.item)
	}
	c.offered += discarded
	return nil
}
