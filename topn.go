// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package topn provides a bounded-capacity container that retains the n
// largest (or n smallest) items of a stream. Offering m items costs
// O(m log n) total with O(n) memory, which beats collecting everything and
// sorting whenever n is much smaller than m.
//
// The container is a plain sequential data structure. It is not safe for
// concurrent mutation; callers needing shared access must synchronize
// externally.
package topn

import (
	"cmp"
	"container/heap"
	"iter"
)

// Direction selects which end of the ordering the container retains.
type Direction int

const (
	// Largest retains the n greatest items under the comparator.
	Largest Direction = iota
	// Smallest retains the n least items under the comparator.
	Smallest
)

func (d Direction) String() string {
	switch d {
	case Largest:
		return "largest"
	case Smallest:
		return "smallest"
	}
	return "unknown"
}

type config struct {
	stable bool
}

// Option configures a container at construction time.
type Option func(*config)

// Unstable disables the first-seen-wins tie-break. Inserting an item that
// compares equal to the current eviction candidate still never displaces it,
// but equal residents drain in unspecified relative order. Saves nothing but
// comparator calls; the default stable behavior is what most callers want.
func Unstable() Option {
	return func(cfg *config) { cfg.stable = false }
}

// entry pairs an item with its offer sequence number, which breaks
// comparator ties in favor of earlier offers.
type entry[T any] struct {
	item T
	seq  int
}

// ordered is the heap.Interface adapter over the container's backing slice.
// The root is always the current eviction candidate, i.e. the worst resident
// relative to the container's direction.
type ordered[T any] struct {
	entries []entry[T]
	worse   func(a, b entry[T]) bool
}

func (o *ordered[T]) Len() int           { return len(o.entries) }
func (o *ordered[T]) Less(i, j int) bool { return o.worse(o.entries[i], o.entries[j]) }
func (o *ordered[T]) Swap(i, j int)      { o.entries[i], o.entries[j] = o.entries[j], o.entries[i] }

func (o *ordered[T]) Push(x any) {
	o.entries = append(o.entries, x.(entry[T]))
}

func (o *ordered[T]) Pop() any {
	old := o.entries
	n := len(old)
	x := old[n-1]
	o.entries = old[:n-1]
	return x
}

// Container retains at most a fixed number of the best items offered to it.
// The zero value is not usable; construct with New or one of its variants.
type Container[T any] struct {
	heap      ordered[T]
	cmp       func(a, b T) int
	direction Direction
	capacity  int
	stable    bool
	offered   int
}

// New creates a container that retains the capacity best items by direction,
// ranked by cmp. cmp must define a consistent total order (negative when
// a < b, zero when equal, positive when a > b) for the container's whole
// life; the container does not validate it. A capacity of zero (or less) is
// legal and yields a container that stays empty and discards every offer.
func New[T any](capacity int, direction Direction, cmp func(a, b T) int, opts ...Option) *Container[T] {
	cfg := config{stable: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &Container[T]{
		cmp:       cmp,
		direction: direction,
		capacity:  max(capacity, 0),
		stable:    cfg.stable,
	}
	if c.capacity > 0 {
		// Backing store is reserved once; inserts never reallocate.
		c.heap.entries = make([]entry[T], 0, c.capacity)
	}
	c.heap.worse = c.worse
	return c
}

// NewLargest creates a container retaining the capacity greatest items in
// their natural order.
func NewLargest[T cmp.Ordered](capacity int, opts ...Option) *Container[T] {
	return New(capacity, Largest, cmp.Compare[T], opts...)
}

// NewSmallest creates a container retaining the capacity least items in
// their natural order.
func NewSmallest[T cmp.Ordered](capacity int, opts ...Option) *Container[T] {
	return New(capacity, Smallest, cmp.Compare[T], opts...)
}

// NewByKey creates a container ranking items by a derived key, e.g. the top
// offenders of a rate-limit zone by excess.
func NewByKey[T any, K cmp.Ordered](capacity int, direction Direction, key func(T) K, opts ...Option) *Container[T] {
	return New(capacity, direction, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}, opts...)
}

// worse reports whether a should be evicted before b. It orders the heap so
// the root is the worst resident: for Largest that is the least item, for
// Smallest the greatest. Comparator ties fall back to the offer sequence,
// later offers being worse, so earlier items survive eviction.
func (c *Container[T]) worse(a, b entry[T]) bool {
	r := c.cmp(a.item, b.item)
	if c.direction == Largest {
		r = -r
	}
	if r != 0 {
		return r > 0
	}
	return c.stable && a.seq > b.seq
}

// Insert offers item for residency and reports whether it was retained.
// It never fails: the item is pushed while the container is below capacity,
// replaces the current eviction candidate when it ranks strictly better, and
// is discarded otherwise. An item that ties the eviction candidate is
// discarded, so equal-ranked late arrivals never displace residents.
// O(log n).
func (c *Container[T]) Insert(item T) bool {
	_, _, retained := c.offer(item)
	return retained
}

// offer runs the bounded-insert policy and additionally reports the entry
// displaced to make room, when there is one.
func (c *Container[T]) offer(item T) (displaced entry[T], wasDisplaced, retained bool) {
	c.offered++
	if c.capacity == 0 {
		return displaced, false, false
	}
	e := entry[T]{item: item, seq: c.offered}
	if len(c.heap.entries) < c.capacity {
		heap.Push(&c.heap, e)
		return displaced, false, true
	}
	root := c.heap.entries[0]
	if !c.worse(root, e) {
		return displaced, false, false
	}
	c.heap.entries[0] = e
	heap.Fix(&c.heap, 0)
	return root, true, true
}

// Extend offers every item of items in order. Equivalent to repeated Insert;
// O(m log n) for m items.
func (c *Container[T]) Extend(items []T) {
	for _, item := range items {
		c.Insert(item)
	}
}

// ExtendSeq offers every item produced by seq in order.
func (c *Container[T]) ExtendSeq(seq iter.Seq[T]) {
	for item := range seq {
		c.Insert(item)
	}
}

// Len returns the number of resident items, never above Capacity.
func (c *Container[T]) Len() int {
	return len(c.heap.entries)
}

// Capacity returns the maximum number of items the container retains.
func (c *Container[T]) Capacity() int {
	return c.capacity
}

// IsEmpty reports whether no items are resident.
func (c *Container[T]) IsEmpty() bool {
	return c.Len() == 0
}

// TotalOffered returns how many items were ever offered, including
// discarded ones.
func (c *Container[T]) TotalOffered() int {
	return c.offered
}
