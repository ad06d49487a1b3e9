// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topn

import (
	"container/heap"
	"iter"
)

// UniqueContainer is a bounded top-N container holding at most one resident
// per key. Offering an item whose key is already resident replaces the
// resident only when the new item ranks strictly better; the replacement
// keeps the resident's position in the tie-break order, so an improved item
// does not lose its seniority against equals.
type UniqueContainer[T any, K comparable] struct {
	inner *Container[T]
	key   func(T) K
	keys  map[K]struct{}
}

// NewUniqueByKey creates a unique container ranking items by cmp and
// deduplicating them by key. The same capacity, direction, comparator and
// option rules as New apply.
func NewUniqueByKey[T any, K comparable](capacity int, direction Direction, cmp func(a, b T) int, key func(T) K, opts ...Option) *UniqueContainer[T, K] {
	return &UniqueContainer[T, K]{
		inner: New(capacity, direction, cmp, opts...),
		key:   key,
		keys:  make(map[K]struct{}),
	}
}

// NewUnique creates a unique container deduplicating items by their own
// value.
func NewUnique[T comparable](capacity int, direction Direction, cmp func(a, b T) int, opts ...Option) *UniqueContainer[T, T] {
	return NewUniqueByKey(capacity, direction, cmp, func(item T) T { return item }, opts...)
}

// Insert offers item and reports whether it ended up resident, either by the
// regular bounded-insert policy or by improving the resident that shares its
// key.
func (u *UniqueContainer[T, K]) Insert(item T) bool {
	k := u.key(item)
	if _, ok := u.keys[k]; ok {
		u.inner.offered++
		return u.replaceIfBetter(k, item)
	}
	displaced, wasDisplaced, retained := u.inner.offer(item)
	if wasDisplaced {
		delete(u.keys, u.key(displaced.item))
	}
	if retained {
		u.keys[k] = struct{}{}
	}
	return retained
}

// replaceIfBetter swaps item in over the resident with key k when it ranks
// strictly better, keeping the resident's offer sequence.
func (u *UniqueContainer[T, K]) replaceIfBetter(k K, item T) bool {
	for i := range u.inner.heap.entries {
		cur := u.inner.heap.entries[i]
		if u.key(cur.item) != k {
			continue
		}
		if !u.inner.worse(cur, entry[T]{item: item, seq: cur.seq}) {
			return false
		}
		u.inner.heap.entries[i].item = item
		heap.Fix(&u.inner.heap, i)
		return true
	}
	return false
}

// Extend offers every item of items in order.
func (u *UniqueContainer[T, K]) Extend(items []T) {
	for _, item := range items {
		u.Insert(item)
	}
}

// ExtendSeq offers every item produced by seq in order.
func (u *UniqueContainer[T, K]) ExtendSeq(seq iter.Seq[T]) {
	for item := range seq {
		u.Insert(item)
	}
}

// Contains reports whether an item with the given key is resident.
func (u *UniqueContainer[T, K]) Contains(key K) bool {
	_, ok := u.keys[key]
	return ok
}

// Len returns the number of resident items.
func (u *UniqueContainer[T, K]) Len() int {
	return u.inner.Len()
}

// Capacity returns the maximum number of items the container retains.
func (u *UniqueContainer[T, K]) Capacity() int {
	return u.inner.Capacity()
}

// IsEmpty reports whether no items are resident.
func (u *UniqueContainer[T, K]) IsEmpty() bool {
	return u.inner.IsEmpty()
}

// TotalOffered returns how many items were ever offered, including
// discarded and deduplicated ones.
func (u *UniqueContainer[T, K]) TotalOffered() int {
	return u.inner.TotalOffered()
}

// IntoSorted drains the container best-first, like Container.IntoSorted.
func (u *UniqueContainer[T, K]) IntoSorted() []T {
	clear(u.keys)
	return u.inner.IntoSorted()
}

// All returns an unordered, non-consuming view over the residents.
func (u *UniqueContainer[T, K]) All() iter.Seq[T] {
	return u.inner.All()
}
