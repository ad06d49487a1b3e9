package topn

import (
	"cmp"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	t.Run("equivalent to a single container", func(t *testing.T) {
		assert := assert.New(t)
		rng := rand.New(rand.NewSource(7))
		for _, direction := range []Direction{Largest, Smallest} {
			s1 := make([]int, 300)
			s2 := make([]int, 450)
			for i := range s1 {
				s1[i] = rng.Intn(80)
			}
			for i := range s2 {
				s2[i] = rng.Intn(80)
			}

			a := New(20, direction, cmp.Compare[int])
			b := New(20, direction, cmp.Compare[int])
			combined := New(20, direction, cmp.Compare[int])
			a.Extend(s1)
			b.Extend(s2)
			combined.Extend(s1)
			combined.Extend(s2)

			assert.NoError(a.Merge(b))
			assert.True(b.IsEmpty())
			assert.Equal(len(s1)+len(s2), a.TotalOffered())
			assert.Equal(combined.IntoSorted(), a.IntoSorted())
		}
	})

	t.Run("tie-break survives the merge", func(t *testing.T) {
		assert := assert.New(t)
		a := NewByKey(2, Largest, byExcess)
		b := NewByKey(2, Largest, byExcess)
		a.Insert(offender{Key: "a", Excess: 4})
		a.Insert(offender{Key: "b", Excess: 4})
		b.Insert(offender{Key: "c", Excess: 4})

		assert.NoError(a.Merge(b))
		out := a.IntoSorted()
		assert.Equal([]string{"a", "b"}, []string{out[0].Key, out[1].Key})
	})

	t.Run("capacity mismatch fails fast", func(t *testing.T) {
		assert := assert.New(t)
		a := NewLargest[int](3)
		b := NewLargest[int](4)
		a.Extend([]int{1, 2, 3})
		b.Insert(9)

		assert.ErrorContains(a.Merge(b), "capacity mismatch")
		assert.Equal(3, a.Len())
		assert.Equal(1, b.Len())
	})

	t.Run("direction mismatch fails fast", func(t *testing.T) {
		assert := assert.New(t)
		a := NewLargest[int](3)
		b := NewSmallest[int](3)
		assert.ErrorContains(a.Merge(b), "direction mismatch")
	})

	t.Run("stability mismatch fails fast", func(t *testing.T) {
		assert := assert.New(t)
		a := NewLargest[int](3)
		b := NewLargest[int](3, Unstable())
		assert.ErrorContains(a.Merge(b), "stability mismatch")
	})

	t.Run("merging with itself fails fast", func(t *testing.T) {
		assert := assert.New(t)
		a := NewLargest[int](3)
		a.Extend([]int{1, 2, 3})
		assert.Error(a.Merge(a))
		assert.Equal(3, a.Len())
	})

	t.Run("merge carries discarded-offer counts", func(t *testing.T) {
		assert := assert.New(t)
		a := NewLargest[int](2)
		b := NewLargest[int](2)
		a.Extend([]int{1, 2, 3, 4, 5})
		b.Extend([]int{6, 7, 8, 9, 10, 11, 12})

		assert.NoError(a.Merge(b))
		assert.Equal(12, a.TotalOffered())
		assert.Equal([]int{12, 11}, a.IntoSorted())
	})
}
