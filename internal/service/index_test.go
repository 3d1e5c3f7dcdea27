package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFavouriteIndex_Merge(t *testing.T) {
	idx := newFavouriteIndex()

	idx.merge(1, []int{1, 2})
	idx.merge(2, []int{3})
	assert.Equal(t, 3, idx.len())

	idx.merge(1, []int{4})
	assert.Equal(t, 1, idx.len())
	assert.True(t, idx.has(4))
	assert.False(t, idx.has(1))

	idx.reset()
	assert.Zero(t, idx.len())
}

func TestRatingIndex_Restore(t *testing.T) {
	idx := newRatingIndex()

	idx.set(1, 7)
	idx.restore(1, 3)
	assert.Equal(t, float64(3), idx.get(1))

	idx.restore(1, 0)
	assert.Equal(t, float64(0), idx.get(1))
	assert.Zero(t, idx.len())
}

func TestRatingIndex_Merge(t *testing.T) {
	idx := newRatingIndex()

	idx.merge(1, map[int]float64{1: 8, 2: 6})
	idx.merge(2, map[int]float64{3: 2})
	assert.Equal(t, 3, idx.len())

	idx.merge(1, map[int]float64{4: 10})
	assert.Equal(t, 1, idx.len())
	assert.Equal(t, float64(10), idx.get(4))
	assert.Equal(t, float64(0), idx.get(1))
}
