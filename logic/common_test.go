package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeFollowedFirst(t *testing.T) {
	merged := mergeFollowedFirst([]int64{5, 6}, []int64{1, 2, 3}, 10)
	assert.Equal(t, []int64{5, 6, 1, 2, 3}, merged)
}

func TestMergeFollowedFirstDedupes(t *testing.T) {
	merged := mergeFollowedFirst([]int64{2, 2, 3}, []int64{1, 2, 3, 4}, 10)
	assert.Equal(t, []int64{2, 3, 1, 4}, merged)
}

func TestMergeFollowedFirstCapsAtPageSize(t *testing.T) {
	merged := mergeFollowedFirst([]int64{9, 8}, []int64{1, 2, 3, 4}, 3)
	assert.Equal(t, []int64{9, 8, 1}, merged)

	merged = mergeFollowedFirst([]int64{9, 8, 7, 6}, []int64{1}, 3)
	assert.Equal(t, []int64{9, 8, 7}, merged)
}

func TestMergeFollowedFirstEmptyInputs(t *testing.T) {
	assert.Empty(t, mergeFollowedFirst(nil, nil, 5))
	assert.Equal(t, []int64{1, 2}, mergeFollowedFirst(nil, []int64{1, 2}, 5))
	assert.Equal(t, []int64{1, 2}, mergeFollowedFirst([]int64{1, 2}, nil, 5))
}
