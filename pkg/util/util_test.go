package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseG(t *testing.T) {
	arr := []int32{4, 3, 2, 1, 10}
	rev := ReverseG(arr)

	assert.Equal(t, []int32{10, 1, 2, 3, 4}, rev)
	assert.Equal(t, []int32{4, 3, 2, 1, 10}, arr)
	assert.Empty(t, ReverseG([]int32{}))
}
