package glint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatioDistribute(t *testing.T) {
	// Even split with the leftover going to the front.
	assert.Equal(t, []int{4, 3, 3}, RatioDistribute(10, []int{1, 1, 1}, nil))

	// Proportional to the ratios.
	assert.Equal(t, []int{5, 10, 15}, RatioDistribute(30, []int{1, 2, 3}, nil))

	// Minimums clip shares upward.
	assert.Equal(t, []int{8, 3}, RatioDistribute(10, []int{8, 2}, []int{3, 3}))
}

func TestRatioDistributeDeterministic(t *testing.T) {
	a := RatioDistribute(17, []int{3, 5, 7}, nil)
	b := RatioDistribute(17, []int{3, 5, 7}, nil)
	assert.Equal(t, a, b)

	total := 0
	for _, share := range a {
		total += share
	}
	assert.Equal(t, 17, total)
}

func TestRatioDistributeEdges(t *testing.T) {
	assert.Empty(t, RatioDistribute(10, nil, nil))

	// Zero ratios still receive leftovers so the total is honored.
	assert.Equal(t, []int{2, 1}, RatioDistribute(3, []int{0, 0}, nil))

	assert.Equal(t, []int{0}, RatioDistribute(0, []int{5}, nil))
}
