package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		category Category
		dice     []int
		expected int
	}{
		{Ones, []int{1, 1, 2, 3, 4}, 2},
		{Sixes, []int{6, 6, 6, 1, 2}, 18},
		{Fours, []int{1, 2, 3, 5, 6}, 0},
		{FullHouse, []int{2, 2, 2, 5, 5}, 16},
		{FullHouse, []int{2, 2, 2, 2, 5}, 0},
		{FourOfAKind, []int{3, 3, 3, 3, 1}, 12},
		{FourOfAKind, []int{3, 3, 3, 3, 3}, 12},
		{FourOfAKind, []int{3, 3, 3, 2, 1}, 0},
		{LittleStraight, []int{5, 4, 3, 2, 1}, 30},
		{LittleStraight, []int{5, 4, 3, 2, 2}, 0},
		{BigStraight, []int{2, 3, 4, 5, 6}, 30},
		{BigStraight, []int{1, 2, 3, 4, 5}, 0},
		{Choice, []int{6, 6, 5, 4, 1}, 22},
		{Yacht, []int{4, 4, 4, 4, 4}, 50},
		{Yacht, []int{4, 4, 4, 4, 5}, 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, Score(tc.category, tc.dice), "%s of %v", tc.category, tc.dice)
	}
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "Full House", FullHouse.String())
	assert.Equal(t, "Yacht", Yacht.String())
	assert.Equal(t, "Unknown", Category(99).String())
}
