package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateOfAKind(t *testing.T) {
	r := EvaluateOfAKind([]int{3, 3, 3, 3, 3}, 0)
	assert.Equal(t, OfAKind{Count: 5, Face: 3}, r)

	r = EvaluateOfAKind([]int{2, 2, 5, 5, 6}, 0)
	assert.Equal(t, OfAKind{Count: 2, Face: 5}, r)

	// wilds join the best group
	r = EvaluateOfAKind([]int{1, 1, 4, 4, 6}, 1)
	assert.Equal(t, OfAKind{Count: 4, Face: 4}, r)

	// high card only
	r = EvaluateOfAKind([]int{1, 2, 3, 4, 6}, 0)
	assert.Equal(t, OfAKind{Count: 1, Face: 6}, r)
}

func TestEvaluateOfAKind_AllWild(t *testing.T) {
	r := EvaluateOfAKind([]int{1, 1, 1, 1, 1}, 1)
	assert.Equal(t, OfAKind{Count: 5, Face: 6}, r)

	natural := EvaluateOfAKind([]int{6, 6, 6, 6, 6}, 0)
	assert.Equal(t, natural.Rank(), r.Rank())
}

func TestOfAKind_Ordering(t *testing.T) {
	five := EvaluateOfAKind([]int{2, 2, 2, 2, 2}, 0)
	four := EvaluateOfAKind([]int{6, 6, 6, 6, 5}, 0)
	three := EvaluateOfAKind([]int{6, 6, 6, 5, 4}, 0)
	pair := EvaluateOfAKind([]int{6, 6, 5, 4, 3}, 0)
	high := EvaluateOfAKind([]int{6, 5, 4, 3, 2}, 0)

	// a lower face with more dice always wins
	assert.True(t, five.Beats(four))
	assert.True(t, four.Beats(three))
	assert.True(t, three.Beats(pair))
	assert.True(t, pair.Beats(high))

	// same count broken by face
	assert.True(t, EvaluateOfAKind([]int{5, 5, 5, 1, 2}, 0).Beats(EvaluateOfAKind([]int{4, 4, 4, 1, 2}, 0)))
	assert.False(t, high.Beats(high))
}
