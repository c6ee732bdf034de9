package dice

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testGen(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestCup_Roll(t *testing.T) {
	c := NewCup(5, testGen(1))
	c.Roll()

	for _, d := range c.Dice {
		assert.GreaterOrEqual(t, d, 1)
		assert.LessOrEqual(t, d, 6)
	}
}

func TestCup_Hold(t *testing.T) {
	c := NewCup(5, testGen(1))
	c.Roll()

	assert.NoError(t, c.Hold(0, true))
	assert.NoError(t, c.Hold(4, true))
	assert.Equal(t, ErrBadDieIndex, c.Hold(5, true))
	assert.Equal(t, ErrBadDieIndex, c.Hold(-1, true))

	first, last := c.Dice[0], c.Dice[4]
	for i := 0; i < 10; i++ {
		c.Roll()
	}

	assert.Equal(t, first, c.Dice[0])
	assert.Equal(t, last, c.Dice[4])

	c.Reset()
	for _, held := range c.Held {
		assert.False(t, held)
	}
}

func TestCup_Values(t *testing.T) {
	c := NewCup(5, testGen(1))
	c.Roll()

	v := c.Values()
	v[0] = 99
	assert.NotEqual(t, 99, c.Dice[0])
}
