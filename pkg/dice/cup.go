package dice

import (
	"errors"

	"github.com/jeremyhappach/rule-your-poker-sub003/internal/rng"
)

// Faces is the number of faces on a die
const Faces = 6

// ErrBadDieIndex is an error for a hold on a die that does not exist
var ErrBadDieIndex = errors.New("no die at that index")

// Cup is a cup of dice
// Dice values are 1 through 6. Held dice survive a roll.
type Cup struct {
	Dice []int  `json:"dice"`
	Held []bool `json:"held"`

	gen rng.Generator
}

// NewCup returns a cup with n unrolled dice
func NewCup(n int, gen rng.Generator) *Cup {
	c := &Cup{
		Dice: make([]int, n),
		Held: make([]bool, n),
		gen:  gen,
	}

	return c
}

// Roll rolls every die that is not held
func (c *Cup) Roll() {
	for i := range c.Dice {
		if c.Held[i] {
			continue
		}

		c.Dice[i] = c.gen.Intn(Faces) + 1
	}
}

// Hold sets whether the die at index i survives the next roll
func (c *Cup) Hold(i int, held bool) error {
	if i < 0 || i >= len(c.Dice) {
		return ErrBadDieIndex
	}

	c.Held[i] = held
	return nil
}

// Reset releases all holds
func (c *Cup) Reset() {
	for i := range c.Held {
		c.Held[i] = false
	}
}

// Values returns a copy of the dice values
func (c *Cup) Values() []int {
	v := make([]int, len(c.Dice))
	copy(v, c.Dice)
	return v
}
