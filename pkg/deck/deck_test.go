package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	d := New()
	assert.Equal(t, 52, len(d.Cards))

	seen := make(map[string]bool)
	for _, c := range d.Cards {
		seen[CardToString(c)] = true
	}
	assert.Equal(t, 52, len(seen))
}

func TestDeck_Shuffle(t *testing.T) {
	d := New()
	d.Shuffle(1)
	first := CardsToString(d.Cards)

	d2 := New()
	d2.Shuffle(1)
	assert.Equal(t, first, CardsToString(d2.Cards))

	d3 := New()
	d3.Shuffle(2)
	assert.NotEqual(t, first, CardsToString(d3.Cards))

	assert.PanicsWithValue(t, "seed cannot be < 0", func() {
		d.Shuffle(-1)
	})
}

func TestDeck_Draw(t *testing.T) {
	d := New()
	d.Shuffle(1)

	top := d.Cards[0]
	card, err := d.Draw()
	assert.NoError(t, err)
	assert.True(t, top.Equal(card))
	assert.Equal(t, 51, d.CardsLeft())

	for d.CardsLeft() > 0 {
		_, err := d.Draw()
		assert.NoError(t, err)
	}

	card, err = d.Draw()
	assert.Nil(t, card)
	assert.Equal(t, ErrEndOfDeck, err)
}

func TestDeck_Deal(t *testing.T) {
	d := New()
	d.Shuffle(1)

	cards, err := d.Deal(5)
	assert.NoError(t, err)
	assert.Len(t, cards, 5)
	assert.Equal(t, 47, d.CardsLeft())

	_, err = d.Deal(48)
	assert.Equal(t, ErrEndOfDeck, err)
	assert.Equal(t, 47, d.CardsLeft())

	assert.True(t, d.CanDraw(47))
	assert.False(t, d.CanDraw(48))
}
