package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardFromString(t *testing.T) {
	card := CardFromString("14s")
	assert.Equal(t, Ace, card.Rank)
	assert.Equal(t, Spades, card.Suit)
	assert.False(t, card.IsWild)

	card = CardFromString("!3c")
	assert.Equal(t, 3, card.Rank)
	assert.Equal(t, Clubs, card.Suit)
	assert.True(t, card.IsWild)

	assert.Nil(t, CardFromString(""))
	assert.Panics(t, func() {
		CardFromString("15s")
	})
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "A♠", CardFromString("14s").String())
	assert.Equal(t, "J♣", CardFromString("11c").String())
	assert.Equal(t, "2♡", CardFromString("2h").String())
	assert.Equal(t, "10♢", CardFromString("10d").String())
}

func TestCardsRoundTrip(t *testing.T) {
	const s = "2c,!5h,14s,11d"
	assert.Equal(t, s, CardsToString(CardsFromString(s)))
}

func TestCard_AceLowRank(t *testing.T) {
	assert.Equal(t, 1, CardFromString("14s").AceLowRank())
	assert.Equal(t, 13, CardFromString("13s").AceLowRank())
}

func TestHand(t *testing.T) {
	h := Hand(CardsFromString("2c,3c,4c"))
	assert.True(t, h.HasCard(CardFromString("3c")))
	assert.False(t, h.HasCard(CardFromString("3d")))

	assert.True(t, h.Discard(CardFromString("3c")))
	assert.False(t, h.Discard(CardFromString("3c")))
	assert.Equal(t, "2c,4c", h.String())

	h.AddCard(CardFromString("14s"))
	assert.Equal(t, "2c,4c,14s", h.String())
	assert.Equal(t, "2c", CardToString(h.FirstCard()))

	clone := h.Clone()
	clone.AddCard(CardFromString("2d"))
	assert.Len(t, h, 3)
	assert.Len(t, clone, 4)
}
