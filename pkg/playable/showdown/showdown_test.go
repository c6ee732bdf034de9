package showdown

import (
	"errors"
	"testing"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func ghostWith(strength int) GhostFunc {
	return func() ([]*deck.Card, int, error) {
		return deck.CardsFromString("2c,3c,4c,5d"), strength, nil
	}
}

func noGhost(t *testing.T) GhostFunc {
	return func() ([]*deck.Card, int, error) {
		t.Fatal("ghost should not be dealt")
		return nil, 0, nil
	}
}

func TestClassify_AllFolded(t *testing.T) {
	r, err := Classify(nil, noGhost(t))
	assert.NoError(t, err)
	assert.Equal(t, AllFolded, r.Kind)
	assert.Empty(t, r.Winners)
	assert.Empty(t, r.Losers)
}

func TestClassify_LoneStayer(t *testing.T) {
	r, err := Classify([]Hand{{PlayerID: 1, Strength: 100}}, ghostWith(50))
	assert.NoError(t, err)
	assert.Equal(t, GhostBeaten, r.Kind)
	assert.Equal(t, []int64{1}, r.Winners)
	assert.Empty(t, r.Losers)
	assert.NotNil(t, r.Ghost)

	r, err = Classify([]Hand{{PlayerID: 1, Strength: 100}}, ghostWith(200))
	assert.NoError(t, err)
	assert.Equal(t, GhostWon, r.Kind)
	assert.Equal(t, []int64{1}, r.Losers)

	// the ghost wins exact ties
	r, err = Classify([]Hand{{PlayerID: 1, Strength: 100}}, ghostWith(100))
	assert.NoError(t, err)
	assert.Equal(t, GhostWon, r.Kind)
}

func TestClassify_SingleWinner(t *testing.T) {
	r, err := Classify([]Hand{
		{PlayerID: 1, Strength: 300},
		{PlayerID: 2, Strength: 200},
		{PlayerID: 3, Strength: 100},
	}, noGhost(t))
	assert.NoError(t, err)
	assert.Equal(t, Won, r.Kind)
	assert.Equal(t, []int64{1}, r.Winners)
	assert.ElementsMatch(t, []int64{2, 3}, r.Losers)
}

func TestClassify_PartialTie(t *testing.T) {
	// a tie at the top with genuine losers present splits without a ghost
	r, err := Classify([]Hand{
		{PlayerID: 1, Strength: 300},
		{PlayerID: 2, Strength: 300},
		{PlayerID: 3, Strength: 100},
	}, noGhost(t))
	assert.NoError(t, err)
	assert.Equal(t, Won, r.Kind)
	assert.ElementsMatch(t, []int64{1, 2}, r.Winners)
	assert.Equal(t, []int64{3}, r.Losers)
	assert.Nil(t, r.Ghost)
}

func TestClassify_FullTie(t *testing.T) {
	tied := []Hand{
		{PlayerID: 1, Strength: 300},
		{PlayerID: 2, Strength: 300},
	}

	// nobody beats the ghost: everyone matches
	r, err := Classify(tied, ghostWith(400))
	assert.NoError(t, err)
	assert.Equal(t, GhostWon, r.Kind)
	assert.ElementsMatch(t, []int64{1, 2}, r.Losers)
	assert.Empty(t, r.Winners)

	// everyone beats the ghost: the tie stands and the pot splits
	r, err = Classify(tied, ghostWith(200))
	assert.NoError(t, err)
	assert.Equal(t, GhostBeaten, r.Kind)
	assert.ElementsMatch(t, []int64{1, 2}, r.Winners)
	assert.Empty(t, r.Losers)
}

func TestClassify_FullTie_GhostTies(t *testing.T) {
	r, err := Classify([]Hand{
		{PlayerID: 1, Strength: 300},
		{PlayerID: 2, Strength: 300},
		{PlayerID: 3, Strength: 300},
	}, func() ([]*deck.Card, int, error) {
		return nil, 300, nil
	})
	assert.NoError(t, err)
	// ghost ties all three: ghost wins
	assert.Equal(t, GhostWon, r.Kind)
	assert.ElementsMatch(t, []int64{1, 2, 3}, r.Losers)
}

func TestClassify_GhostError(t *testing.T) {
	boom := errors.New("out of cards")
	_, err := Classify([]Hand{{PlayerID: 1, Strength: 100}}, func() ([]*deck.Card, int, error) {
		return nil, 0, boom
	})
	assert.Equal(t, boom, err)
}
