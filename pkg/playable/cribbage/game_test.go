package cribbage

import (
	"io"
	"testing"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/table"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestGame(t *testing.T) *Game {
	t.Helper()

	game, err := NewGame(testLogger(), []int64{1, 2}, DefaultOptions())
	require.NoError(t, err)
	return game
}

func discard(t *testing.T, game *Game, playerID int64, cards string) {
	t.Helper()

	_, _, err := game.Action(playerID, &playable.PayloadIn{
		Action: "discard",
		Cards:  deck.CardsFromString(cards),
	})
	require.NoError(t, err)
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t)
	a.Equal("cribbage", game.Name())
	a.Equal(50, game.pot)
	a.Equal(PhaseDiscard, game.phase)
	a.Len(game.participants[0].hand, 6)
	a.Len(game.participants[1].hand, 6)

	_, err := NewGame(testLogger(), []int64{1, 2, 3}, DefaultOptions())
	a.EqualError(err, "cribbage requires exactly 2 players, got 3")
}

func TestGame_discardAndCut(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t)
	game.participants[0].hand = deck.CardsFromString("2s,3s,4s,5s,6s,7s")
	game.participants[1].hand = deck.CardsFromString("2h,3h,4h,5h,6h,7h")

	discard(t, game, 1, "6s,7s")
	a.Len(game.crib, 2)
	a.Equal(PhaseDiscard, game.phase)

	// discarding twice is rejected
	_, _, err := game.Action(1, &playable.PayloadIn{
		Action: "discard",
		Cards:  deck.CardsFromString("2s,3s"),
	})
	a.Equal(ErrWrongPhase, err)

	// a card not in hand is rejected
	_, _, err = game.Action(2, &playable.PayloadIn{
		Action: "discard",
		Cards:  deck.CardsFromString("13c,7h"),
	})
	a.Equal(ErrCardNotInHand, err)

	// rig a non-jack starter, then complete the discards
	game.deck.Cards = deck.CardsFromString("9d")
	discard(t, game, 2, "6h,7h")

	a.Equal(PhasePegging, game.phase)
	a.Equal("9d", deck.CardToString(game.cut))
	a.Len(game.crib, 4)

	// non-dealer leads
	a.Equal(game.otherIdx(game.dealerIdx), game.turnIdx)
}

func TestGame_hisHeels(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t)
	game.participants[0].hand = deck.CardsFromString("2s,3s,4s,5s,6s,7s")
	game.participants[1].hand = deck.CardsFromString("2h,3h,4h,5h,6h,7h")

	discard(t, game, 1, "6s,7s")
	game.deck.Cards = deck.CardsFromString("11d")
	discard(t, game, 2, "6h,7h")

	a.Equal(2, game.participants[game.dealerIdx].score)
}

func TestGame_peggingTurnOrder(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t)
	game.participants[0].hand = deck.CardsFromString("2s,3s,4s,5s,6s,7s")
	game.participants[1].hand = deck.CardsFromString("8h,9h,10h,11h,12h,13h")

	discard(t, game, 1, "6s,7s")
	game.deck.Cards = deck.CardsFromString("9d")
	discard(t, game, 2, "12h,13h")

	// player 2 (non-dealer) leads
	a.Equal(1, game.turnIdx)

	_, _, err := game.Action(1, &playable.PayloadIn{
		Action: "play",
		Cards:  deck.CardsFromString("2s"),
	})
	a.Equal(table.ErrNotYourTurn, err)

	_, _, err = game.Action(2, &playable.PayloadIn{
		Action: "play",
		Cards:  deck.CardsFromString("8h"),
	})
	a.NoError(err)
	a.Equal(8, game.count)
	a.Equal(0, game.turnIdx)

	_, _, err = game.Action(1, &playable.PayloadIn{
		Action: "play",
		Cards:  deck.CardsFromString("8h"),
	})
	a.Equal(ErrCardNotInHand, err)
}

func TestGame_peggingFifteenScores(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t)
	game.participants[0].hand = deck.CardsFromString("7s,3s,4s,5s,6s,2s")
	game.participants[1].hand = deck.CardsFromString("8h,9h,10h,11h,12h,13h")

	discard(t, game, 1, "2s,3s")
	game.deck.Cards = deck.CardsFromString("9d")
	discard(t, game, 2, "12h,13h")

	_, _, err := game.Action(2, &playable.PayloadIn{
		Action: "play",
		Cards:  deck.CardsFromString("8h"),
	})
	require.NoError(t, err)

	_, _, err = game.Action(1, &playable.PayloadIn{
		Action: "play",
		Cards:  deck.CardsFromString("7s"),
	})
	require.NoError(t, err)

	a.Equal(15, game.count)
	a.Equal(2, game.participants[0].score)
}

func TestGame_settleGameOverWithSkunk(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t)
	game.pot = 100
	game.participants[0].score = winningScore
	game.participants[1].score = 72 // below the skunk line
	game.winnerIdx = 0
	game.phase = PhaseHandEnd

	a.True(game.RoundReady())

	result, err := game.SettleRound()
	a.NoError(err)

	// pot plus the doubled leg value
	a.Equal(map[int64]int{1: 100 + 2*game.options.LegValue}, result.Winners)
	a.Equal(map[int64]int{2: 2 * game.options.LegValue}, result.Losers)
	a.True(result.GameOver)
	a.Equal(0, result.NextPot)
}

func TestGame_settleDoubleSkunk(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t)
	game.pot = 100
	game.participants[0].score = 45 // below the double-skunk line
	game.participants[1].score = winningScore
	game.winnerIdx = 1
	game.phase = PhaseHandEnd

	result, err := game.SettleRound()
	a.NoError(err)

	a.Equal(map[int64]int{2: 100 + 3*game.options.LegValue}, result.Winners)
	a.Equal(map[int64]int{1: 3 * game.options.LegValue}, result.Losers)
}

func TestGame_settleMidGameCarriesPot(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t)
	game.pot = 80
	game.participants[0].score = 60
	game.participants[1].score = 55
	game.phase = PhaseHandEnd

	result, err := game.SettleRound()
	a.NoError(err)

	a.Empty(result.Winners)
	a.Empty(result.Losers)
	a.Equal(80, result.NextPot)
	a.False(result.GameOver)

	// settle is one-shot per hand
	a.False(game.RoundReady())
	_, err = game.SettleRound()
	a.Equal(ErrRoundNotReady, err)
}
