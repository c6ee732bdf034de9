package yacht

import (
	"io"
	"testing"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/dice"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestGame(t *testing.T, playerIDs ...int64) *Game {
	t.Helper()
	game, err := NewGame(discardLogger(), playerIDs, DefaultOptions())
	assert.NoError(t, err)
	return game
}

func action(name string, data map[string]interface{}) *playable.PayloadIn {
	return &playable.PayloadIn{Action: name, AdditionalData: data}
}

// claimCategory rolls once, rigs the dice, and scores the category
func claimCategory(t *testing.T, game *Game, playerID int64, rigged []int, category dice.Category) {
	t.Helper()
	_, _, err := game.Action(playerID, action("roll", nil))
	assert.NoError(t, err)
	copy(game.idToParticipant[playerID].cup.Dice, rigged)
	_, _, err = game.Action(playerID, action("claim", map[string]interface{}{"category": float64(category)}))
	assert.NoError(t, err)
}

// finishSheets fills every open category for both players with rigged dice
func finishSheets(t *testing.T, game *Game, riggedByPlayer map[int64][]int) {
	t.Helper()
	for game.phase == PhaseRolling {
		p := game.participants[game.turnIdx]
		claimCategory(t, game, p.PlayerID, riggedByPlayer[p.PlayerID], game.bestOpenCategory(p))
	}
}

func TestNewGame(t *testing.T) {
	game := newTestGame(t, 1, 2)
	assert.Equal(t, "yacht", game.Name())
	assert.Equal(t, 50, game.pot)
	assert.Equal(t, -25, game.idToParticipant[1].balance)

	_, err := NewGame(discardLogger(), []int64{1}, DefaultOptions())
	assert.EqualError(t, err, "expected 2–7 players, got 1")
}

func TestGame_claimAdvancesTurn(t *testing.T) {
	game := newTestGame(t, 1, 2)

	_, _, err := game.Action(2, action("roll", nil))
	assert.EqualError(t, err, "it is not your turn")

	_, _, err = game.Action(1, action("claim", map[string]interface{}{"category": float64(dice.Choice)}))
	assert.EqualError(t, err, "you must roll before scoring")

	claimCategory(t, game, 1, []int{6, 6, 6, 2, 1}, dice.Sixes)
	assert.Equal(t, 18, game.idToParticipant[1].scores[dice.Sixes])
	assert.Equal(t, 0, game.idToParticipant[1].rolls)
	assert.Equal(t, int64(2), game.participants[game.turnIdx].PlayerID)

	claimCategory(t, game, 2, []int{1, 2, 3, 4, 5}, dice.LittleStraight)
	assert.Equal(t, 30, game.idToParticipant[2].scores[dice.LittleStraight])
	assert.Equal(t, int64(1), game.participants[game.turnIdx].PlayerID)

	// a category can only be scored once
	_, _, err = game.Action(1, action("roll", nil))
	assert.NoError(t, err)
	_, _, err = game.Action(1, action("claim", map[string]interface{}{"category": float64(dice.Sixes)}))
	assert.EqualError(t, err, "you already scored Sixes")
}

func TestGame_zeroScoreClaim(t *testing.T) {
	game := newTestGame(t, 1, 2)

	// no yacht here: scores zero but burns the category
	claimCategory(t, game, 1, []int{1, 2, 3, 4, 5}, dice.Yacht)
	assert.Equal(t, 0, game.idToParticipant[1].scores[dice.Yacht])
	assert.True(t, game.idToParticipant[1].Claimed(dice.Yacht))
}

func TestGame_settleSingleWinner(t *testing.T) {
	game := newTestGame(t, 1, 2)

	// player 1 fills the sheet with yachts, player 2 with junk
	finishSheets(t, game, map[int64][]int{
		1: {6, 6, 6, 6, 6},
		2: {1, 2, 3, 4, 6},
	})

	assert.True(t, game.RoundReady())
	result, err := game.SettleRound()
	assert.NoError(t, err)
	assert.True(t, result.GameOver)
	assert.Equal(t, map[int64]int{1: 50}, result.Winners)
	assert.Equal(t, 0, result.NextPot)
	assert.Contains(t, result.Detail, "1 wins ${50}")
	assert.False(t, game.RoundReady())

	game.nextRoundAfter = time.Now().Add(-time.Second)
	updated, err := game.Tick()
	assert.NoError(t, err)
	assert.True(t, updated)

	details, over := game.GetEndOfGameDetails()
	assert.True(t, over)
	assert.Equal(t, map[int64]int{1: 25, 2: -25}, details.BalanceAdjustments)
}

func TestGame_tieRollsOver(t *testing.T) {
	game := newTestGame(t, 1, 2)

	// identical sheets tie exactly
	finishSheets(t, game, map[int64][]int{
		1: {5, 5, 5, 5, 5},
		2: {5, 5, 5, 5, 5},
	})

	result, err := game.SettleRound()
	assert.NoError(t, err)
	assert.True(t, result.Rollover)
	assert.False(t, result.GameOver)
	assert.Equal(t, 50, result.NextPot)

	game.nextRoundAfter = time.Now().Add(-time.Second)
	updated, err := game.Tick()
	assert.NoError(t, err)
	assert.True(t, updated)

	// replay round: fresh sheets, no fresh ante, same pot
	assert.Equal(t, PhaseRolling, game.phase)
	assert.Equal(t, 2, game.roundNumber)
	assert.Equal(t, 50, game.pot)
	assert.Empty(t, game.idToParticipant[1].scores)
	assert.Equal(t, -25, game.idToParticipant[1].balance)
}

func TestGame_tickDeadlineScoresBestOpen(t *testing.T) {
	game := newTestGame(t, 1, 2)

	_, _, err := game.Action(1, action("roll", nil))
	assert.NoError(t, err)
	copy(game.idToParticipant[1].cup.Dice, []int{2, 3, 4, 5, 6})

	game.deadline = time.Now().Add(-time.Second)
	updated, err := game.Tick()
	assert.NoError(t, err)
	assert.True(t, updated)

	// big straight is the best open category for 2-3-4-5-6
	assert.Equal(t, 30, game.idToParticipant[1].scores[dice.BigStraight])
	assert.Equal(t, int64(2), game.participants[game.turnIdx].PlayerID)
}

func TestGame_playerState(t *testing.T) {
	game := newTestGame(t, 1, 2)

	claimCategory(t, game, 1, []int{6, 6, 6, 2, 1}, dice.Sixes)

	resp, err := game.GetPlayerState(1)
	assert.NoError(t, err)
	data, ok := resp.Data.(*Response)
	assert.True(t, ok)
	assert.False(t, data.YourTurn)
	assert.Len(t, data.OpenCategories, len(dice.Categories)-1)
	assert.Equal(t, 18, data.GameState.Participants[0].Total)

	resp, err = game.GetPlayerState(2)
	assert.NoError(t, err)
	data = resp.Data.(*Response)
	assert.True(t, data.YourTurn)
	assert.Equal(t, int64(2), data.GameState.CurrentTurn)
}
