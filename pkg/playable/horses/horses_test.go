package horses

import (
	"io"
	"testing"
	"time"

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

// standAll drives every seat through a single roll and a stand
func standAll(t *testing.T, game *Game) {
	t.Helper()
	for _, p := range game.participants {
		_, _, err := game.Action(p.PlayerID, action("roll", nil))
		assert.NoError(t, err)
		_, _, err = game.Action(p.PlayerID, action("stand", nil))
		assert.NoError(t, err)
	}
	assert.Equal(t, PhaseRoundEnd, game.phase)
}

func TestNewGame(t *testing.T) {
	game := newTestGame(t, 1, 2, 3)
	assert.Equal(t, "horses", game.Name())
	assert.Equal(t, 75, game.pot)
	assert.Equal(t, -25, game.idToParticipant[1].balance)

	_, err := NewGame(discardLogger(), []int64{1}, DefaultOptions())
	assert.EqualError(t, err, "expected 2–7 players, got 1")
}

func TestGame_turnOrder(t *testing.T) {
	game := newTestGame(t, 1, 2)

	_, _, err := game.Action(2, action("roll", nil))
	assert.EqualError(t, err, "it is not your turn")

	_, _, err = game.Action(1, action("stand", nil))
	assert.EqualError(t, err, "you must roll at least once")

	_, _, err = game.Action(1, action("hold", map[string]interface{}{"die": float64(0), "held": true}))
	assert.EqualError(t, err, "you must roll before holding dice")

	_, _, err = game.Action(1, action("roll", nil))
	assert.NoError(t, err)

	_, _, err = game.Action(1, action("hold", map[string]interface{}{"die": float64(2), "held": true}))
	assert.NoError(t, err)
	assert.True(t, game.idToParticipant[1].cup.Held[2])

	_, _, err = game.Action(1, action("stand", nil))
	assert.NoError(t, err)
	assert.True(t, game.idToParticipant[1].locked)
	assert.Equal(t, int64(2), game.participants[game.turnIdx].PlayerID)
}

func TestGame_maxRollsLocksHand(t *testing.T) {
	game := newTestGame(t, 1, 2)

	for i := 0; i < game.options.MaxRolls; i++ {
		_, _, err := game.Action(1, action("roll", nil))
		assert.NoError(t, err)
	}
	assert.True(t, game.idToParticipant[1].locked)

	_, _, err := game.Action(1, action("roll", nil))
	assert.EqualError(t, err, "it is not your turn")
}

func TestGame_settleSingleWinner(t *testing.T) {
	game := newTestGame(t, 1, 2)
	standAll(t, game)

	game.idToParticipant[1].cup.Dice = []int{6, 6, 6, 2, 3}
	game.idToParticipant[2].cup.Dice = []int{5, 5, 5, 5, 2}

	assert.True(t, game.RoundReady())
	result, err := game.SettleRound()
	assert.NoError(t, err)
	assert.True(t, result.GameOver)
	assert.False(t, result.Rollover)
	assert.Equal(t, map[int64]int{2: 50}, result.Winners)
	assert.Equal(t, 0, result.NextPot)
	assert.Equal(t, "2 wins ${50} with 4 5s", result.Detail)
	assert.False(t, game.RoundReady())

	// wait out the round-end pause
	game.nextRoundAfter = time.Now().Add(-time.Second)
	updated, err := game.Tick()
	assert.NoError(t, err)
	assert.True(t, updated)

	details, over := game.GetEndOfGameDetails()
	assert.True(t, over)
	assert.Equal(t, map[int64]int{1: -25, 2: 25}, details.BalanceAdjustments)
}

func TestGame_wildFace(t *testing.T) {
	game := newTestGame(t, 1, 2)
	standAll(t, game)

	// ones are wild: 1,1,5,5,5 makes five fives and beats four sixes
	game.idToParticipant[1].cup.Dice = []int{6, 6, 6, 6, 2}
	game.idToParticipant[2].cup.Dice = []int{1, 1, 5, 5, 5}

	result, err := game.SettleRound()
	assert.NoError(t, err)
	assert.Equal(t, map[int64]int{2: 50}, result.Winners)
}

func TestGame_tieRollsOver(t *testing.T) {
	game := newTestGame(t, 1, 2)
	standAll(t, game)

	game.idToParticipant[1].cup.Dice = []int{4, 4, 4, 2, 3}
	game.idToParticipant[2].cup.Dice = []int{4, 4, 4, 5, 6}

	result, err := game.SettleRound()
	assert.NoError(t, err)
	assert.True(t, result.Rollover)
	assert.False(t, result.GameOver)
	assert.Nil(t, result.Winners)
	assert.Equal(t, 50, result.NextPot)
	assert.Equal(t, 50, game.pot)

	// nothing moved in-memory either
	assert.Equal(t, -25, game.idToParticipant[1].balance)
	assert.Equal(t, -25, game.idToParticipant[2].balance)

	game.nextRoundAfter = time.Now().Add(-time.Second)
	updated, err := game.Tick()
	assert.NoError(t, err)
	assert.True(t, updated)

	// replay round: fresh cups, no fresh ante, same pot
	assert.Equal(t, PhaseRolling, game.phase)
	assert.Equal(t, 2, game.roundNumber)
	assert.Equal(t, 50, game.pot)
	assert.Equal(t, 0, game.idToParticipant[1].rolls)
	assert.False(t, game.idToParticipant[1].locked)

	_, over := game.GetEndOfGameDetails()
	assert.False(t, over)
}

func TestGame_tickDeadlineStands(t *testing.T) {
	game := newTestGame(t, 1, 2)

	game.deadline = time.Now().Add(-time.Second)
	updated, err := game.Tick()
	assert.NoError(t, err)
	assert.True(t, updated)

	// the seat never rolled, so the deadline rolls once and stands
	p := game.idToParticipant[1]
	assert.True(t, p.locked)
	assert.Equal(t, 1, p.rolls)
	assert.Equal(t, int64(2), game.participants[game.turnIdx].PlayerID)

	game.deadline = time.Now().Add(-time.Second)
	updated, err = game.Tick()
	assert.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, PhaseRoundEnd, game.phase)
}

func TestGame_playerState(t *testing.T) {
	game := newTestGame(t, 1, 2)

	resp, err := game.GetPlayerState(1)
	assert.NoError(t, err)
	data, ok := resp.Data.(*Response)
	assert.True(t, ok)
	assert.True(t, data.YourTurn)
	assert.Equal(t, 3, data.RollsLeft)
	assert.Equal(t, int64(1), data.GameState.CurrentTurn)
	assert.NotNil(t, data.GameState.Deadline)

	resp, err = game.GetPlayerState(2)
	assert.NoError(t, err)
	data = resp.Data.(*Response)
	assert.False(t, data.YourTurn)
}
