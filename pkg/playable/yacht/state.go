package yacht

import (
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/dice"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
)

// GameState is the overall game state. Dice and score sheets are public.
type GameState struct {
	Participants []*GameStateParticipant `json:"participants"`
	Pot          int                     `json:"pot"`
	Round        int                     `json:"round"`
	Phase        string                  `json:"phase"`
	CurrentTurn  int64                   `json:"currentTurn"`
	Deadline     *time.Time              `json:"deadline,omitempty"`
	IsGameOver   bool                    `json:"isGameOver"`
	// Result is only populated after settlement
	Result *playable.RoundResult `json:"result,omitempty"`
}

// GameStateParticipant is the state of an individual participant
type GameStateParticipant struct {
	PlayerID int64          `json:"playerId"`
	Balance  int            `json:"balance"`
	Dice     []int          `json:"dice"`
	Held     []bool         `json:"held"`
	Rolls    int            `json:"rolls"`
	Scores   map[string]int `json:"scores"`
	Total    int            `json:"total"`
}

// Response is the response format for this game
type Response struct {
	GameState *GameState `json:"gameState"`
	YourTurn  bool       `json:"yourTurn"`
	RollsLeft int        `json:"rollsLeft"`
	// OpenCategories lists the categories the player may still score
	OpenCategories []string `json:"openCategories"`
}

func (g *Game) phaseName() string {
	switch g.phase {
	case PhaseRolling:
		return "rolling"
	case PhaseRoundEnd:
		return "roundEnd"
	case PhaseGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

func (g *Game) getGameState() *GameState {
	participants := make([]*GameStateParticipant, len(g.participants))
	for i, p := range g.participants {
		scores := make(map[string]int)
		for c, score := range p.scores {
			scores[c.String()] = score
		}

		participants[i] = &GameStateParticipant{
			PlayerID: p.PlayerID,
			Balance:  p.balance,
			Dice:     p.cup.Values(),
			Held:     append([]bool{}, p.cup.Held...),
			Rolls:    p.rolls,
			Scores:   scores,
			Total:    p.Total(),
		}
	}

	state := &GameState{
		Participants: participants,
		Pot:          g.pot,
		Round:        g.roundNumber,
		Phase:        g.phaseName(),
		IsGameOver:   g.phase == PhaseGameOver,
		Result:       g.lastResult,
	}

	if g.phase == PhaseRolling {
		state.CurrentTurn = g.participants[g.turnIdx].PlayerID
		if !g.deadline.IsZero() {
			deadline := g.deadline
			state.Deadline = &deadline
		}
	}

	return state
}

// GetPlayerState returns the state for the given player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	response := &Response{
		GameState: g.getGameState(),
	}

	if p, ok := g.idToParticipant[playerID]; ok {
		response.YourTurn = g.phase == PhaseRolling && g.participants[g.turnIdx] == p
		response.RollsLeft = g.options.MaxRolls - p.rolls
		for _, c := range dice.Categories {
			if !p.Claimed(c) {
				response.OpenCategories = append(response.OpenCategories, c.String())
			}
		}
	}

	return &playable.Response{
		Key:   "game",
		Value: "yacht",
		Data:  response,
	}, nil
}
